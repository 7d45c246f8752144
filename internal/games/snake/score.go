package snake

// ScoreState holds the score and the remaining ticks of every power-up
// effect. An effect is active while its counter is above zero.
type ScoreState struct {
	Score   int
	effects [kindCount]int
}

// Award adds base points, multiplied by mult while the score multiplier is
// active, and returns the points gained.
func (s *ScoreState) Award(base, mult int) int {
	gained := base
	if s.Active(KindScoreMultiplier) {
		gained *= mult
	}
	s.Score += gained
	return gained
}

// Activate starts (or restarts) the effect of k for the given ticks.
func (s *ScoreState) Activate(k Kind, ticks int) {
	if k <= KindFood || k >= kindCount {
		return
	}
	s.effects[k] = max(s.effects[k], ticks)
}

// Active reports whether the effect of k is running.
func (s ScoreState) Active(k Kind) bool {
	return s.Remaining(k) > 0
}

// Remaining returns the ticks left on the effect of k.
func (s ScoreState) Remaining(k Kind) int {
	if k < 0 || k >= kindCount {
		return 0
	}
	return s.effects[k]
}

// decay counts every running effect down by one tick and returns the
// kinds that ran out.
func (s *ScoreState) decay() []Kind {
	var expired []Kind
	for k := range s.effects {
		if s.effects[k] == 0 {
			continue
		}
		s.effects[k]--
		if s.effects[k] == 0 {
			expired = append(expired, Kind(k))
		}
	}
	return expired
}
