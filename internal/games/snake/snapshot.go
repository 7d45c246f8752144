package snake

import "time"

// Snapshot captures the game state with primitive fields, for determinism
// checks and debugging dumps.
type Snapshot struct {
	Tick      uint64
	Mode      string
	State     string
	Reason    string
	Score     int
	SnakeLen  int
	HeadX     int
	HeadY     int
	Dir       Direction
	FoodX     int
	FoodY     int
	PowerUp   string // empty when no token is on the board
	PowerUpX  int
	PowerUpY  int
	Speed     int // remaining effect ticks
	Mult      int
	Shield    int
	Remaining time.Duration
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	s := g.ctrl.Session()
	head := s.Body().Head()
	effects := s.Effects()

	snap := Snapshot{
		Tick:      s.Ticks(),
		Mode:      string(g.mode),
		State:     s.State().String(),
		Reason:    string(s.Reason()),
		Score:     s.Score(),
		SnakeLen:  s.Body().Len(),
		HeadX:     head.X,
		HeadY:     head.Y,
		Dir:       s.Body().Direction(),
		FoodX:     -1,
		FoodY:     -1,
		PowerUpX:  -1,
		PowerUpY:  -1,
		Speed:     effects.Remaining(KindSpeedBoost),
		Mult:      effects.Remaining(KindScoreMultiplier),
		Shield:    effects.Remaining(KindInvincibility),
		Remaining: g.ctrl.Remaining(),
	}
	if food, ok := s.Food(); ok {
		snap.FoodX, snap.FoodY = food.Cell.X, food.Cell.Y
	}
	if p, ok := s.PowerUp(); ok {
		snap.PowerUp = p.Kind.String()
		snap.PowerUpX, snap.PowerUpY = p.Cell.X, p.Cell.Y
	}
	return snap
}
