package snake

import (
	"github.com/vovakirdan/tui-snake/internal/config"
)

// State is the state of a Session.
type State int

const (
	StateRunning State = iota
	StatePaused
	StateLost
	StateWon // board full, no room left for food
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateLost:
		return "lost"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further ticks will be processed.
func (s State) Terminal() bool {
	return s == StateLost || s == StateWon
}

// EndReason says why a session ended.
type EndReason string

const (
	ReasonNone      EndReason = ""
	ReasonWall      EndReason = "wall"
	ReasonSelf      EndReason = "self"
	ReasonTimeUp    EndReason = "time_up"
	ReasonBoardFull EndReason = "board_full"
)

// EventKind identifies something that happened during a tick.
type EventKind int

const (
	EventAte EventKind = iota
	EventPowerUpSpawned
	EventPowerUpCollected
	EventPowerUpExpired // token left the board uncollected
	EventEffectEnded
	EventCollisionAbsorbed
	EventCollision
	EventBoardFull
	EventTimeUp
)

// Event is emitted by Tick so the host can react (status line, sound).
type Event struct {
	Kind   EventKind
	Token  Kind // power-up involved, if any
	Points int  // points gained, for EventAte
}

// TickResult is what a tick hands back to the host loop.
type TickResult struct {
	Score    int
	Terminal bool
	State    State
	Reason   EndReason
	Events   []Event
}

// Options are the gameplay parameters of a session.
type Options struct {
	Grid        Grid
	StartLength int
	FoodValue   int
	Multiplier  int
	PowerUps    bool
	PowerUp     config.PowerUpConfig
}

// OptionsFromSettings derives session options from user settings.
func OptionsFromSettings(s config.Settings) Options {
	return Options{
		Grid:        NewGrid(s.Grid.Width, s.Grid.Height),
		StartLength: s.Grid.StartLength,
		FoodValue:   s.Scoring.FoodValue,
		Multiplier:  s.Scoring.Multiplier,
		PowerUps:    s.PowerUpsEnabled,
		PowerUp:     s.PowerUps,
	}
}

// duration returns the effect length of a power-up kind in ticks.
func (o Options) duration(k Kind) int {
	switch k {
	case KindSpeedBoost:
		return o.PowerUp.SpeedTicks
	case KindScoreMultiplier:
		return o.PowerUp.MultiplierTicks
	case KindInvincibility:
		return o.PowerUp.InvincibilityTicks
	}
	return 0
}

// Session is the game state machine. It owns the grid, the body, the
// spawner and the score, and advances them one tick at a time.
type Session struct {
	opts    Options
	body    *Body
	spawner *Spawner
	score   ScoreState

	food    Token
	hasFood bool
	powerUp *Token

	state  State
	reason EndReason
	ticks  uint64
	eaten  int
}

// NewSession creates a running session with the snake centred on the grid
// facing right and the first food placed.
func NewSession(opts Options, seed int64) *Session {
	s := &Session{opts: opts}
	s.Reset(seed)
	return s
}

// Reset discards all state and starts over.
func (s *Session) Reset(seed int64) {
	g := s.opts.Grid
	length := min(max(s.opts.StartLength, 1), g.Width/2+1)
	head := Cell{X: g.Width / 2, Y: g.Height / 2}

	s.body = NewBody(head, DirRight, length)
	s.spawner = NewSpawner(seed)
	s.score = ScoreState{}
	s.powerUp = nil
	s.hasFood = false
	s.state = StateRunning
	s.reason = ReasonNone
	s.ticks = 0
	s.eaten = 0

	s.placeFood()
}

// Tick advances the simulation by one step, applying dir first.
// Paused and finished sessions are left untouched.
func (s *Session) Tick(dir Direction) TickResult {
	if s.state != StateRunning {
		return s.result(nil)
	}
	s.ticks++

	var events []Event
	invincible := s.score.Active(KindInvincibility)

	// 1. Buffered direction.
	s.body.Turn(dir)

	// 2. Advance. Food straight ahead is registered as growth first, so
	// the snake is one longer as soon as it swallows.
	next := s.body.Next()
	if invincible {
		next = s.opts.Grid.Wrap(next)
	}
	if s.hasFood && next == s.food.Cell {
		s.body.Grow(1)
	}
	raw := s.body.Advance()
	if raw != next {
		s.body.moveHead(next)
	}
	head := next

	// 3. Collisions.
	hitWall := !s.opts.Grid.Contains(raw)
	hitSelf := s.body.HitsSelf()
	if hitWall || hitSelf {
		if !invincible {
			reason := ReasonSelf
			if hitWall {
				reason = ReasonWall
			}
			s.end(StateLost, reason)
			return s.result(append(events, Event{Kind: EventCollision}))
		}
		events = append(events, Event{Kind: EventCollisionAbsorbed, Token: KindInvincibility})
	}

	// 4. Food.
	if s.hasFood && head == s.food.Cell {
		gained := s.score.Award(s.opts.FoodValue, s.opts.Multiplier)
		s.eaten++
		s.hasFood = false
		events = append(events, Event{Kind: EventAte, Points: gained})

		if !s.placeFood() {
			s.end(StateWon, ReasonBoardFull)
			return s.result(append(events, Event{Kind: EventBoardFull}))
		}
		if s.maybeSpawnPowerUp() {
			events = append(events, Event{Kind: EventPowerUpSpawned, Token: s.powerUp.Kind})
		}
	}

	// 5. Power-up.
	if s.powerUp != nil && head == s.powerUp.Cell {
		kind := s.powerUp.Kind
		s.score.Activate(kind, s.opts.duration(kind))
		s.powerUp = nil
		events = append(events, Event{Kind: EventPowerUpCollected, Token: kind})
	}

	// 6. Timers.
	for _, k := range s.score.decay() {
		events = append(events, Event{Kind: EventEffectEnded, Token: k})
	}
	if s.powerUp != nil {
		s.powerUp.TTL--
		if s.powerUp.TTL <= 0 {
			events = append(events, Event{Kind: EventPowerUpExpired, Token: s.powerUp.Kind})
			s.powerUp = nil
		}
	}

	return s.result(events)
}

// Pause suspends tick processing. It returns false if the session was not
// running.
func (s *Session) Pause() bool {
	if s.state != StateRunning {
		return false
	}
	s.state = StatePaused
	return true
}

// Resume continues a paused session. It returns false if the session was
// not paused.
func (s *Session) Resume() bool {
	if s.state != StatePaused {
		return false
	}
	s.state = StateRunning
	return true
}

// End forces the session into Lost, keeping the score. Used by the mode
// controller when Time Attack runs out.
func (s *Session) End(reason EndReason) {
	if s.state.Terminal() {
		return
	}
	s.end(StateLost, reason)
}

func (s *Session) end(state State, reason EndReason) {
	s.state = state
	s.reason = reason
}

// placeFood puts food on a free cell. It returns false when the board is full.
// A power-up token on the last free cell gives way to the food.
func (s *Session) placeFood() bool {
	occupied := s.body.Cells()
	if s.powerUp != nil {
		occupied = append(occupied, s.powerUp.Cell)
	}
	c, ok := s.spawner.Spawn(s.opts.Grid, occupied)
	if !ok && s.powerUp != nil {
		c, ok = s.powerUp.Cell, true
		s.powerUp = nil
	}
	if !ok {
		s.hasFood = false
		return false
	}
	s.food = Token{Cell: c, Kind: KindFood}
	s.hasFood = true
	return true
}

// maybeSpawnPowerUp rolls for a power-up after food was eaten.
func (s *Session) maybeSpawnPowerUp() bool {
	if !s.opts.PowerUps || s.powerUp != nil {
		return false
	}
	if !s.spawner.Roll(s.opts.PowerUp.SpawnChance) {
		return false
	}

	occupied := append(s.body.Cells(), s.food.Cell)
	c, ok := s.spawner.Spawn(s.opts.Grid, occupied)
	if !ok {
		return false
	}
	s.powerUp = &Token{Cell: c, Kind: s.spawner.PowerUpKind(), TTL: s.opts.PowerUp.LifetimeTicks}
	return true
}

func (s *Session) result(events []Event) TickResult {
	return TickResult{
		Score:    s.score.Score,
		Terminal: s.state.Terminal(),
		State:    s.state,
		Reason:   s.reason,
		Events:   events,
	}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Reason returns why the session ended, or ReasonNone.
func (s *Session) Reason() EndReason { return s.reason }

// Score returns the current score.
func (s *Session) Score() int { return s.score.Score }

// Effects returns the score and effect timers.
func (s *Session) Effects() ScoreState { return s.score }

// Body returns the snake. Callers must not mutate it.
func (s *Session) Body() *Body { return s.body }

// Grid returns the playfield.
func (s *Session) Grid() Grid { return s.opts.Grid }

// Food returns the food token, if any.
func (s *Session) Food() (Token, bool) { return s.food, s.hasFood }

// PowerUp returns the power-up token on the board, if any.
func (s *Session) PowerUp() (Token, bool) {
	if s.powerUp == nil {
		return Token{}, false
	}
	return *s.powerUp, true
}

// Ticks returns the number of processed ticks.
func (s *Session) Ticks() uint64 { return s.ticks }

// Eaten returns how much food was eaten.
func (s *Session) Eaten() int { return s.eaten }
