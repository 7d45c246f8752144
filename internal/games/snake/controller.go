package snake

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// minInterval keeps a boosted hard game from spinning the host loop.
const minInterval = 20 * time.Millisecond

// Controller wraps a Session with mode-specific rules. Classic ends only
// on collision; Time Attack also ends when its wall-clock countdown runs
// out.
type Controller struct {
	mode       config.Mode
	difficulty config.Difficulty
	speed      config.SpeedConfig
	limit      time.Duration

	session   *Session
	remaining time.Duration
	played    time.Duration
}

// NewController starts a new game in the given mode and difficulty.
func NewController(mode config.Mode, difficulty config.Difficulty, settings config.Settings, seed int64) *Controller {
	if mode == "" {
		mode = config.ModeClassic
	}
	if difficulty == "" {
		difficulty = config.DifficultyMedium
	}

	c := &Controller{
		mode:       mode,
		difficulty: difficulty,
		speed:      settings.Speed,
		limit:      settings.TimeLimit(),
		session:    NewSession(OptionsFromSettings(settings), seed),
	}
	c.remaining = c.limit
	return c
}

// Reset starts a fresh session with the same mode and settings.
func (c *Controller) Reset(seed int64) {
	c.session.Reset(seed)
	c.remaining = c.limit
	c.played = 0
}

// Tick runs one game tick after elapsed wall-clock time. In Time Attack
// the countdown is charged first; if it hits zero the session is lost
// without moving, so the score stays what it was.
func (c *Controller) Tick(dir Direction, elapsed time.Duration) TickResult {
	if c.session.State() != StateRunning {
		return c.session.result(nil)
	}

	c.played += elapsed
	if c.mode == config.ModeTimeAttack {
		c.remaining -= elapsed
		if c.remaining <= 0 {
			c.remaining = 0
			c.session.End(ReasonTimeUp)
			return c.session.result([]Event{{Kind: EventTimeUp}})
		}
	}

	return c.session.Tick(dir)
}

// Interval returns how long the host should wait before the next tick.
// Speed Boost shortens it; the logical tick count is unaffected.
func (c *Controller) Interval() time.Duration {
	base := c.speed.Interval(c.difficulty)
	if c.session.Effects().Active(KindSpeedBoost) && c.speed.BoostFactor > 0 {
		base = time.Duration(float64(base) * c.speed.BoostFactor)
	}
	return max(base, minInterval)
}

// Pause suspends the session and the countdown.
func (c *Controller) Pause() bool { return c.session.Pause() }

// Resume continues after Pause.
func (c *Controller) Resume() bool { return c.session.Resume() }

// Remaining returns the Time Attack time left. Classic games report zero.
func (c *Controller) Remaining() time.Duration {
	if c.mode != config.ModeTimeAttack {
		return 0
	}
	return c.remaining
}

// Played returns the wall-clock time spent running.
func (c *Controller) Played() time.Duration { return c.played }

// Mode returns the game mode.
func (c *Controller) Mode() config.Mode { return c.mode }

// Difficulty returns the difficulty.
func (c *Controller) Difficulty() config.Difficulty { return c.difficulty }

// Session exposes the underlying state machine.
func (c *Controller) Session() *Session { return c.session }

// Outcome is the end-of-game signal for the high-score table.
type Outcome struct {
	NameSlotNeeded bool
	Score          int
}

// Outcome reports whether a finished game earned a place in q. Games still
// in progress never need a name slot.
func (c *Controller) Outcome(q core.Qualifier) Outcome {
	score := c.session.Score()
	need := c.session.State().Terminal() && q != nil && q.Qualifies(score)
	return Outcome{NameSlotNeeded: need, Score: score}
}
