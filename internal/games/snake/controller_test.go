package snake

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
)

type fixedQualifier bool

func (q fixedQualifier) Qualifies(int) bool { return bool(q) }

func TestTimeAttackCountdownForcesLoss(t *testing.T) {
	settings := config.Default()
	settings.TimeAttackSeconds = 1
	c := NewController(config.ModeTimeAttack, config.DifficultyMedium, settings, 42)
	putFood(c.Session(), Cell{0, 0})
	c.Session().score.Score = 7

	c.Tick(DirNone, 400*time.Millisecond)
	c.Tick(DirNone, 400*time.Millisecond)
	if c.Session().State() != StateRunning {
		t.Fatalf("state = %v before time ran out", c.Session().State())
	}
	if c.Remaining() != 200*time.Millisecond {
		t.Errorf("remaining = %v, expected 200ms", c.Remaining())
	}

	head := c.Session().Body().Head()
	res := c.Tick(DirNone, 400*time.Millisecond)

	if res.State != StateLost || res.Reason != ReasonTimeUp {
		t.Fatalf("state = %v reason = %q, expected lost/time_up", res.State, res.Reason)
	}
	if res.Score != 7 {
		t.Errorf("score = %d, expected the preserved 7", res.Score)
	}
	if c.Session().Body().Head() != head {
		t.Error("snake moved on the tick that ran out of time")
	}
	if c.Remaining() != 0 {
		t.Errorf("remaining = %v, expected 0", c.Remaining())
	}
}

func TestClassicIgnoresElapsedTime(t *testing.T) {
	c := NewController(config.ModeClassic, config.DifficultyMedium, config.Default(), 42)
	putFood(c.Session(), Cell{0, 0})

	res := c.Tick(DirNone, time.Hour)

	if res.Terminal {
		t.Errorf("classic game ended after a long tick: %v/%q", res.State, res.Reason)
	}
	if c.Remaining() != 0 {
		t.Errorf("classic Remaining() = %v, expected 0", c.Remaining())
	}
	if c.Played() != time.Hour {
		t.Errorf("played = %v, expected 1h", c.Played())
	}
}

func TestPauseFreezesCountdown(t *testing.T) {
	c := NewController(config.ModeTimeAttack, "", config.Default(), 42)
	if !c.Pause() {
		t.Fatal("Pause() failed")
	}

	res := c.Tick(DirNone, 10*time.Second)

	if res.State != StatePaused {
		t.Errorf("state = %v, expected paused", res.State)
	}
	if c.Remaining() != time.Minute {
		t.Errorf("remaining = %v, paused time must not count", c.Remaining())
	}
	if !c.Resume() {
		t.Error("Resume() failed")
	}
}

func TestIntervalByDifficulty(t *testing.T) {
	settings := config.Default()
	tests := []struct {
		d        config.Difficulty
		expected time.Duration
	}{
		{config.DifficultyEasy, 150 * time.Millisecond},
		{config.DifficultyMedium, 100 * time.Millisecond},
		{config.DifficultyHard, 60 * time.Millisecond},
		{"", 100 * time.Millisecond},
	}
	for _, tc := range tests {
		c := NewController(config.ModeClassic, tc.d, settings, 1)
		if got := c.Interval(); got != tc.expected {
			t.Errorf("%q: Interval() = %v, expected %v", tc.d, got, tc.expected)
		}
	}
}

func TestSpeedBoostShortensInterval(t *testing.T) {
	c := NewController(config.ModeClassic, config.DifficultyMedium, config.Default(), 1)
	c.Session().score.Activate(KindSpeedBoost, 5)

	if got := c.Interval(); got != 50*time.Millisecond {
		t.Errorf("boosted interval = %v, expected 50ms", got)
	}

	// Ticks still advance one cell each.
	putFood(c.Session(), Cell{0, 0})
	head := c.Session().Body().Head()
	c.Tick(DirNone, c.Interval())
	if c.Session().Body().Head() != head.Add(DirRight) {
		t.Error("speed boost must not change the logical step")
	}
}

func TestOutcome(t *testing.T) {
	settings := config.Default()
	settings.TimeAttackSeconds = 1
	c := NewController(config.ModeTimeAttack, config.DifficultyMedium, settings, 9)
	c.Session().score.Score = 12

	if out := c.Outcome(fixedQualifier(true)); out.NameSlotNeeded {
		t.Error("running game must not ask for a name")
	}

	c.Tick(DirNone, 2*time.Second)

	out := c.Outcome(fixedQualifier(true))
	if !out.NameSlotNeeded || out.Score != 12 {
		t.Errorf("Outcome = %+v, expected name slot with score 12", out)
	}
	if c.Outcome(fixedQualifier(false)).NameSlotNeeded {
		t.Error("non-qualifying score asked for a name")
	}
	if c.Outcome(nil).NameSlotNeeded {
		t.Error("nil qualifier asked for a name")
	}
}

func TestControllerReset(t *testing.T) {
	settings := config.Default()
	settings.TimeAttackSeconds = 1
	c := NewController(config.ModeTimeAttack, config.DifficultyHard, settings, 9)
	c.Tick(DirNone, 5*time.Second)

	c.Reset(10)

	if c.Session().State() != StateRunning {
		t.Errorf("state after reset = %v", c.Session().State())
	}
	if c.Remaining() != time.Second || c.Played() != 0 {
		t.Errorf("timers not reset: remaining=%v played=%v", c.Remaining(), c.Played())
	}
	if c.Difficulty() != config.DifficultyHard || c.Mode() != config.ModeTimeAttack {
		t.Error("reset changed mode or difficulty")
	}
}
