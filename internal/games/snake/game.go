package snake

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Registered game IDs, one per mode.
const (
	IDClassic    = "classic"
	IDTimeAttack = "timeattack"
)

// flashTicks is how long a status message stays in the HUD.
const flashTicks = 12

// Game adapts a Controller to the registry.Game interface and draws it.
type Game struct {
	mode     config.Mode
	settings config.Settings
	palette  Palette

	ctrl *Controller
	next time.Duration // interval the host was asked to wait

	flash     string
	flashLeft int
}

// New creates a game in the given mode. Reset must be called before Step.
func New(mode config.Mode, settings config.Settings) *Game {
	if mode == "" {
		mode = settings.Mode
	}
	return &Game{
		mode:     mode,
		settings: settings,
		palette:  PaletteFor(settings.ColorScheme),
	}
}

func init() {
	registry.Register(IDClassic, func(s config.Settings) registry.Game {
		return New(config.ModeClassic, s)
	})
	registry.Register(IDTimeAttack, func(s config.Settings) registry.Game {
		return New(config.ModeTimeAttack, s)
	})
}

// IDForMode returns the registry ID of a mode.
func IDForMode(m config.Mode) string {
	if m == config.ModeTimeAttack {
		return IDTimeAttack
	}
	return IDClassic
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return IDForMode(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.mode.Title()
}

// Reset starts a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.ctrl = NewController(g.mode, g.settings.Difficulty, g.settings, cfg.Seed)
	g.next = g.ctrl.Interval()
	g.flash = ""
	g.flashLeft = 0
}

// Step runs one tick. in.Elapsed is the wall-clock time since the
// previous tick and is charged to the Time Attack countdown; when the
// host leaves it zero the requested interval is charged instead.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	elapsed := in.Elapsed
	if elapsed <= 0 {
		elapsed = g.next
	}
	res := g.ctrl.Tick(DirectionFromAction(in.Move), elapsed)
	g.next = g.ctrl.Interval()
	g.noteEvents(res.Events)

	return g.result()
}

// Pause suspends the game. It reports whether anything changed.
func (g *Game) Pause() bool { return g.ctrl.Pause() }

// Resume continues after Pause.
func (g *Game) Resume() bool { return g.ctrl.Resume() }

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Next: g.next}
}

func (g *Game) noteEvents(events []Event) {
	if g.flashLeft > 0 {
		g.flashLeft--
	}
	for _, e := range events {
		msg := ""
		switch e.Kind {
		case EventPowerUpCollected:
			msg = e.Token.String() + "!"
		case EventCollisionAbsorbed:
			msg = "Shielded!"
		case EventEffectEnded:
			msg = e.Token.String() + " worn off"
		case EventTimeUp:
			msg = "Time's up!"
		}
		if msg != "" {
			g.flash = msg
			g.flashLeft = flashTicks
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.ctrl.Session()
	return core.GameState{
		Score:    s.Score(),
		GameOver: s.State().Terminal(),
		Won:      s.State() == StateWon,
		Paused:   s.State() == StatePaused,
	}
}

// Summary describes the game for the game-over screen and history.
func (g *Game) Summary(q core.Qualifier) core.Summary {
	s := g.ctrl.Session()
	return core.Summary{
		Mode:           string(g.mode),
		Difficulty:     string(g.ctrl.Difficulty()),
		Score:          s.Score(),
		Ticks:          s.Ticks(),
		Eaten:          s.Eaten(),
		Duration:       g.ctrl.Played(),
		Reason:         string(s.Reason()),
		Won:            s.State() == StateWon,
		NameSlotNeeded: g.ctrl.Outcome(q).NameSlotNeeded,
	}
}

// Controller exposes the mode controller.
func (g *Game) Controller() *Controller { return g.ctrl }
