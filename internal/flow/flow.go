// Package flow is the screen state machine of the app: which screen is
// showing and which moves between screens are legal. It knows nothing
// about rendering.
package flow

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned by Fire for an event the current state
// does not accept.
var ErrInvalidTransition = errors.New("flow: invalid transition")

// State is a screen.
type State int

const (
	Menu State = iota
	Playing
	Paused
	GameOver
	NameEntry
	HighScores
	Instructions
	Options
	Controls
	Quit
)

func (s State) String() string {
	switch s {
	case Menu:
		return "menu"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case GameOver:
		return "game_over"
	case NameEntry:
		return "name_entry"
	case HighScores:
		return "high_scores"
	case Instructions:
		return "instructions"
	case Options:
		return "options"
	case Controls:
		return "controls"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Event drives a transition.
type Event int

const (
	EventStart        Event = iota // start or restart a game
	EventPause                     // Playing -> Paused
	EventResume                    // Paused -> Playing
	EventGameOver                  // game ended without a high score
	EventNewHighScore              // game ended with a qualifying score
	EventSubmitName                // name entered
	EventShowScores
	EventShowInstructions
	EventShowOptions
	EventShowControls
	EventBack // leave the current screen
	EventQuit
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventGameOver:
		return "game_over"
	case EventNewHighScore:
		return "new_high_score"
	case EventSubmitName:
		return "submit_name"
	case EventShowScores:
		return "show_scores"
	case EventShowInstructions:
		return "show_instructions"
	case EventShowOptions:
		return "show_options"
	case EventShowControls:
		return "show_controls"
	case EventBack:
		return "back"
	case EventQuit:
		return "quit"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

var transitions = map[State]map[Event]State{
	Menu: {
		EventStart:            Playing,
		EventShowScores:       HighScores,
		EventShowInstructions: Instructions,
		EventShowOptions:      Options,
	},
	Playing: {
		EventPause:        Paused,
		EventGameOver:     GameOver,
		EventNewHighScore: NameEntry,
		EventBack:         Menu,
	},
	Paused: {
		EventResume: Playing,
		EventBack:   Menu,
	},
	NameEntry: {
		EventSubmitName: GameOver,
		EventBack:       GameOver, // skip, the score is not recorded
	},
	GameOver: {
		EventStart:      Playing,
		EventShowScores: HighScores,
		EventBack:       Menu,
	},
	HighScores:   {EventBack: Menu},
	Instructions: {EventBack: Menu},
	Options: {
		EventShowControls: Controls,
		EventBack:         Menu,
	},
	Controls: {EventBack: Options},
}

// Machine tracks the current screen.
type Machine struct {
	state State
	prev  State
}

// New returns a machine on the main menu.
func New() *Machine {
	return &Machine{state: Menu, prev: Menu}
}

// NewAt returns a machine starting in s, e.g. Playing for `snake play`.
func NewAt(s State) *Machine {
	return &Machine{state: s, prev: s}
}

// State returns the current screen.
func (m *Machine) State() State {
	return m.state
}

// Previous returns the screen before the last transition.
func (m *Machine) Previous() State {
	return m.prev
}

// Fire applies e. On an invalid event the state is unchanged and the
// returned error wraps ErrInvalidTransition.
func (m *Machine) Fire(e Event) (State, error) {
	next, ok := m.next(e)
	if !ok {
		return m.state, fmt.Errorf("%w: %s in %s", ErrInvalidTransition, e, m.state)
	}
	m.prev, m.state = m.state, next
	return next, nil
}

func (m *Machine) next(e Event) (State, bool) {
	if m.state == Quit {
		return Quit, false
	}
	// Quitting is always possible.
	if e == EventQuit {
		return Quit, true
	}
	next, ok := transitions[m.state][e]
	return next, ok
}
