package flow

import (
	"errors"
	"testing"
)

func TestHappyPath(t *testing.T) {
	m := New()
	steps := []struct {
		event Event
		want  State
	}{
		{EventStart, Playing},
		{EventPause, Paused},
		{EventResume, Playing},
		{EventNewHighScore, NameEntry},
		{EventSubmitName, GameOver},
		{EventStart, Playing},
		{EventGameOver, GameOver},
		{EventBack, Menu},
		{EventShowOptions, Options},
		{EventShowControls, Controls},
		{EventBack, Options},
		{EventBack, Menu},
		{EventShowScores, HighScores},
		{EventBack, Menu},
		{EventShowInstructions, Instructions},
		{EventBack, Menu},
		{EventQuit, Quit},
	}

	for i, step := range steps {
		got, err := m.Fire(step.event)
		if err != nil {
			t.Fatalf("step %d (%s): %v", i, step.event, err)
		}
		if got != step.want || m.State() != step.want {
			t.Fatalf("step %d (%s): state = %s, expected %s", i, step.event, got, step.want)
		}
	}
}

func TestInvalidTransitions(t *testing.T) {
	tests := []struct {
		from  State
		event Event
	}{
		{Menu, EventPause},
		{Menu, EventResume},
		{Playing, EventStart},
		{Playing, EventResume},
		{Paused, EventPause},
		{Paused, EventGameOver},
		{GameOver, EventPause},
		{HighScores, EventStart},
		{Instructions, EventShowOptions},
		{Controls, EventStart},
		{Quit, EventStart},
		{Quit, EventQuit},
	}

	for _, tc := range tests {
		m := NewAt(tc.from)
		state, err := m.Fire(tc.event)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s + %s: err = %v, expected ErrInvalidTransition", tc.from, tc.event, err)
		}
		if state != tc.from || m.State() != tc.from {
			t.Errorf("%s + %s changed state to %s", tc.from, tc.event, m.State())
		}
	}
}

func TestQuitFromAnywhere(t *testing.T) {
	for _, s := range []State{Menu, Playing, Paused, GameOver, NameEntry, HighScores, Instructions, Options, Controls} {
		m := NewAt(s)
		if got, err := m.Fire(EventQuit); err != nil || got != Quit {
			t.Errorf("quit from %s: %s, %v", s, got, err)
		}
	}
}

func TestPrevious(t *testing.T) {
	m := New()
	m.Fire(EventStart) //nolint:errcheck
	m.Fire(EventPause) //nolint:errcheck
	if m.Previous() != Playing {
		t.Errorf("Previous() = %s, expected playing", m.Previous())
	}
}

func TestStrings(t *testing.T) {
	if Menu.String() != "menu" || GameOver.String() != "game_over" {
		t.Error("unexpected state names")
	}
	if State(99).String() != "state(99)" || Event(99).String() != "event(99)" {
		t.Error("unknown values should print their number")
	}
}
