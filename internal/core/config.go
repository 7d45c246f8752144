package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // UI refresh rate in frames per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended (lost, won or out of time)
	Won      bool // Whether the game ended because the board filled up
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Next is how long the platform should wait before the next Step.
	// Zero means "use the platform's frame rate".
	Next time.Duration
}

// Qualifier decides whether a final score earns a high-score slot.
type Qualifier interface {
	Qualifies(score int) bool
}

// Summary describes a game for the platform once it has ended: what to
// show on the game-over screen and what to record in history.
type Summary struct {
	Mode           string
	Difficulty     string
	Score          int
	Ticks          uint64
	Eaten          int
	Duration       time.Duration
	Reason         string
	Won            bool
	NameSlotNeeded bool
}
