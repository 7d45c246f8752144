package config

import (
	"fmt"
	"strings"
)

// Difficulty selects the base tick interval.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties returns all difficulties from slowest to fastest.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty converts a user-supplied name. An empty string means Medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "medium", "normal":
		return DifficultyMedium, nil
	case "easy":
		return DifficultyEasy, nil
	case "hard":
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, medium or hard)", s)
}

// Title returns the display name ("Easy", "Medium", "Hard").
func (d Difficulty) Title() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyHard:
		return "Hard"
	default:
		return "Medium"
	}
}

// Next cycles to the following difficulty.
func (d Difficulty) Next() Difficulty {
	all := Difficulties()
	for i, x := range all {
		if x == d {
			return all[(i+1)%len(all)]
		}
	}
	return DifficultyMedium
}

// Mode selects the termination rules of a session.
type Mode string

const (
	ModeClassic    Mode = "classic"
	ModeTimeAttack Mode = "time_attack"
)

// Modes returns all game modes in menu order.
func Modes() []Mode {
	return []Mode{ModeClassic, ModeTimeAttack}
}

// ParseMode converts a user-supplied name. An empty string means Classic.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "classic":
		return ModeClassic, nil
	case "time_attack", "timeattack", "time-attack", "time attack":
		return ModeTimeAttack, nil
	}
	return "", fmt.Errorf("config: unknown mode %q (want classic or time_attack)", s)
}

// Title returns the display name of the mode.
func (m Mode) Title() string {
	if m == ModeTimeAttack {
		return "Time Attack"
	}
	return "Classic"
}

// Next cycles to the following mode.
func (m Mode) Next() Mode {
	if m == ModeTimeAttack {
		return ModeClassic
	}
	return ModeTimeAttack
}
