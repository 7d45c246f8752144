// Package config provides YAML-based settings loading, saving and
// difficulty management for the snake game.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalid is wrapped by every validation failure returned from Validate.
var ErrInvalid = errors.New("invalid settings")

// Settings contains everything the player can tune, either through the
// Options screen or by editing the YAML file.
type Settings struct {
	Difficulty        Difficulty    `yaml:"difficulty"`
	Mode              Mode          `yaml:"mode"`
	ColorScheme       string        `yaml:"color_scheme"`
	PowerUpsEnabled   bool          `yaml:"powerups_enabled"`
	TimeAttackSeconds int           `yaml:"time_attack_seconds"`
	Controls          Controls      `yaml:"controls"`
	Grid              GridConfig    `yaml:"grid"`
	Scoring           ScoringConfig `yaml:"scoring"`
	PowerUps          PowerUpConfig `yaml:"powerups"`
	Speed             SpeedConfig   `yaml:"speed"`
}

// Controls maps movement actions to key names as reported by the terminal
// (e.g. "w", "up", "ctrl+p"). Arrow keys always work in addition to these.
type Controls struct {
	Up    string `yaml:"up"`
	Down  string `yaml:"down"`
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

func (c Controls) bindings() [][2]string {
	return [][2]string{{"up", c.Up}, {"down", c.Down}, {"left", c.Left}, {"right", c.Right}}
}

// Set rebinds the named action ("up", "down", "left", "right").
// Unknown actions are ignored.
func (c *Controls) Set(action, key string) {
	switch action {
	case "up":
		c.Up = key
	case "down":
		c.Down = key
	case "left":
		c.Left = key
	case "right":
		c.Right = key
	}
}

// Get returns the key bound to the named action.
func (c Controls) Get(action string) string {
	for _, b := range c.bindings() {
		if b[0] == action {
			return b[1]
		}
	}
	return ""
}

// GridConfig defines the playfield.
type GridConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	StartLength int `yaml:"start_length"`
}

// ScoringConfig defines how food is scored.
type ScoringConfig struct {
	FoodValue  int `yaml:"food_value"`
	Multiplier int `yaml:"multiplier"`
}

// PowerUpConfig defines power-up spawning and effect durations.
// Durations are in simulation ticks (one tick = one snake step).
type PowerUpConfig struct {
	SpawnChance        float64 `yaml:"spawn_chance"`   // Chance to spawn when food is eaten (0-1)
	LifetimeTicks      int     `yaml:"lifetime_ticks"` // How long an uncollected token stays on the board
	SpeedTicks         int     `yaml:"speed_ticks"`
	MultiplierTicks    int     `yaml:"multiplier_ticks"`
	InvincibilityTicks int     `yaml:"invincibility_ticks"`
}

// SpeedConfig maps difficulties to the base interval between ticks.
type SpeedConfig struct {
	EasyMS      int     `yaml:"easy_ms"`
	MediumMS    int     `yaml:"medium_ms"`
	HardMS      int     `yaml:"hard_ms"`
	BoostFactor float64 `yaml:"boost_factor"` // Interval multiplier while Speed Boost is active
}

// Interval returns the base tick interval for the given difficulty.
func (s SpeedConfig) Interval(d Difficulty) time.Duration {
	var ms int
	switch d {
	case DifficultyEasy:
		ms = s.EasyMS
	case DifficultyHard:
		ms = s.HardMS
	default:
		ms = s.MediumMS
	}
	return time.Duration(ms) * time.Millisecond
}

// TimeLimit returns the Time Attack duration.
func (s Settings) TimeLimit() time.Duration {
	return time.Duration(s.TimeAttackSeconds) * time.Second
}

// Validate checks the settings and returns all problems found, joined.
func (s Settings) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	if _, err := ParseDifficulty(string(s.Difficulty)); err != nil {
		fail("difficulty %q", s.Difficulty)
	}
	if _, err := ParseMode(string(s.Mode)); err != nil {
		fail("mode %q", s.Mode)
	}
	if !IsColorScheme(s.ColorScheme) {
		fail("color scheme %q", s.ColorScheme)
	}
	if s.TimeAttackSeconds <= 0 {
		fail("time_attack_seconds must be positive, got %d", s.TimeAttackSeconds)
	}
	if s.Grid.Width < 5 || s.Grid.Height < 5 {
		fail("grid must be at least 5x5, got %dx%d", s.Grid.Width, s.Grid.Height)
	}
	if s.Grid.StartLength < 1 || s.Grid.StartLength > s.Grid.Width/2 {
		fail("start_length %d does not fit a grid %d wide", s.Grid.StartLength, s.Grid.Width)
	}
	if s.Scoring.FoodValue <= 0 || s.Scoring.Multiplier < 1 {
		fail("scoring values must be positive")
	}
	if s.PowerUps.SpawnChance < 0 || s.PowerUps.SpawnChance > 1 {
		fail("spawn_chance must be within [0, 1], got %v", s.PowerUps.SpawnChance)
	}
	if s.PowerUps.LifetimeTicks <= 0 || s.PowerUps.SpeedTicks <= 0 ||
		s.PowerUps.MultiplierTicks <= 0 || s.PowerUps.InvincibilityTicks <= 0 {
		fail("power-up durations must be positive")
	}
	if s.Speed.EasyMS <= 0 || s.Speed.MediumMS <= 0 || s.Speed.HardMS <= 0 {
		fail("speed intervals must be positive")
	}
	if s.Speed.BoostFactor <= 0 || s.Speed.BoostFactor > 1 {
		fail("boost_factor must be within (0, 1], got %v", s.Speed.BoostFactor)
	}

	seen := make(map[string]string)
	for _, b := range s.Controls.bindings() {
		action, key := b[0], b[1]
		if key == "" {
			fail("control %q is unbound", action)
			continue
		}
		if other, dup := seen[key]; dup {
			fail("key %q bound to both %s and %s", key, other, action)
		}
		seen[key] = action
	}

	return errors.Join(errs...)
}

// Color schemes available in the Options screen.
const (
	SchemeDefault    = "default"
	SchemeMonochrome = "monochrome"
	SchemeNeon       = "neon"
)

// ColorSchemes returns the scheme names in display order.
func ColorSchemes() []string {
	return []string{SchemeDefault, SchemeMonochrome, SchemeNeon}
}

// IsColorScheme reports whether name is a known scheme.
func IsColorScheme(name string) bool {
	for _, s := range ColorSchemes() {
		if s == strings.ToLower(name) {
			return true
		}
	}
	return false
}

// NextColorScheme returns the scheme after name, wrapping around.
func NextColorScheme(name string) string {
	schemes := ColorSchemes()
	for i, s := range schemes {
		if s == name {
			return schemes[(i+1)%len(schemes)]
		}
	}
	return SchemeDefault
}
