package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// Default returns the hardcoded default settings. It mirrors
// defaults/snake.yaml and is used when the embedded file cannot be parsed.
func Default() Settings {
	return Settings{
		Difficulty:        DifficultyMedium,
		Mode:              ModeClassic,
		ColorScheme:       SchemeDefault,
		PowerUpsEnabled:   true,
		TimeAttackSeconds: 60,
		Controls: Controls{
			Up:    "w",
			Down:  "s",
			Left:  "a",
			Right: "d",
		},
		Grid: GridConfig{
			Width:       40,
			Height:      20,
			StartLength: 3,
		},
		Scoring: ScoringConfig{
			FoodValue:  1,
			Multiplier: 2,
		},
		PowerUps: PowerUpConfig{
			SpawnChance:        0.3,
			LifetimeTicks:      80,
			SpeedTicks:         50,
			MultiplierTicks:    100,
			InvincibilityTicks: 70,
		},
		Speed: SpeedConfig{
			EasyMS:      150,
			MediumMS:    100,
			HardMS:      60,
			BoostFactor: 0.5,
		},
	}
}

// DefaultYAML returns the embedded default settings file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
