package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Kind tags a token on the board.
type Kind int

const (
	KindFood Kind = iota
	KindSpeedBoost
	KindScoreMultiplier
	KindInvincibility
	kindCount
)

// PowerUpKinds returns the kinds that can spawn as power-ups.
func PowerUpKinds() []Kind {
	return []Kind{KindSpeedBoost, KindScoreMultiplier, KindInvincibility}
}

// Glyph returns the board character for the kind.
func (k Kind) Glyph() rune {
	switch k {
	case KindFood:
		return '*'
	case KindSpeedBoost:
		return '▲'
	case KindScoreMultiplier:
		return '■'
	case KindInvincibility:
		return '●'
	default:
		return '?'
	}
}

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFood:
		return "Food"
	case KindSpeedBoost:
		return "Speed Boost"
	case KindScoreMultiplier:
		return "Score x2"
	case KindInvincibility:
		return "Invincible"
	default:
		return "?"
	}
}

// Color returns the default board color of the kind.
func (k Kind) Color() core.Color {
	switch k {
	case KindFood:
		return core.ColorRed
	case KindSpeedBoost:
		return core.ColorBrightYellow
	case KindScoreMultiplier:
		return core.ColorBrightMagenta
	case KindInvincibility:
		return core.ColorBrightCyan
	default:
		return core.ColorDefault
	}
}

// Token is a collectible on the board. TTL counts down the ticks a
// power-up stays on the board before it disappears; food has no TTL.
type Token struct {
	Cell Cell
	Kind Kind
	TTL  int
}
