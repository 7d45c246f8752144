package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// instructionsView renders the help screen for the current settings.
func instructionsView(s config.Settings, theme Theme, width int) string {
	var b strings.Builder
	line := func(text string, style func(...string) string) {
		b.WriteString(centerText(style(text), width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	line("HOW TO PLAY", theme.Title.Render)
	b.WriteString("\n")
	line("Steer the snake to the food. Each bite makes it one cell longer.", theme.Item.Render)
	line("Hitting a wall or your own body ends the game.", theme.Item.Render)
	line(fmt.Sprintf("Time Attack: score as much as you can in %d seconds.", s.TimeAttackSeconds), theme.Item.Render)
	b.WriteString("\n")

	line("Keys", theme.Active.Render)
	c := s.Controls
	line(fmt.Sprintf("Move: %s %s %s %s or arrow keys", c.Up, c.Left, c.Down, c.Right), theme.Value.Render)
	line("P / Space: Pause   Esc: Back   Q: Quit", theme.Value.Render)
	b.WriteString("\n")

	line("Board", theme.Active.Render)
	for _, k := range append([]snake.Kind{snake.KindFood}, snake.PowerUpKinds()...) {
		line(fmt.Sprintf("%c  %s", k.Glyph(), glyphHelp(k)), theme.Value.Render)
	}
	if !s.PowerUpsEnabled {
		line("(power-ups are turned off in Options)", theme.Hint.Render)
	}
	b.WriteString("\n")

	line("Esc: Back", theme.Hint.Render)
	return b.String()
}

func glyphHelp(k snake.Kind) string {
	switch k {
	case snake.KindFood:
		return "Food: grow and score"
	case snake.KindSpeedBoost:
		return "Speed boost: the snake moves faster for a while"
	case snake.KindScoreMultiplier:
		return "Multiplier: food is worth double"
	case snake.KindInvincibility:
		return "Invincibility: pass through walls and yourself"
	}
	return k.String()
}
