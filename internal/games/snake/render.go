package snake

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// hudHeight is the number of rows above the board.
const hudHeight = 2

// Palette holds the colors of one color scheme.
type Palette struct {
	Head       core.Color
	Shielded   core.Color // head color while invincible
	Body       core.Color
	Food       core.Color
	Border     core.Color
	HUD        core.Color
	Accent     core.Color
	Monochrome bool // power-ups drawn without their own colors
}

// PaletteFor returns the palette of a color scheme. Unknown names get the
// default scheme.
func PaletteFor(scheme string) Palette {
	switch scheme {
	case config.SchemeMonochrome:
		return Palette{
			Head:       core.ColorBrightWhite,
			Shielded:   core.ColorBrightWhite,
			Body:       core.ColorWhite,
			Food:       core.ColorBrightWhite,
			Border:     core.ColorGray,
			HUD:        core.ColorWhite,
			Accent:     core.ColorBrightWhite,
			Monochrome: true,
		}
	case config.SchemeNeon:
		return Palette{
			Head:     core.ColorBrightCyan,
			Shielded: core.ColorBrightWhite,
			Body:     core.ColorBrightMagenta,
			Food:     core.ColorBrightYellow,
			Border:   core.ColorPurple,
			HUD:      core.ColorBrightCyan,
			Accent:   core.ColorBrightYellow,
		}
	default:
		return Palette{
			Head:     core.ColorBrightGreen,
			Shielded: core.ColorBrightCyan,
			Body:     core.ColorGreen,
			Food:     core.ColorRed,
			Border:   core.ColorGray,
			HUD:      core.ColorDefault,
			Accent:   core.ColorYellow,
		}
	}
}

func (p Palette) token(k Kind) core.Color {
	if k == KindFood {
		return p.Food
	}
	if p.Monochrome {
		return p.Accent
	}
	return k.Color()
}

// MinScreenSize returns the smallest screen the board fits on.
func (g *Game) MinScreenSize() (w, h int) {
	grid := g.ctrl.Session().Grid()
	return grid.Width + 2, grid.Height + 2 + hudHeight
}

// Render draws the HUD, the board and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	minW, minH := g.MinScreenSize()
	if dst.Width() < minW || dst.Height() < minH {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Resize to %dx%d", minW, minH))
		return
	}

	s := g.ctrl.Session()
	grid := s.Grid()
	ox := (dst.Width() - grid.Width) / 2
	oy := hudHeight + 1

	dst.DrawBox(core.NewRect(ox-1, oy-1, grid.Width+2, grid.Height+2), g.palette.Border)

	if food, ok := s.Food(); ok {
		dst.SetColored(ox+food.Cell.X, oy+food.Cell.Y, food.Kind.Glyph(), g.palette.token(food.Kind))
	}
	if p, ok := s.PowerUp(); ok {
		glyph := p.Kind.Glyph()
		// Blink during the last few ticks.
		if p.TTL > 10 || p.TTL%2 == 0 {
			dst.SetColored(ox+p.Cell.X, oy+p.Cell.Y, glyph, g.palette.token(p.Kind))
		}
	}

	g.renderSnake(dst, ox, oy)

	switch s.State() {
	case StatePaused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	case StateWon:
		g.renderOverlay(dst, "Board full!", fmt.Sprintf("Final Score: %d", s.Score()))
	case StateLost:
		title := "Game Over"
		if s.Reason() == ReasonTimeUp {
			title = "Time's up!"
		}
		g.renderOverlay(dst, title, fmt.Sprintf("Final Score: %d", s.Score()))
	}
}

func (g *Game) renderSnake(dst *core.Screen, ox, oy int) {
	body := g.ctrl.Session().Body()
	shielded := g.ctrl.Session().Effects().Active(KindInvincibility)

	cells := body.Cells()
	// Draw tail first so the head wins when segments overlap.
	for i := len(cells) - 1; i >= 0; i-- {
		c := cells[i]
		if i == 0 {
			color := g.palette.Head
			if shielded {
				color = g.palette.Shielded
			}
			dst.SetColored(ox+c.X, oy+c.Y, 'O', color)
			continue
		}
		dst.SetColored(ox+c.X, oy+c.Y, 'o', g.palette.Body)
	}
}

// renderHUD draws the status line and its separator.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.ctrl.Session()

	left := fmt.Sprintf(" Snake · %s · %s   Score: %d   Length: %d",
		g.mode.Title(), g.ctrl.Difficulty().Title(), s.Score(), s.Body().Len())
	if g.mode == config.ModeTimeAttack {
		left += "   Time: " + formatClock(g.ctrl.Remaining())
	}
	dst.DrawTextColored(0, 0, left, g.palette.HUD)

	// Active effects and the latest status message, right aligned.
	var parts []string
	effects := s.Effects()
	for _, k := range PowerUpKinds() {
		if n := effects.Remaining(k); n > 0 {
			parts = append(parts, fmt.Sprintf("%c %d", k.Glyph(), n))
		}
	}
	if g.flashLeft > 0 && g.flash != "" {
		parts = append(parts, g.flash)
	}
	right := strings.Join(parts, "  ") + " "
	x := dst.Width() - utf8.RuneCountInString(right)
	if x > utf8.RuneCountInString(left) {
		dst.DrawTextColored(x, 0, right, g.palette.Accent)
	}

	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2)) + 4
	h := 5
	r := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)

	dst.DrawRect(r, ' ')
	dst.DrawBox(r, g.palette.Accent)
	dst.DrawTextCentered(r.Y+1, line1)
	dst.DrawTextCentered(r.Y+3, line2)
}

// formatClock renders a duration as m:ss, rounding up so the display
// only reads 0:00 once time is really out.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
