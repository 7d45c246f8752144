package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// Theme holds the lipgloss styles of the menu screens.
type Theme struct {
	Title      lipgloss.Style
	Item       lipgloss.Style
	Active     lipgloss.Style
	Value      lipgloss.Style
	Hint       lipgloss.Style
	Status     lipgloss.Style
	Error      lipgloss.Style
	Border     lipgloss.Color
	SelectedFg lipgloss.Color
	SelectedBg lipgloss.Color
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:      lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Item:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Active:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Value:      lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		Hint:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Border:     lipgloss.Color("240"),
		SelectedFg: lipgloss.Color("229"),
		SelectedBg: lipgloss.Color("57"),
	}
}

// NeonTheme returns a brighter theme.
func NeonTheme() Theme {
	t := DefaultTheme()
	t.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("199")).Bold(true)
	t.Active = lipgloss.NewStyle().Foreground(lipgloss.Color("87")).Bold(true)
	t.Value = lipgloss.NewStyle().Foreground(lipgloss.Color("118"))
	t.SelectedBg = lipgloss.Color("129")
	return t
}

// MonochromeTheme returns a grayscale theme.
func MonochromeTheme() Theme {
	t := DefaultTheme()
	t.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	t.Active = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Underline(true)
	t.Value = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	t.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	t.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	t.SelectedFg = lipgloss.Color("0")
	t.SelectedBg = lipgloss.Color("250")
	return t
}

// ThemeFor returns the theme of a color scheme.
func ThemeFor(scheme string) Theme {
	switch strings.ToLower(scheme) {
	case config.SchemeNeon:
		return NeonTheme()
	case config.SchemeMonochrome:
		return MonochromeTheme()
	default:
		return DefaultTheme()
	}
}

// centerText centers text within given width. Styled text is measured
// by its visible width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
