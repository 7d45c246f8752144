package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// MenuChoice is what a main menu entry leads to.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceHighScores
	ChoiceInstructions
	ChoiceOptions
	ChoiceQuit
)

// MenuItem is one line of the main menu. GameID is set for play entries.
type MenuItem struct {
	Choice MenuChoice
	GameID string
	Title  string
}

// MenuModel is the main menu: one entry per registered mode followed by
// the other screens.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	settings  config.Settings
	theme     Theme
	keyMapper *KeyMapper
	selected  *MenuItem
}

// NewMenuModel creates a new menu model.
func NewMenuModel(settings config.Settings, width, height int) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+4)
	for _, g := range games {
		items = append(items, MenuItem{Choice: ChoicePlay, GameID: g.ID, Title: "Play " + g.Title})
	}
	items = append(items,
		MenuItem{Choice: ChoiceHighScores, Title: "High Scores"},
		MenuItem{Choice: ChoiceInstructions, Title: "Instructions"},
		MenuItem{Choice: ChoiceOptions, Title: "Options"},
		MenuItem{Choice: ChoiceQuit, Title: "Quit"},
	)

	m := MenuModel{
		items:     items,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(settings.Controls),
	}
	m.SetSettings(settings)

	// Start on the mode the settings prefer.
	for i, it := range items {
		if it.Choice == ChoicePlay && it.GameID == snake.IDForMode(settings.Mode) {
			m.cursor = i
			break
		}
	}
	return m
}

// SetSettings refreshes the subtitle and colors after an Options change.
func (m *MenuModel) SetSettings(s config.Settings) {
	m.settings = s
	m.theme = ThemeFor(s.ColorScheme)
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.selected = &MenuItem{Choice: ChoiceQuit}
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case MenuActionSelect:
			selected := m.items[m.cursor]
			m.selected = &selected
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("S N A K E"), m.width))
	b.WriteString("\n\n")

	powerUps := "off"
	if m.settings.PowerUpsEnabled {
		powerUps = "on"
	}
	sub := fmt.Sprintf("Difficulty: %s  |  Power-ups: %s", m.settings.Difficulty.Title(), powerUps)
	b.WriteString(centerText(m.theme.Hint.Render(sub), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + m.theme.Item.Render(item.Title)
		if i == m.cursor {
			line = m.theme.Active.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Hint.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen entry, or nil while the user is still choosing.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// clearSelection readies the menu to be shown again.
func (m *MenuModel) clearSelection() {
	m.selected = nil
}
