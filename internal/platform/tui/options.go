package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// Time Attack limits selectable in the Options screen.
const (
	timeLimitStep = 15
	timeLimitMin  = 15
	timeLimitMax  = 600
)

type optionRow int

const (
	optDifficulty optionRow = iota
	optMode
	optScheme
	optPowerUps
	optTimeLimit
	optControls
	optBack
	optionRows
)

// OptionsModel edits the player settings. The caller persists them once
// the screen is closed.
type OptionsModel struct {
	settings  config.Settings
	cursor    optionRow
	theme     Theme
	keyMapper *KeyMapper
	width     int
	height    int
	changed   bool
	done      bool
	controls  bool
	quitting  bool
}

// NewOptionsModel creates the Options screen for the given settings.
func NewOptionsModel(settings config.Settings, width, height int) OptionsModel {
	return OptionsModel{
		settings:  settings,
		theme:     ThemeFor(settings.ColorScheme),
		keyMapper: NewKeyMapper(settings.Controls),
		width:     width,
		height:    height,
	}
}

// Update handles messages for the Options screen.
func (m OptionsModel) Update(msg tea.Msg) (OptionsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
		case MenuActionBack:
			m.done = true
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < optionRows-1 {
				m.cursor++
			}
		case MenuActionLeft:
			m.adjust(-1)
		case MenuActionRight:
			m.adjust(1)
		case MenuActionSelect:
			switch m.cursor {
			case optControls:
				m.controls = true
			case optBack:
				m.done = true
			default:
				m.adjust(1)
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// adjust changes the value of the current row. Cyclic values ignore the
// direction.
func (m *OptionsModel) adjust(delta int) {
	s := &m.settings
	switch m.cursor {
	case optDifficulty:
		s.Difficulty = s.Difficulty.Next()
	case optMode:
		s.Mode = s.Mode.Next()
	case optScheme:
		s.ColorScheme = config.NextColorScheme(s.ColorScheme)
		m.theme = ThemeFor(s.ColorScheme)
	case optPowerUps:
		s.PowerUpsEnabled = !s.PowerUpsEnabled
	case optTimeLimit:
		secs := s.TimeAttackSeconds + delta*timeLimitStep
		s.TimeAttackSeconds = min(max(secs, timeLimitMin), timeLimitMax)
	default:
		return
	}
	m.changed = true
}

// View renders the Options screen.
func (m OptionsModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("OPTIONS"), m.width))
	b.WriteString("\n\n")

	for row := range optionRows {
		label, value := m.row(row)
		line := fmt.Sprintf("%-14s %s", label, m.theme.Value.Render(value))
		if value == "" {
			line = label
		}
		if row == m.cursor {
			line = m.theme.Active.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Hint.Render("Up/Down: Navigate  |  Left/Right: Change  |  Esc: Save & back"), m.width))
	b.WriteString("\n")
	return b.String()
}

func (m OptionsModel) row(r optionRow) (label, value string) {
	s := m.settings
	switch r {
	case optDifficulty:
		return "Difficulty", s.Difficulty.Title()
	case optMode:
		return "Default mode", s.Mode.Title()
	case optScheme:
		return "Color scheme", s.ColorScheme
	case optPowerUps:
		if s.PowerUpsEnabled {
			return "Power-ups", "on"
		}
		return "Power-ups", "off"
	case optTimeLimit:
		return "Time limit", fmt.Sprintf("%ds", s.TimeAttackSeconds)
	case optControls:
		return "Controls...", ""
	default:
		return "Back", ""
	}
}

// Settings returns the edited settings.
func (m OptionsModel) Settings() config.Settings { return m.settings }

// SetControls stores bindings edited on the Controls screen.
func (m *OptionsModel) SetControls(c config.Controls) {
	if c != m.settings.Controls {
		m.settings.Controls = c
		m.changed = true
	}
	m.controls = false
}

// Changed reports whether any value was edited.
func (m OptionsModel) Changed() bool { return m.changed }

// IsDone returns true once the user leaves the screen.
func (m OptionsModel) IsDone() bool { return m.done }

// WantsControls returns true if the user opened the Controls screen.
func (m OptionsModel) WantsControls() bool { return m.controls }

// IsQuitting returns true if user wants to quit entirely.
func (m OptionsModel) IsQuitting() bool { return m.quitting }
