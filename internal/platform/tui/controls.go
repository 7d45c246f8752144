package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var controlActions = []string{"up", "down", "left", "right"}

// ControlsModel rebinds the movement keys: select an action, then press
// the new key.
type ControlsModel struct {
	controls  config.Controls
	cursor    int // len(controlActions) is the Back row
	capturing bool
	message   string
	theme     Theme
	keyMapper *KeyMapper
	width     int
	height    int
	done      bool
}

// NewControlsModel creates the Controls screen.
func NewControlsModel(c config.Controls, theme Theme, width, height int) ControlsModel {
	return ControlsModel{
		controls:  c,
		theme:     theme,
		keyMapper: NewKeyMapper(c),
		width:     width,
		height:    height,
	}
}

// Update handles messages for the Controls screen.
func (m ControlsModel) Update(msg tea.Msg) (ControlsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.capturing {
			m.bind(msg.String())
			return m, nil
		}
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit, MenuActionBack:
			m.done = true
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(controlActions) {
				m.cursor++
			}
		case MenuActionSelect:
			if m.cursor == len(controlActions) {
				m.done = true
				break
			}
			m.capturing = true
			m.message = fmt.Sprintf("Press a key for %s (Esc cancels)", controlActions[m.cursor])
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m *ControlsModel) bind(key string) {
	m.capturing = false
	action := controlActions[m.cursor]

	switch {
	case key == "esc":
		m.message = ""
		return
	case IsReservedKey(key):
		m.message = fmt.Sprintf("%q is reserved", key)
		return
	}

	for _, other := range controlActions {
		if other != action && m.controls.Get(other) == key {
			m.message = fmt.Sprintf("%q is already bound to %s", key, other)
			return
		}
	}

	m.controls.Set(action, key)
	m.message = fmt.Sprintf("%s bound to %q", action, key)
}

// View renders the Controls screen.
func (m ControlsModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("CONTROLS"), m.width))
	b.WriteString("\n\n")

	for i, action := range controlActions {
		line := fmt.Sprintf("%-6s %s", action, m.theme.Value.Render(m.controls.Get(action)))
		if i == m.cursor {
			line = m.theme.Active.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	back := "  Back"
	if m.cursor == len(controlActions) {
		back = m.theme.Active.Render("> Back")
	}
	b.WriteString(centerText(back, m.width))
	b.WriteString("\n\n")

	if m.message != "" {
		b.WriteString(centerText(m.theme.Status.Render(m.message), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(m.theme.Hint.Render("Arrow keys always steer  |  Enter: Rebind  |  Esc: Back"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Controls returns the edited bindings.
func (m ControlsModel) Controls() config.Controls { return m.controls }

// IsDone returns true once the user leaves the screen.
func (m ControlsModel) IsDone() bool { return m.done }
