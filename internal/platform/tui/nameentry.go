package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/highscore"
)

// NameEntryModel asks for the player's name after a qualifying game.
type NameEntryModel struct {
	input     textinput.Model
	summary   core.Summary
	theme     Theme
	width     int
	height    int
	submitted bool
	skipped   bool
}

// NewNameEntryModel creates the prompt, prefilled with name.
func NewNameEntryModel(summary core.Summary, name string, theme Theme, width, height int) NameEntryModel {
	ti := textinput.New()
	ti.Placeholder = "Anonymous"
	ti.CharLimit = highscore.MaxNameLen
	ti.Width = highscore.MaxNameLen + 1
	ti.Prompt = "Name: "
	ti.SetValue(name)
	ti.Focus()

	return NameEntryModel{
		input:   ti,
		summary: summary,
		theme:   theme,
		width:   width,
		height:  height,
	}
}

// Init starts the cursor blinking.
func (m NameEntryModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the prompt.
func (m NameEntryModel) Update(msg tea.Msg) (NameEntryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.submitted = true
			return m, nil
		case "esc", "ctrl+c":
			m.skipped = true
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt.
func (m NameEntryModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("NEW HIGH SCORE!"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Value.Render(fmt.Sprintf("Score: %d", m.summary.Score)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.input.View(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Hint.Render("Enter: Save  |  Esc: Skip"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Name returns the cleaned name typed so far.
func (m NameEntryModel) Name() string {
	return highscore.CleanName(m.input.Value())
}

// IsSubmitted returns true once the name was confirmed.
func (m NameEntryModel) IsSubmitted() bool { return m.submitted }

// IsSkipped returns true if the user declined to enter a name.
func (m NameEntryModel) IsSkipped() bool { return m.skipped }
