package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/highscore"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// historyRows is how many sessions a history tab lists.
const historyRows = 20

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev tab"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "enter"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// scoreTab is one page of the scoreboard: the top-five table, or the
// recorded history of one mode.
type scoreTab struct {
	title string
	mode  config.Mode // empty for the top-five tab
}

// ScoreboardModel shows the high-score table and the session history.
type ScoreboardModel struct {
	tabs      []scoreTab
	tabCursor int
	scores    *highscore.FileStore
	history   *storage.Store
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	theme     Theme
	rows      []table.Row
	stats     string
	err       error
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard and loads its first tab.
// history may be nil when the database could not be opened.
func NewScoreboardModel(scores *highscore.FileStore, history *storage.Store, theme Theme, width, height int) ScoreboardModel {
	tabs := []scoreTab{{title: "Top 5"}}
	if history != nil {
		for _, mode := range config.Modes() {
			tabs = append(tabs, scoreTab{title: mode.Title(), mode: mode})
		}
	}

	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := ScoreboardModel{
		tabs:    tabs,
		scores:  scores,
		history: history,
		keys:    DefaultScoreboardKeyMap(),
		help:    h,
		theme:   theme,
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	detail := "Mode"
	if len(m.tabs) > 0 && m.tabs[m.tabCursor].mode != "" {
		detail = "Difficulty"
	}
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Name", Width: highscore.MaxNameLen},
		{Title: "Score", Width: 7},
		{Title: detail, Width: 11},
		{Title: "Date", Width: 12},
	}

	height := m.height - 10
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(m.theme.SelectedFg).
		Background(m.theme.SelectedBg).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the current tab from disk.
func (m *ScoreboardModel) load() {
	m.rows = nil
	m.stats = ""
	m.err = nil

	tab := m.tabs[m.tabCursor]
	if tab.mode == "" {
		m.loadTopFive()
	} else {
		m.loadHistory(tab.mode)
	}

	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) loadTopFive() {
	if m.scores == nil {
		return
	}
	t, err := m.scores.Load()
	if err != nil {
		// A corrupt file still yields an empty table.
		m.err = err
	}
	for i, e := range t {
		m.rows = append(m.rows, table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Name,
			fmt.Sprintf("%d", e.Score),
			modeTitle(e.Mode),
			formatDate(e.When),
		})
	}
}

func (m *ScoreboardModel) loadHistory(mode config.Mode) {
	records, err := m.history.TopSessions(string(mode), historyRows)
	if err != nil {
		m.err = err
		return
	}
	for i, r := range records {
		name := r.Player
		if name == "" {
			name = "-"
		}
		m.rows = append(m.rows, table.Row{
			fmt.Sprintf("#%d", i+1),
			name,
			fmt.Sprintf("%d", r.Score),
			difficultyTitle(r.Difficulty),
			formatDate(r.CreatedAt),
		})
	}

	st, err := m.history.Stats(string(mode))
	if err != nil {
		m.err = err
		return
	}
	m.stats = fmt.Sprintf("Games: %d  |  Best: %d  |  Food eaten: %d  |  Time played: %s",
		st.Games, st.Best, st.TotalEaten, st.PlayTime.Round(time.Second))
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (ScoreboardModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.tabCursor = (m.tabCursor + 1) % len(m.tabs)
			m.table = m.createTable()
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tabCursor = (m.tabCursor + len(m.tabs) - 1) % len(m.tabs)
			m.table = m.createTable()
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(m.rows)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.tabs))
	activeTab := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.theme.SelectedFg).
		Background(m.theme.SelectedBg).
		Padding(0, 1)
	for i, t := range m.tabs {
		if i == m.tabCursor {
			tabs[i] = activeTab.Render(t.title)
		} else {
			tabs[i] = m.theme.Hint.Render(" " + t.title + " ")
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)
	for _, line := range strings.Split(tableStyle.Render(m.renderTableContent()), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.stats != "" {
		b.WriteString(centerText(m.theme.Value.Render(m.stats), m.width))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(centerText(m.theme.Error.Render(m.err.Error()), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Hint.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) renderTableContent() string {
	if len(m.rows) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// Rows returns the rows of the current tab.
func (m ScoreboardModel) Rows() []table.Row {
	return m.rows
}

func modeTitle(mode string) string {
	if mode == "" {
		return "-"
	}
	return config.Mode(mode).Title()
}

func difficultyTitle(d string) string {
	if d == "" {
		return "-"
	}
	return config.Difficulty(d).Title()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("Jan 02 15:04")
}
