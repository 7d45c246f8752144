package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// GameOverChoice is what the player picked on the game-over screen.
type GameOverChoice int

const (
	GameOverNone GameOverChoice = iota
	GameOverPlayAgain
	GameOverScores
	GameOverMenu
	GameOverQuit
)

var gameOverItems = []struct {
	title  string
	choice GameOverChoice
}{
	{"Play again", GameOverPlayAgain},
	{"High Scores", GameOverScores},
	{"Main menu", GameOverMenu},
}

// GameOverModel shows the result of a finished game.
type GameOverModel struct {
	summary   core.Summary
	name      string
	rank      int // 0-based high-score rank, -1 when not placed
	best      int
	cursor    int
	theme     Theme
	keyMapper *KeyMapper
	width     int
	height    int
	choice    GameOverChoice
}

// NewGameOverModel creates the screen for a finished game.
func NewGameOverModel(summary core.Summary, theme Theme, width, height int) GameOverModel {
	return GameOverModel{
		summary:   summary,
		rank:      -1,
		theme:     theme,
		keyMapper: NewKeyMapper(config.Controls{}),
		width:     width,
		height:    height,
	}
}

// SetBest sets the table's top score shown under the result.
func (m *GameOverModel) SetBest(best int) { m.best = best }

// SetRank records where the player's name landed in the table.
func (m *GameOverModel) SetRank(name string, rank int) {
	m.name = name
	m.rank = rank
}

// Update handles messages for the game-over screen.
func (m GameOverModel) Update(msg tea.Msg) (GameOverModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "r" {
			m.choice = GameOverPlayAgain
			return m, nil
		}
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.choice = GameOverQuit
		case MenuActionBack:
			m.choice = GameOverMenu
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(gameOverItems)-1 {
				m.cursor++
			}
		case MenuActionSelect:
			m.choice = gameOverItems[m.cursor].choice
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the game-over screen.
func (m GameOverModel) View() string {
	s := m.summary
	var b strings.Builder

	title := "GAME OVER"
	switch {
	case s.Won:
		title = "BOARD FULL - YOU WIN!"
	case snake.EndReason(s.Reason) == snake.ReasonTimeUp:
		title = "TIME'S UP!"
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render(title), m.width))
	b.WriteString("\n\n")

	lines := []string{
		fmt.Sprintf("%s  |  %s", config.Mode(s.Mode).Title(), config.Difficulty(s.Difficulty).Title()),
		fmt.Sprintf("Final Score: %d", s.Score),
		fmt.Sprintf("Food eaten: %d  |  Time: %s", s.Eaten, s.Duration.Round(time.Second)),
	}
	if m.best > 0 {
		lines = append(lines, fmt.Sprintf("Best: %d", max(m.best, s.Score)))
	}
	if reason := reasonText(s.Reason); reason != "" {
		lines = append(lines, reason)
	}
	for _, l := range lines {
		b.WriteString(centerText(m.theme.Value.Render(l), m.width))
		b.WriteString("\n")
	}
	if m.rank >= 0 {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.Status.Render(fmt.Sprintf("%s placed #%d on the high-score table", m.name, m.rank+1)), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, it := range gameOverItems {
		line := "  " + m.theme.Item.Render(it.title)
		if i == m.cursor {
			line = m.theme.Active.Render("> " + it.title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Hint.Render("Enter: Select  |  R: Play again  |  Esc: Menu"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Choice returns the player's pick, or GameOverNone.
func (m GameOverModel) Choice() GameOverChoice { return m.choice }

// clearChoice readies the screen to be shown again.
func (m *GameOverModel) clearChoice() { m.choice = GameOverNone }

func reasonText(reason string) string {
	switch snake.EndReason(reason) {
	case snake.ReasonWall:
		return "You hit the wall."
	case snake.ReasonSelf:
		return "You ran into yourself."
	case snake.ReasonBoardFull:
		return "There is no room left for food."
	}
	return ""
}
