// Package tui provides the Bubble Tea front end for the snake game: the
// screen flow, input mapping, tick scheduling and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the running game to advance one step. Gen identifies the
// game run that scheduled it; ticks from an older run are dropped.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd schedules one tick after d. The game decides the next interval,
// so ticks are chained one at a time instead of running at a fixed rate.
func tickCmd(d time.Duration, gen int) tea.Cmd {
	if d <= 0 {
		d = time.Millisecond
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
