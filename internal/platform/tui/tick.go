// Package tui provides the Bubble Tea integration for the 2048 boards.
// It handles the terminal UI loop, input mapping, persistence of runs, and
// the SSH session flow.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Chain identifies the tick loop that produced it; ticks from a loop that
// was replaced by a restart are dropped.
type TickMsg struct {
	Chain string
	Time  time.Time
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(chain string, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Chain: chain, Time: t}
	})
}
