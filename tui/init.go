package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init observes every enabled source of the session.
func (b *statefulBubble) Init() tea.Cmd {
	b.session.Start()
	return tea.Batch(b.spinnerC.Tick, b.refresh())
}
