// Package ui shows short-lived notifications at the bottom of a bubbletea view.
package ui

import (
	"strings"
	"time"

	"github.com/anisan-cli/anifetch/style"
	tea "github.com/charmbracelet/bubbletea"
)

// Lifetime is how long a notification stays visible.
const Lifetime = 3 * time.Second

// Model holds the current notification.
type Model struct {
	notification string
	// generation of the notification a clear message refers to
	generation int
}

// NotificationMsg replaces the current notification.
type NotificationMsg string

// ClearNotificationMsg resets the notification if it is still the one it was scheduled for.
type ClearNotificationMsg struct {
	generation int
}

// Notify returns a command that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg(text)
	}
}

func clearAfter(generation int) tea.Cmd {
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{generation: generation}
	})
}

// Update handles notification messages and ignores everything else.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = string(msg)
		m.generation++
		return clearAfter(m.generation)
	case ClearNotificationMsg:
		if msg.generation == m.generation {
			m.notification = ""
		}
	}
	return nil
}

// Notification returns the visible text, empty when there is none.
func (m *Model) Notification() string {
	return m.notification
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.notification == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
