// Package style renders terminal text with lipgloss.
package style

import "github.com/charmbracelet/lipgloss"

// Fg returns a renderer with the given foreground.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return lipgloss.NewStyle().Foreground(c).Render(s) }
}

var (
	Faint = func(s string) string { return lipgloss.NewStyle().Faint(true).Render(s) }
	Bold  = func(s string) string { return lipgloss.NewStyle().Bold(true).Render(s) }

	Accent    = Fg(AccentColor)
	Secondary = Fg(SecondaryColor)
	Info      = Fg(InfoColor)
	Success   = Fg(SuccessColor)
	Warning   = Fg(WarningColor)
	Error     = Fg(ErrorColor)
)

// Header renders a bold heading in c.
func Header(c lipgloss.Color) func(string) string {
	return func(s string) string { return lipgloss.NewStyle().Bold(true).Foreground(c).Render(s) }
}

// Badge renders a padded label on a c background.
func Badge(c lipgloss.Color) func(string) string {
	return func(s string) string {
		return lipgloss.NewStyle().Foreground(BadgeColor).Background(c).Padding(0, 1).Render(s)
	}
}
