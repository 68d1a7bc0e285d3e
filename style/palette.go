package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors by role. ANSI indices, so they follow the terminal theme.
var (
	AccentColor    = lipgloss.Color("5")
	SecondaryColor = lipgloss.Color("12")
	InfoColor      = lipgloss.Color("4")
	SuccessColor   = lipgloss.Color("2")
	WarningColor   = lipgloss.Color("3")
	ErrorColor     = lipgloss.Color("1")
	FaintColor     = lipgloss.Color("8")
	// BadgeColor is the foreground of title badges.
	BadgeColor = lipgloss.Color("230")
)

// StateColor colors a source state by the name fetch states print.
func StateColor(state string) lipgloss.Color {
	switch {
	case state == "fetching":
		return WarningColor
	case state == "succeed":
		return SuccessColor
	case strings.HasPrefix(state, "failed"):
		return ErrorColor
	default:
		return FaintColor
	}
}

// MatchColor colors a match kind by name.
func MatchColor(kind string) lipgloss.Color {
	switch kind {
	case "exact":
		return SuccessColor
	case "fuzzy":
		return WarningColor
	default:
		return FaintColor
	}
}
