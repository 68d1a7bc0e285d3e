package tui

import (
	"fmt"
	"strings"

	"github.com/anisan-cli/anifetch/fetch"
	"github.com/anisan-cli/anifetch/icon"
	"github.com/anisan-cli/anifetch/style"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case sourcesState:
		output = b.viewList(&b.sourcesC)
	case resultsState:
		output = b.viewList(&b.resultsC)
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

// progress renders "spinner 3/5 sources done" while the session runs.
func (b *statefulBubble) progress() string {
	sources := b.session.Sources()
	settled := lo.CountBy(sources, func(r *fetch.SourceResult) bool {
		return fetch.Settled(r.State())
	})

	if b.completed {
		return style.Success(fmt.Sprintf("%s %d/%d sources done", icon.Get(icon.Success), settled, len(sources)))
	}
	return fmt.Sprintf("%s %d/%d sources done", b.spinnerC.View(), settled, len(sources))
}

// viewList shows the session progress in the list's status bar.
func (b *statefulBubble) viewList(l *list.Model) string {
	l.NewStatusMessage(b.progress())
	return listExtraPaddingStyle.Render(l.View())
}

func (b *statefulBubble) viewError() string {
	errorMsg := wrap.String(style.Header(style.ErrorColor)(b.lastError.Error()), b.width)
	return b.renderLines(
		true,
		[]string{
			style.Badge(style.ErrorColor)("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
