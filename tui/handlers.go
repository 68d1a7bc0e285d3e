package tui

import (
	"fmt"

	"github.com/anisan-cli/anifetch/fetch"
	"github.com/anisan-cli/anifetch/internal/ui"
	"github.com/anisan-cli/anifetch/key"
	"github.com/anisan-cli/anifetch/open"
	"github.com/anisan-cli/anifetch/prefs"
	"github.com/anisan-cli/anifetch/source"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// changedMsg is sent when any source of the session changed.
type changedMsg struct{}

// waitForChange blocks on a channel obtained before the last refresh, so no change is missed.
func waitForChange(changed <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-changed
		return changedMsg{}
	}
}

// refresh rebuilds both lists from the session and returns the command waiting for the next change.
func (b *statefulBubble) refresh() tea.Cmd {
	changed := b.session.Changed()

	sources := lo.Map(b.session.Sources(), func(r *fetch.SourceResult, _ int) list.Item {
		return &listItem{internal: r}
	})
	results := lo.Map(b.session.Results(), func(m source.MatchMedia, _ int) list.Item {
		return &listItem{internal: m}
	})

	completed := b.session.HasCompleted()
	var status tea.Cmd
	if completed && !b.completed {
		status = ui.Notify(fmt.Sprintf("completed with %d results", len(results)))
	}
	b.completed = completed

	return tea.Batch(
		b.sourcesC.SetItems(sources),
		b.resultsC.SetItems(results),
		status,
		waitForChange(changed),
	)
}

func (b *statefulBubble) selectedSource() (*fetch.SourceResult, bool) {
	item, ok := b.sourcesC.SelectedItem().(*listItem)
	if !ok {
		return nil, false
	}
	r, ok := item.internal.(*fetch.SourceResult)
	return r, ok
}

func (b *statefulBubble) selectedMedia() (source.MatchMedia, bool) {
	item, ok := b.resultsC.SelectedItem().(*listItem)
	if !ok {
		return source.MatchMedia{}, false
	}
	m, ok := item.internal.(source.MatchMedia)
	return m, ok
}

func (b *statefulBubble) enableSource(r *fetch.SourceResult) tea.Cmd {
	r.Enable()
	b.session.Start()
	return ui.Notify(fmt.Sprintf("%s enabled", r.ID()))
}

func (b *statefulBubble) disableSource(r *fetch.SourceResult) tea.Cmd {
	r.Disable()
	return ui.Notify(fmt.Sprintf("%s disabled", r.ID()))
}

func (b *statefulBubble) toggleSource(r *fetch.SourceResult) tea.Cmd {
	if _, disabled := r.State().(fetch.Disabled); disabled {
		return b.enableSource(r)
	}
	return b.disableSource(r)
}

func (b *statefulBubble) restartSource(r *fetch.SourceResult) tea.Cmd {
	r.Restart()
	b.session.Start()
	return ui.Notify(fmt.Sprintf("%s restarted", r.ID()))
}

func (b *statefulBubble) restartAll() tea.Cmd {
	for _, r := range b.session.Sources() {
		if _, disabled := r.State().(fetch.Disabled); !disabled {
			r.Restart()
		}
	}
	b.session.Start()
	return ui.Notify("restarted enabled sources")
}

// saveAsDefault persists whether the source starts enabled in future sessions.
func (b *statefulBubble) saveAsDefault(r *fetch.SourceResult) tea.Cmd {
	_, disabled := r.State().(fetch.Disabled)
	if err := prefs.SetEnabled(r.ID(), !disabled); err != nil {
		return func() tea.Msg {
			return err
		}
	}
	return ui.Notify(fmt.Sprintf("%s will start %s", r.ID(), lo.Ternary(disabled, "disabled", "enabled")))
}

func (b *statefulBubble) openMedia(m source.MatchMedia) tea.Cmd {
	return func() tea.Msg {
		if err := open.Media(m.Media, viper.GetString(key.TUIOpenWith)); err != nil {
			return err
		}
		return ui.NotificationMsg(fmt.Sprintf("opened %s", m.Media))
	}
}
