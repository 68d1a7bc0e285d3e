package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := b.notifier.Update(msg)

	switch msg := msg.(type) {
	case changedMsg:
		return b, tea.Batch(cmd, b.refresh())
	case spinner.TickMsg:
		var tick tea.Cmd
		b.spinnerC, tick = b.spinnerC.Update(msg)
		return b, tea.Batch(cmd, tick)
	case error:
		b.raiseError(msg)
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, cmd
		}
	}

	var next tea.Cmd
	switch b.state {
	case sourcesState:
		next = b.updateSources(msg)
	case resultsState:
		next = b.updateResults(msg)
	case errorState:
		next = b.updateError(msg)
	}

	return b, tea.Batch(cmd, next)
}

func (b *statefulBubble) updateSources(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if bubblesKey.Matches(msg, b.keymap.switchView) {
			b.newState(resultsState)
			return nil
		}
		if bubblesKey.Matches(msg, b.keymap.restartAll) {
			return b.restartAll()
		}

		if r, ok := b.selectedSource(); ok {
			switch {
			case bubblesKey.Matches(msg, b.keymap.toggle):
				return b.toggleSource(r)
			case bubblesKey.Matches(msg, b.keymap.enable):
				return b.enableSource(r)
			case bubblesKey.Matches(msg, b.keymap.disable):
				return b.disableSource(r)
			case bubblesKey.Matches(msg, b.keymap.restart):
				return b.restartSource(r)
			case bubblesKey.Matches(msg, b.keymap.saveAsDefault):
				return b.saveAsDefault(r)
			}
		}
	}

	var cmd tea.Cmd
	b.sourcesC, cmd = b.sourcesC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateResults(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.switchView):
			b.newState(sourcesState)
			return nil
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if m, ok := b.selectedMedia(); ok {
				return b.openMedia(m)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	b.resultsC, cmd = b.resultsC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.quit) {
		return tea.Quit
	}
	return nil
}
