package tui

import (
	"github.com/anisan-cli/anifetch/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
)

// statefulKeymap holds every binding; help picks those of the current state.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	toggle, enable, disable,
	restart, restartAll,
	saveAsDefault,
	switchView,
	openURL,
	back,
	up, down, left, right,
	top, bottom,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit:          bind("q", "quit", "q"),
		forceQuit:     bind("ctrl+c", "quit", "ctrl+c", "ctrl+d"),
		toggle:        bind("space", "toggle", " "),
		enable:        bind("e", "enable", "e"),
		disable:       bind("d", "disable", "d"),
		restart:       bind(style.Warning("r"), style.Warning("restart"), "r"),
		restartAll:    bind("R", "restart all", "R"),
		saveAsDefault: bind("S", "save as default", "S", "ctrl+s"),
		switchView:    bind("tab", "switch view", "tab"),
		openURL:       bind("o", "open url", "o", "enter"),
		back:          bind("esc", "back", "esc"),
		up:            bind("↑/k", "up", "up", "k"),
		down:          bind("↓/j", "down", "down", "j"),
		left:          bind("←/h", "prev page", "left", "h"),
		right:         bind("→/l", "next page", "right", "l"),
		top:           bind("g", "top", "g", "home"),
		bottom:        bind("G", "bottom", "G", "end"),
		showHelp:      bind("?", "help", "?"),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	switch k.state {
	case sourcesState:
		return []key.Binding{k.toggle, k.restart, k.switchView, k.quit},
			[]key.Binding{k.toggle, k.enable, k.disable, k.restart, k.restartAll, k.saveAsDefault, k.switchView, k.quit}
	case resultsState:
		bindings := []key.Binding{k.openURL, k.switchView, k.back, k.quit}
		return bindings, bindings
	case errorState:
		bindings := []key.Binding{k.back, k.quit}
		return bindings, bindings
	default:
		return nil, nil
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:      k.up,
		CursorDown:    k.down,
		NextPage:      k.right,
		PrevPage:      k.left,
		GoToStart:     k.top,
		GoToEnd:       k.bottom,
		ShowFullHelp:  k.showHelp,
		CloseFullHelp: k.showHelp,
		Quit:          k.quit,
		ForceQuit:     k.forceQuit,
	}
}
