package tui

import (
	"fmt"
	"strings"

	"github.com/anisan-cli/anifetch/fetch"
	"github.com/anisan-cli/anifetch/icon"
	"github.com/anisan-cli/anifetch/key"
	"github.com/anisan-cli/anifetch/source"
	"github.com/anisan-cli/anifetch/style"
	"github.com/anisan-cli/anifetch/util"
	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
)

// listItem wraps either a *fetch.SourceResult or a source.MatchMedia.
type listItem struct {
	internal any
}

func stateIcon(s fetch.State) string {
	switch s.(type) {
	case fetch.Disabled:
		return icon.Get(icon.Disabled)
	case fetch.Idle:
		return icon.Get(icon.Idle)
	case fetch.Fetching:
		return icon.Get(icon.Progress)
	case fetch.Succeed:
		return icon.Get(icon.Success)
	default:
		return icon.Get(icon.Fail)
	}
}

func matchIcon(k source.MatchKind) string {
	switch k {
	case source.MatchExact:
		return icon.Get(icon.Exact)
	case source.MatchFuzzy:
		return icon.Get(icon.Fuzzy)
	default:
		return ""
	}
}

func prefixed(prefix, s string) string {
	if prefix == "" {
		return s
	}
	return prefix + " " + s
}

func (t *listItem) Title() string {
	switch e := t.internal.(type) {
	case *fetch.SourceResult:
		return prefixed(stateIcon(e.State()), t.FilterValue())
	case source.MatchMedia:
		return prefixed(matchIcon(e.Kind), t.FilterValue())
	default:
		return t.FilterValue()
	}
}

func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case *fetch.SourceResult:
		s := e.State()
		parts := []string{
			style.Fg(style.StateColor(s.String()))(stateName(s)),
			util.Quantify(len(e.Items()), "item", "items"),
		}
		if failed, ok := s.(fetch.Failed); ok {
			parts = append(parts, style.Error(failed.Err.Error()))
		}
		return strings.Join(parts, " • ")
	case source.MatchMedia:
		parts := []string{style.Fg(style.MatchColor(e.Kind.String()))(e.Kind.String()), e.Media.SourceID}
		if e.Media.Resolution != "" {
			parts = append(parts, e.Media.Resolution)
		}
		parts = append(parts, string(e.Media.Kind))
		if e.Media.Size > 0 {
			parts = append(parts, humanize.Bytes(uint64(e.Media.Size)))
		}
		if !e.Media.PublishedAt.IsZero() {
			parts = append(parts, humanize.Time(e.Media.PublishedAt))
		}
		if viper.GetBool(key.TUIShowURLs) {
			parts = append(parts, style.Faint(e.Media.URL))
		}
		return strings.Join(parts, " • ")
	default:
		return ""
	}
}

func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *fetch.SourceResult:
		if name := e.Instance().Name; name != "" {
			return name
		}
		return e.ID()
	case source.MatchMedia:
		return e.Media.String()
	default:
		return fmt.Sprint(e)
	}
}

func stateName(s fetch.State) string {
	if _, ok := s.(fetch.Failed); ok {
		return "failed"
	}
	return s.String()
}
