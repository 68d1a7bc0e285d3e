package custom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/anisan-cli/anifetch/match"
	"github.com/anisan-cli/anifetch/source"
	"github.com/samber/lo"
	lua "github.com/yuin/gopher-lua"
)

// anime and episode are the intermediate results of trio scripts.
type anime struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type episode struct {
	Name   string  `json:"name"`
	URL    string  `json:"url"`
	Number float64 `json:"number"`
	// HasNumber is false when neither the name nor the table carries a number.
	HasNumber bool `json:"has_number"`
}

func getString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return val.String()
	}
	return ""
}

func getNumber(table *lua.LTable, key string) (float64, bool) {
	val := table.RawGetString(key)
	switch val.Type() {
	case lua.LTNumber:
		return float64(val.(lua.LNumber)), true
	case lua.LTString:
		n, err := strconv.ParseFloat(strings.TrimSpace(val.String()), 64)
		return n, err == nil
	}
	return 0, false
}

func getHeaders(table *lua.LTable) map[string]string {
	tbl, ok := table.RawGetString("headers").(*lua.LTable)
	if !ok {
		return nil
	}

	headers := make(map[string]string)
	tbl.ForEach(func(k, v lua.LValue) {
		headers[k.String()] = v.String()
	})
	return headers
}

// requestToTable exposes a request to scripts.
func requestToTable(L *lua.LState, request source.Request) *lua.LTable {
	table := L.NewTable()
	table.RawSetString("subject_id", lua.LString(request.SubjectID))
	table.RawSetString("episode_id", lua.LString(request.EpisodeID))
	table.RawSetString("sort", lua.LNumber(request.EpisodeSort))
	table.RawSetString("episode_name", lua.LString(request.EpisodeName))

	names := L.NewTable()
	for _, n := range request.SubjectNames {
		names.Append(lua.LString(n))
	}
	table.RawSetString("names", names)

	return table
}

// mediaFromTable reads one media table. The match kind is classified from the title unless the script sets it.
func mediaFromTable(table *lua.LTable, request source.Request, connectorID string) (source.MatchMedia, error) {
	url := getString(table, "url")
	if url == "" {
		return source.MatchMedia{}, errors.New("media must have url")
	}

	title := getString(table, "title")
	resolution := lo.CoalesceOrEmpty(getString(table, "resolution"), getString(table, "quality"), match.Resolution(title))

	kind := source.MediaKind(strings.ToLower(getString(table, "kind")))
	if kind == "" {
		kind = source.KindWeb
		if strings.HasPrefix(url, "magnet:") || strings.HasSuffix(url, ".torrent") {
			kind = source.KindTorrent
		}
	}

	size, _ := getNumber(table, "size")

	m := source.MatchMedia{
		Media: source.Media{
			URL:        url,
			Title:      title,
			SourceID:   connectorID,
			Kind:       kind,
			Resolution: resolution,
			Extension:  getString(table, "extension"),
			Size:       int64(size),
			Headers:    getHeaders(table),
		},
	}

	if s := getString(table, "match"); s != "" {
		m.Kind = source.ParseMatchKind(s)
	} else {
		m.Kind = match.Classify(request, title)
	}

	return m, nil
}

// mediaFromList reads an array of media tables.
// Invalid entries are skipped; the list fails only when every entry is invalid.
func mediaFromList(list *lua.LTable, request source.Request, connectorID string) ([]source.MatchMedia, error) {
	var (
		items []source.MatchMedia
		errs  []error
	)

	list.ForEach(func(k, v lua.LValue) {
		if k.Type() != lua.LTNumber || v.Type() != lua.LTTable {
			return
		}

		m, err := mediaFromTable(v.(*lua.LTable), request, connectorID)
		if err != nil {
			errs = append(errs, fmt.Errorf("entry %s: %w", k, err))
			return
		}
		items = append(items, m)
	})

	if len(items) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return items, nil
}

func animeFromTable(table *lua.LTable) (anime, error) {
	a := anime{
		Name: getString(table, "name"),
		URL:  getString(table, "url"),
	}

	if a.Name == "" || a.URL == "" {
		return anime{}, errors.New("anime must have name and url")
	}

	return a, nil
}

// episodeFromTable reads an episode. The last number in its name wins over the number field,
// since scripts often number episodes by position.
func episodeFromTable(table *lua.LTable) (episode, error) {
	e := episode{
		Name: getString(table, "name"),
		URL:  getString(table, "url"),
	}

	if e.Name == "" || e.URL == "" {
		return episode{}, errors.New("episode must have name and url")
	}

	if numbers := match.Episodes(e.Name); len(numbers) > 0 {
		e.Number, e.HasNumber = numbers[len(numbers)-1], true
	} else {
		e.Number, e.HasNumber = getNumber(table, "number")
	}

	return e, nil
}

func animeToTable(L *lua.LState, a anime) *lua.LTable {
	table := L.NewTable()
	table.RawSetString("name", lua.LString(a.Name))
	table.RawSetString("url", lua.LString(a.URL))
	return table
}

func episodeToTable(L *lua.LState, e episode) *lua.LTable {
	table := L.NewTable()
	table.RawSetString("name", lua.LString(e.Name))
	table.RawSetString("url", lua.LString(e.URL))
	table.RawSetString("number", lua.LNumber(e.Number))
	return table
}
