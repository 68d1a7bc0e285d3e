package custom

import (
	"context"
	"fmt"

	"github.com/anisan-cli/anifetch/constant"
	"github.com/anisan-cli/anifetch/internal/cache"
	"github.com/anisan-cli/anifetch/source"
	"github.com/samber/lo"
	lua "github.com/yuin/gopher-lua"
)

// callList calls fn with arg and decodes every table of the returned list.
// Entries that fail to decode are skipped; the call fails only if none decodes.
// A non-empty result is cached under the connector, fn and cacheBy.
func callList[T any](c *Connector, fn, cacheBy string, arg lua.LValue, decode func(*lua.LTable) (T, error)) ([]T, error) {
	key := cache.Key(cacheBy, c.id, fn)

	var items []T
	if cache.Read(key, &items) {
		return items, nil
	}

	val, err := c.call(fn, lua.LTTable, arg)
	if err != nil {
		return nil, err
	}

	var errs []error
	val.(*lua.LTable).ForEach(func(k, v lua.LValue) {
		tbl, ok := v.(*lua.LTable)
		if k.Type() != lua.LTNumber || !ok {
			return
		}

		item, err := decode(tbl)
		if err != nil {
			errs = append(errs, err)
			return
		}
		items = append(items, item)
	})

	if len(items) == 0 && len(errs) > 0 {
		return nil, errs[0]
	}

	if len(items) > 0 {
		_ = cache.Write(key, items)
	}

	return items, nil
}

func (c *Connector) search(query string) ([]anime, error) {
	return callList(c, constant.SearchAnimesFn, query, lua.LString(query), animeFromTable)
}

func (c *Connector) episodesOf(a anime) ([]episode, error) {
	return callList(c, constant.AnimeEpisodesFn, a.URL, animeToTable(c.state, a), episodeFromTable)
}

// videosOf lists the streams of an episode. Stream links expire, so they are never cached.
func (c *Connector) videosOf(e episode, request source.Request) ([]source.MatchMedia, error) {
	val, err := c.call(constant.EpisodeVideosFn, lua.LTTable, episodeToTable(c.state, e))
	if err != nil {
		return nil, err
	}

	return mediaFromList(val.(*lua.LTable), request, c.id)
}

// fetchTrio composes SearchAnimes, AnimeEpisodes and EpisodeVideos into one lazy fetch.
// Each search hit is a page: its episodes are listed only once the previous hit is emitted.
func (c *Connector) fetchTrio(ctx context.Context, request source.Request, emit source.Emit) error {
	seen := make(map[string]struct{})
	var errs []error

	for _, name := range request.SubjectNames {
		if err := ctx.Err(); err != nil {
			return err
		}

		animes, err := c.search(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("search %q: %w", name, err))
			continue
		}

		for _, a := range animes {
			if _, ok := seen[a.URL]; ok {
				continue
			}
			seen[a.URL] = struct{}{}

			if err := ctx.Err(); err != nil {
				return err
			}

			more, err := c.fetchAnime(a, request, emit)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", a.Name, err))
				continue
			}
			if !more {
				return nil
			}
		}
	}

	if len(seen) == 0 && len(errs) > 0 {
		return errs[0]
	}

	return nil
}

// fetchAnime emits the videos of the requested episode of a. It returns false once emit does.
func (c *Connector) fetchAnime(a anime, request source.Request, emit source.Emit) (bool, error) {
	episodes, err := c.episodesOf(a)
	if err != nil {
		return true, err
	}

	wanted := lo.Filter(episodes, func(e episode, _ int) bool {
		return e.HasNumber && e.Number == request.EpisodeSort
	})

	for _, e := range wanted {
		videos, err := c.videosOf(e, request)
		if err != nil {
			return true, err
		}

		for _, v := range videos {
			if v.Media.Title == "" {
				v.Media.Title = fmt.Sprintf("%s - %s", a.Name, e.Name)
			}
			if v.Kind == source.MatchNone {
				v.Kind = source.MatchFuzzy
			}
			if !emit(v) {
				return false, nil
			}
		}
	}

	return true, nil
}
