package custom

import (
	"fmt"

	"github.com/anisan-cli/anifetch/constant"
	"github.com/anisan-cli/anifetch/internal/scraper"
	"github.com/anisan-cli/anifetch/util"
	libs "github.com/metafates/mangal-lua-libs"
	"github.com/samber/lo"
	lua "github.com/yuin/gopher-lua"
)

// IDfromName derives the connector ID of a script from its base name.
func IDfromName(name string) string {
	return name + "-lua"
}

var trio = []string{
	constant.SearchAnimesFn,
	constant.AnimeEpisodesFn,
	constant.EpisodeVideosFn,
}

// Load runs the script at path and checks that it defines a fetch entry point.
func Load(path string) (*Connector, error) {
	name := util.FileStem(path)
	id := IDfromName(name)

	state := lua.NewState()
	libs.Preload(state)
	registerTLSClient(state)
	registerCredentials(state, id)

	if err := scraper.PreCompileAndLoad(state, path); err != nil {
		state.Close()
		return nil, err
	}

	defined := func(fn string) bool {
		return state.GetGlobal(fn).Type() == lua.LTFunction
	}

	c := &Connector{
		id:    id,
		name:  name,
		path:  path,
		state: state,
		paged: defined(constant.FetchMediaFn),
	}

	if !c.paged {
		if missing := lo.Reject(trio, func(fn string, _ int) bool { return defined(fn) }); len(missing) > 0 {
			state.Close()
			return nil, fmt.Errorf("%s defines neither %s nor %v", name, constant.FetchMediaFn, missing)
		}
	}

	return c, nil
}
