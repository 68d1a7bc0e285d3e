// Package custom runs Lua connector scripts.
package custom

import (
	"context"
	"fmt"
	"sync"

	"github.com/anisan-cli/anifetch/constant"
	"github.com/anisan-cli/anifetch/log"
	"github.com/anisan-cli/anifetch/source"
	lua "github.com/yuin/gopher-lua"
)

// Connector fetches media by calling into a Lua script.
// A Lua state is single threaded, so concurrent fetches of one connector run one after another.
type Connector struct {
	id   string
	name string
	path string

	mu    sync.Mutex
	state *lua.LState
	paged bool
}

var _ source.Connector = (*Connector)(nil)

// ID returns the connector ID derived from the script name.
func (c *Connector) ID() string {
	return c.id
}

// Name returns the script name.
func (c *Connector) Name() string {
	return c.name
}

// Close releases the Lua state.
func (c *Connector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Close()
}

// Fetch emits the media the script finds for request.
// Scripts defining FetchMedia are called page by page until they return an empty table.
// Otherwise every search hit for every subject name is one page.
func (c *Connector) Fetch(ctx context.Context, request source.Request, emit source.Emit) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.SetContext(ctx)
	defer c.state.RemoveContext()

	log.WithFields(log.Fields{
		"connector": c.id,
		"request":   request.String(),
		"paged":     c.paged,
	}).Debug("lua fetch")

	if c.paged {
		return c.fetchPages(ctx, request, emit)
	}
	return c.fetchTrio(ctx, request, emit)
}

func (c *Connector) fetchPages(ctx context.Context, request source.Request, emit source.Emit) error {
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		val, err := c.call(constant.FetchMediaFn, lua.LTTable, requestToTable(c.state, request), lua.LNumber(page))
		if err != nil {
			return err
		}

		items, err := mediaFromList(val.(*lua.LTable), request, c.id)
		if err != nil {
			return fmt.Errorf("page %d: %w", page, err)
		}

		if len(items) == 0 {
			return nil
		}

		for _, m := range items {
			if !emit(m) {
				return nil
			}
		}
	}
}

// call executes a global Lua function in protected mode.
func (c *Connector) call(fn string, retType lua.LValueType, args ...lua.LValue) (lua.LValue, error) {
	luaFn := c.state.GetGlobal(fn)
	if luaFn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %s is not defined", fn)
	}

	err := c.state.CallByParam(lua.P{
		Fn:      luaFn,
		NRet:    1,
		Protect: true,
	}, args...)
	if err != nil {
		return nil, err
	}

	retval := c.state.Get(-1)
	c.state.Pop(1)

	if retval.Type() != retType {
		return nil, fmt.Errorf("%s returned %s, expected %s", fn, retval.Type(), retType)
	}

	return retval, nil
}
