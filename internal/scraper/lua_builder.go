// Package scraper compiles and loads Lua connector scripts.
package scraper

import (
	"fmt"
	"sync"

	"github.com/anisan-cli/anifetch/filesystem"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

var bytecodeCache sync.Map

type cacheKey struct {
	path    string
	modTime int64
	size    int64
}

// PreCompileAndLoad runs the script at path in L.
// Compiled prototypes are cached per file version, so every state of a connector shares one compilation.
func PreCompileAndLoad(L *lua.LState, path string) error {
	info, err := filesystem.API().Stat(path)
	if err != nil {
		return err
	}

	key := cacheKey{path: path, modTime: info.ModTime().UnixNano(), size: info.Size()}

	proto, ok := bytecodeCache.Load(key)
	if !ok {
		compiled, err := compile(path)
		if err != nil {
			return err
		}
		proto, _ = bytecodeCache.LoadOrStore(key, compiled)
	}

	L.Push(L.NewFunctionFromProto(proto.(*lua.FunctionProto)))
	return L.PCall(0, lua.MultRet, nil)
}

func compile(path string) (*lua.FunctionProto, error) {
	file, err := filesystem.API().Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	chunk, err := parse.Parse(file, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return lua.Compile(chunk, path)
}
