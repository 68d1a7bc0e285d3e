package custom

import (
	"github.com/anisan-cli/anifetch/auth"
	lua "github.com/yuin/gopher-lua"
)

// registerCredentials exposes the keyring token of the connector as credentials.token().
// The token is nil when the user has not stored one.
func registerCredentials(L *lua.LState, connectorID string) {
	mod := L.NewTable()

	L.SetField(mod, "token", L.NewFunction(func(L *lua.LState) int {
		token, err := auth.Token(connectorID)
		if err != nil {
			L.RaiseError("credentials.token failed: %s", err.Error())
			return 0
		}

		if t, ok := token.Get(); ok {
			L.Push(lua.LString(t))
		} else {
			L.Push(lua.LNil)
		}
		return 1
	}))

	L.SetGlobal("credentials", mod)
}
