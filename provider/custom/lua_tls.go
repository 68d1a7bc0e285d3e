package custom

import (
	"context"
	"net/http"

	"github.com/anisan-cli/anifetch/internal/cache"
	lua "github.com/yuin/gopher-lua"
)

// http_tls is the scripts' HTTP client, see fingerprintClient.
//
//	http_tls.get(url [, headers]) -> body
//	http_tls.request{method, url, headers, body, cache} -> {status, body, headers}
//
// Successful responses of requests with cache = true are reused for a day.
func registerTLSClient(L *lua.LState) {
	mod := L.NewTable()
	L.SetField(mod, "get", L.NewFunction(luaTLSGet))
	L.SetField(mod, "request", L.NewFunction(luaTLSRequest))
	L.SetGlobal("http_tls", mod)
}

type tlsRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    string
	Cache   bool
}

func stringMap(v lua.LValue) map[string]string {
	m := make(map[string]string)
	if tbl, ok := v.(*lua.LTable); ok {
		tbl.ForEach(func(k, v lua.LValue) {
			m[k.String()] = v.String()
		})
	}
	return m
}

func stringField(tbl *lua.LTable, name, fallback string) string {
	if v := tbl.RawGetString(name); v != lua.LNil {
		return v.String()
	}
	return fallback
}

func parseTLSRequest(tbl *lua.LTable) tlsRequest {
	return tlsRequest{
		Method:  stringField(tbl, "method", http.MethodGet),
		URL:     stringField(tbl, "url", ""),
		Headers: stringMap(tbl.RawGetString("headers")),
		Body:    stringField(tbl, "body", ""),
		Cache:   lua.LVAsBool(tbl.RawGetString("cache")),
	}
}

func luaTLSGet(L *lua.LState) int {
	req := tlsRequest{
		Method:  http.MethodGet,
		URL:     L.CheckString(1),
		Headers: stringMap(L.Get(2)),
	}

	resp, err := tlsClient.Do(luaContext(L), req)
	if err != nil {
		L.RaiseError("http_tls.get: %s", err.Error())
		return 0
	}

	L.Push(lua.LString(resp.Body))
	return 1
}

func luaTLSRequest(L *lua.LState) int {
	req := parseTLSRequest(L.CheckTable(1))
	if req.URL == "" {
		L.RaiseError("http_tls.request: url is required")
		return 0
	}

	var (
		key  string
		resp tlsResponse
	)

	if req.Cache {
		key = cache.Key(req.Method, req.URL, req.Body)
		if cache.Read(key, &resp) {
			L.Push(responseTable(L, resp))
			return 1
		}
	}

	resp, err := tlsClient.Do(luaContext(L), req)
	if err != nil {
		L.RaiseError("http_tls.request: %s", err.Error())
		return 0
	}

	if req.Cache && resp.Status == http.StatusOK {
		_ = cache.Write(key, resp)
	}

	L.Push(responseTable(L, resp))
	return 1
}

func responseTable(L *lua.LState, resp tlsResponse) *lua.LTable {
	headers := L.NewTable()
	for k, v := range resp.Headers {
		headers.RawSetString(k, lua.LString(v))
	}

	result := L.NewTable()
	L.SetField(result, "status", lua.LNumber(resp.Status))
	L.SetField(result, "body", lua.LString(resp.Body))
	L.SetField(result, "headers", headers)
	return result
}

// luaContext returns the context of the running fetch.
func luaContext(L *lua.LState) context.Context {
	if ctx := L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
