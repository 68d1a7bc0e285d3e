package source

import (
	"fmt"
	"sort"
	"strings"
)

// KeyFunc maps a media item to its deduplication key.
// Two items with the same key are the same candidate.
type KeyFunc func(Media) string

// ByURL identifies a media item by its canonical origin locator.
func ByURL(m Media) string {
	return strings.TrimSpace(m.URL)
}

// ByTitle identifies a media item by its case-folded title.
func ByTitle(m Media) string {
	return strings.ToLower(strings.Join(strings.Fields(m.Title), " "))
}

// ByRelease identifies a media item by title, resolution and size, so the same
// release mirrored under different URLs collapses into one.
func ByRelease(m Media) string {
	return fmt.Sprintf("%s|%s|%d", ByTitle(m), strings.ToLower(m.Resolution), m.Size)
}

// KeyFuncs lists the registered deduplication keys by name.
var KeyFuncs = map[string]KeyFunc{
	"url":     ByURL,
	"title":   ByTitle,
	"release": ByRelease,
}

// KeyFuncNames returns the registered key names in sorted order.
func KeyFuncNames() []string {
	names := make([]string, 0, len(KeyFuncs))
	for name := range KeyFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KeyFuncFor looks up a registered key function.
func KeyFuncFor(name string) (KeyFunc, error) {
	fn, ok := KeyFuncs[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown dedup key %q, expected one of %s", name, strings.Join(KeyFuncNames(), ", "))
	}
	return fn, nil
}
