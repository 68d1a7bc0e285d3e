// Package prefs persists the user's enable and disable choices per connector.
package prefs

import (
	"github.com/anisan-cli/anifetch/filesystem"
	"github.com/anisan-cli/anifetch/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

// Preference is the stored choice for one connector.
type Preference struct {
	Enabled bool `json:"enabled"`
}

var cacher = gache.New[map[string]*Preference](
	&gache.Options{
		Path:       where.Preferences(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// All returns every stored preference by connector ID.
func All() (map[string]*Preference, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Preference), nil
	}
	return cached, nil
}

// Enabled returns the stored choice of a connector. None means the user never chose.
func Enabled(connectorID string) mo.Option[bool] {
	all, err := All()
	if err != nil {
		return mo.None[bool]()
	}
	if p, ok := all[connectorID]; ok {
		return mo.Some(p.Enabled)
	}
	return mo.None[bool]()
}

// SetEnabled stores the choice for a connector.
func SetEnabled(connectorID string, enabled bool) error {
	all, err := All()
	if err != nil {
		return err
	}

	all[connectorID] = &Preference{Enabled: enabled}
	return cacher.Set(all)
}

// Forget removes the stored choice, so the configured default applies again.
func Forget(connectorID string) error {
	all, err := All()
	if err != nil {
		return err
	}

	delete(all, connectorID)
	return cacher.Set(all)
}
