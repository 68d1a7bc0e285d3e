// Package provider lists the connectors available to fetch sessions: RSS feeds from the
// configuration and Lua scripts from the sources directory.
package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/anisan-cli/anifetch/constant"
	"github.com/anisan-cli/anifetch/filesystem"
	"github.com/anisan-cli/anifetch/key"
	"github.com/anisan-cli/anifetch/log"
	"github.com/anisan-cli/anifetch/network"
	"github.com/anisan-cli/anifetch/prefs"
	"github.com/anisan-cli/anifetch/provider/custom"
	"github.com/anisan-cli/anifetch/provider/rss"
	"github.com/anisan-cli/anifetch/source"
	"github.com/anisan-cli/anifetch/util"
	"github.com/anisan-cli/anifetch/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// Provider describes a connector that can be instantiated.
type Provider struct {
	ID              string
	Name            string
	UsesHeadless    bool // the script requires a headless browser
	IsCustom        bool // the connector is a Lua script
	CreateConnector func() (source.Connector, error)
}

func (p *Provider) String() string {
	return p.Name
}

// Builtins returns a provider per configured RSS feed. Malformed entries are logged and skipped.
func Builtins() []*Provider {
	var providers []*Provider
	for _, entry := range viper.GetStringSlice(key.RSSFeeds) {
		feed, err := rss.ParseFeed(entry)
		if err != nil {
			log.Warn(err)
			continue
		}

		providers = append(providers, &Provider{
			ID:   feed.ID(),
			Name: feed.Name,
			CreateConnector: func() (source.Connector, error) {
				return rss.New(feed, network.Client), nil
			},
		})
	}
	return providers
}

// Customs returns a provider per Lua script in the sources directory.
func Customs() []*Provider {
	providers, err := CustomProviders()
	if err != nil {
		log.Warn(err)
	}
	return providers
}

// All returns built-in and custom providers, sorted by ID.
func All() []*Provider {
	providers := append(Builtins(), Customs()...)
	sort.Slice(providers, func(i, j int) bool {
		return providers[i].ID < providers[j].ID
	})
	return lo.UniqBy(providers, func(p *Provider) string { return p.ID })
}

// Get finds a provider by ID or name.
func Get(name string) (*Provider, bool) {
	return lo.Find(All(), func(p *Provider) bool {
		return p.ID == name || p.Name == name
	})
}

// CustomProviders lists the Lua scripts in the sources directory.
func CustomProviders() ([]*Provider, error) {
	files, err := filesystem.API().ReadDir(where.Sources())
	if err != nil {
		return nil, err
	}

	var providers []*Provider
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != constant.CustomConnectorExtension {
			continue
		}

		// shared helpers required by other scripts
		if f.Name() == "common.lua" {
			continue
		}

		path := filepath.Join(where.Sources(), f.Name())
		name := util.FileStem(f.Name())

		providers = append(providers, &Provider{
			ID:           custom.IDfromName(name),
			Name:         name,
			UsesHeadless: isHeadless(path),
			IsCustom:     true,
			CreateConnector: func() (source.Connector, error) {
				return custom.Load(path)
			},
		})
	}

	return providers, nil
}

// DefaultEnabled tells whether a connector takes part in sessions by default.
// A stored user choice wins; otherwise sources.default lists the enabled IDs, and an empty list enables all.
func DefaultEnabled(id string) bool {
	if enabled, ok := prefs.Enabled(id).Get(); ok {
		return enabled
	}

	defaults := viper.GetStringSlice(key.DefaultSources)
	return len(defaults) == 0 || lo.Contains(defaults, id)
}

// Instances creates the connectors of providers concurrently.
// Providers that fail to load are left out and reported in the returned error.
func Instances(ctx context.Context, providers []*Provider) ([]source.Instance, error) {
	instances := make([]source.Instance, len(providers))
	failures := make([]error, len(providers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, viper.GetInt(key.FetchMaxConcurrency)))

	for i, p := range providers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			connector, err := p.CreateConnector()
			if err != nil {
				failures[i] = fmt.Errorf("load %s: %w", p.ID, err)
				log.WithFields(log.Fields{"provider": p.ID}).WithError(err).Warn("provider failed to load")
				return nil
			}

			instances[i] = source.Instance{
				ID:        p.ID,
				Name:      p.Name,
				Enabled:   DefaultEnabled(p.ID),
				Connector: connector,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	loaded := lo.Filter(instances, func(i source.Instance, _ int) bool {
		return i.Connector != nil
	})

	return loaded, errors.Join(failures...)
}

func isHeadless(path string) bool {
	content, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	for _, m := range [][]byte{
		[]byte(`require("headless")`),
		[]byte(`require('headless')`),
	} {
		if bytes.Contains(content, m) {
			return true
		}
	}
	return false
}
