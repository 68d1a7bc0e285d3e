package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/anisan-cli/anifetch/constant"
	"github.com/anisan-cli/anifetch/filesystem"
	"github.com/anisan-cli/anifetch/log"
	"github.com/anisan-cli/anifetch/network"
	"github.com/anisan-cli/anifetch/where"
	"github.com/cespare/xxhash/v2"
	"github.com/samber/lo"
)

// RepoRawURL is where the published versions of the Lua connectors live.
var RepoRawURL = "https://raw.githubusercontent.com/anisan-cli/anifetch/main/sources/"

// UpdateScrapers replaces every installed script, and common.lua, with its published version.
// Scripts that are not published or did not change are left alone. It returns the updated file names.
func UpdateScrapers(ctx context.Context) ([]string, error) {
	files, err := filesystem.API().ReadDir(where.Sources())
	if err != nil {
		return nil, err
	}

	names := lo.FilterMap(files, func(f os.FileInfo, _ int) (string, bool) {
		return f.Name(), !f.IsDir() && filepath.Ext(f.Name()) == constant.CustomConnectorExtension
	})
	names = lo.Uniq(append(names, "common.lua"))

	var updated []string
	for _, name := range names {
		ok, err := updateSingleFile(ctx, name)
		if err != nil {
			if ctx.Err() != nil {
				return updated, ctx.Err()
			}
			log.Warnf("update %s: %v", name, err)
			continue
		}
		if ok {
			updated = append(updated, name)
		}
	}

	log.Infof("scraper update finished, %d updated", len(updated))
	return updated, nil
}

func updateSingleFile(ctx context.Context, filename string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, RepoRawURL+filename, nil)
	if err != nil {
		return false, err
	}

	resp, err := network.Client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	remote, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}

	path := filepath.Join(where.Sources(), filename)
	if local, err := filesystem.API().ReadFile(path); err == nil && xxhash.Sum64(local) == xxhash.Sum64(remote) {
		return false, nil
	}

	tmp := path + ".tmp"
	if err := filesystem.API().WriteFile(tmp, remote, 0644); err != nil {
		return false, err
	}

	if err := filesystem.API().Rename(tmp, path); err != nil {
		_ = filesystem.API().Remove(tmp)
		return false, err
	}

	log.Infof("updated scraper script %s", filename)
	return true, nil
}
