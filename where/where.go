// Package where resolves the directories and files anifetch keeps its state in.
// Directories are created on first use.
package where

import (
	"os"
	"path/filepath"

	"github.com/anisan-cli/anifetch/constant"
	"github.com/anisan-cli/anifetch/filesystem"
	"github.com/samber/lo"
)

// Environment variables overriding the platform directories.
const (
	EnvConfigPath = "ANIFETCH_CONFIG_PATH"
	EnvCachePath  = "ANIFETCH_CACHE_PATH"
)

func mkdir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

func dir(env string, base func() (string, error), fallback string) string {
	if custom, ok := os.LookupEnv(env); ok && custom != "" {
		return mkdir(custom)
	}

	root, err := base()
	if err != nil {
		root = fallback
	}
	return mkdir(filepath.Join(root, constant.App))
}

// Config is the directory of the configuration file, connector scripts and preferences.
func Config() string {
	return dir(EnvConfigPath, os.UserConfigDir, ".")
}

// Cache is the directory of everything that can be safely deleted.
func Cache() string {
	return dir(EnvCachePath, os.UserCacheDir, filepath.Join(".", "cache"))
}

func Logs() string {
	return mkdir(filepath.Join(Config(), "logs"))
}

// Sources holds the Lua connector scripts.
func Sources() string {
	return mkdir(filepath.Join(Config(), "sources"))
}

// Preferences is the file of per-connector enable/disable choices.
func Preferences() string {
	return filepath.Join(Config(), "preferences.json")
}

// Queries is the file of remembered subject titles.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Responses holds cached connector HTTP responses.
func Responses() string {
	return mkdir(filepath.Join(Cache(), "responses"))
}

func Temp() string {
	return mkdir(filepath.Join(os.TempDir(), constant.App))
}
