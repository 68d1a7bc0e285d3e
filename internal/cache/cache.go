// Package cache stores connector responses on disk so repeated sessions do not hit the origin again.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/anisan-cli/anifetch/filesystem"
	"github.com/anisan-cli/anifetch/where"
	"github.com/cespare/xxhash/v2"
)

// TTL is how long a cached response stays valid.
const TTL = 24 * time.Hour

// Key derives a file-safe cache key from its parts. Case and spacing of the parts do not matter.
func Key(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = strings.ToLower(strings.Join(strings.Fields(p), " "))
	}
	return strconv.FormatUint(xxhash.Sum64String(strings.Join(normalized, "\x1f")), 16)
}

// Read decodes a fresh entry into target and reports whether it did.
func Read(key string, target any) bool {
	path := filepath.Join(where.Responses(), key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	return json.Unmarshal(data, target) == nil
}

// Write stores data under key, replacing the previous entry atomically.
func Write(key string, data any) error {
	path := filepath.Join(where.Responses(), key)
	tmp := path + ".tmp"

	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if err := filesystem.API().WriteFile(tmp, encoded, os.ModePerm); err != nil {
		return err
	}

	return filesystem.API().Rename(tmp, path)
}

// CollectGarbage removes expired entries and returns how many were removed.
func CollectGarbage() int {
	var removed int
	_ = filesystem.API().Walk(where.Responses(), func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if time.Since(info.ModTime()) > TTL && filesystem.API().Remove(path) == nil {
			removed++
		}
		return nil
	})
	return removed
}
