// Package filesystem routes every file access of the application through one swappable afero backend.
package filesystem

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/spf13/afero"
)

var backend atomic.Pointer[afero.Afero]

func init() {
	SetOsFs()
}

// API returns the active backend.
func API() afero.Afero {
	return *backend.Load()
}

// Use replaces the backend.
func Use(fs afero.Fs) {
	backend.Store(&afero.Afero{Fs: fs})
}

// SetOsFs uses the real filesystem.
func SetOsFs() {
	Use(afero.NewOsFs())
}

// SetMemMapFs uses a fresh in-memory filesystem. Tests call it from init.
func SetMemMapFs() {
	Use(afero.NewMemMapFs())
}

// GacheFs lets gache caches persist through the active backend.
type GacheFs struct{}

func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}
