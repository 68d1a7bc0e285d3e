package custom

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/anisan-cli/anifetch/constant"
	"github.com/anisan-cli/anifetch/filesystem"
	"github.com/anisan-cli/anifetch/util"
	"github.com/samber/lo"
)

//go:embed scaffold.lua.tmpl
var scaffoldText string

var scaffoldTemplate = lo.Must(template.New("scaffold").Funcs(template.FuncMap{
	"repeat": strings.Repeat,
	"plus":   func(a, b int) int { return a + b },
	"max":    util.Max[int],
}).Parse(scaffoldText))

// ScaffoldInfo describes a connector script to generate.
type ScaffoldInfo struct {
	Name   string
	URL    string
	Author string
}

// Scaffold writes a FetchMedia connector skeleton.
func Scaffold(w io.Writer, info ScaffoldInfo) error {
	return scaffoldTemplate.Execute(w, struct {
		ScaffoldInfo
		FetchMediaFn string
	}{info, constant.FetchMediaFn})
}

// Generate scaffolds a new script in dir and returns its path. Existing scripts are never overwritten.
func Generate(dir string, info ScaffoldInfo) (string, error) {
	name := util.SanitizeFilename(info.Name)
	if name == "" {
		return "", errors.New("connector name is empty")
	}

	path := filepath.Join(dir, name+constant.CustomConnectorExtension)
	f, err := filesystem.API().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer util.Ignore(f.Close)

	return path, Scaffold(f, info)
}
