// Package open hands media URLs to the system's default handler or a chosen application.
package open

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/anisan-cli/anifetch/constant"
	"github.com/anisan-cli/anifetch/log"
	"github.com/anisan-cli/anifetch/source"
	"github.com/samber/lo"
)

var schemes = []string{"http", "https", "magnet", "file"}

// Media opens the media URL with app, or the default handler when app is empty.
// The process is started and not waited for.
func Media(media source.Media, app string) error {
	u, err := url.Parse(media.URL)
	if err != nil {
		return fmt.Errorf("invalid media url: %w", err)
	}

	if !lo.Contains(schemes, strings.ToLower(u.Scheme)) {
		return fmt.Errorf("refusing to open %q url", u.Scheme)
	}

	argv, err := command(runtime.GOOS, media.URL, app)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"source": media.SourceID,
		"url":    media.URL,
		"app":    app,
	}).Info("opening media")

	return exec.Command(argv[0], argv[1:]...).Start()
}

// command returns the argv opening input on goos.
func command(goos, input, app string) ([]string, error) {
	switch goos {
	case constant.Windows:
		if app == "" {
			rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
			return []string{rundll, "url.dll,FileProtocolHandler", input}, nil
		}
		// start treats & as a command separator
		return []string{"cmd", "/C", "start", "", app, strings.ReplaceAll(input, "&", "^&")}, nil
	case constant.Darwin:
		if app == "" {
			return []string{"open", input}, nil
		}
		return []string{"open", "-a", app, input}, nil
	case constant.Linux:
		if app == "" {
			return []string{"xdg-open", input}, nil
		}
		return []string{app, input}, nil
	case constant.Android:
		if app == "" {
			return []string{"termux-open", input}, nil
		}
		return []string{"termux-open", "--choose", input}, nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}
