// Package tui shows a fetch session live and lets the user steer its sources.
package tui

import (
	"context"

	"github.com/anisan-cli/anifetch/fetch"
	"github.com/anisan-cli/anifetch/query"
	"github.com/anisan-cli/anifetch/source"
	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	Fetcher *fetch.Fetcher
	Request source.Request
}

// Run creates a session for the request and shows it until the user quits.
func Run(ctx context.Context, options *Options) error {
	session, err := options.Fetcher.NewSession(ctx, options.Request)
	if err != nil {
		return err
	}
	defer session.Close()

	_ = query.RememberRequest(options.Request)

	_, err = tea.NewProgram(newBubble(session), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
