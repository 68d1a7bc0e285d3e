package inline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/anisan-cli/anifetch/log"
	"github.com/anisan-cli/anifetch/query"
	"github.com/anisan-cli/anifetch/source"
	"github.com/samber/lo"
)

// Run creates a session for the request, waits for every enabled source to complete and writes the cumulative results.
func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	session, err := options.Fetcher.NewSession(ctx, options.Request)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := query.RememberRequest(options.Request); err != nil {
		log.Warn(err)
	}

	waitCtx := ctx
	if options.Timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	completed := true
	items, err := session.AwaitCompletedResults(waitCtx)
	if err != nil {
		if !errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return err
		}

		log.WithFields(log.Fields{
			"session": session.ID(),
			"timeout": options.Timeout,
		}).Warn("timed out waiting for sources, writing partial results")
		completed = false
		items = session.Results()
	}

	items = lo.Filter(items, func(m source.MatchMedia, _ int) bool {
		return m.Kind >= options.MinMatch
	})

	if filter, ok := options.Filter.Get(); ok {
		items = filter(items)
	}

	if options.Json {
		return writeJson(options.Out, asJson(session, completed, items))
	}

	for _, item := range items {
		if _, err := fmt.Fprintln(options.Out, item.Media.URL); err != nil {
			return err
		}
	}

	return nil
}
