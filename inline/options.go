// Package inline runs a fetch session without user interaction and prints what it found.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/anisan-cli/anifetch/fetch"
	"github.com/anisan-cli/anifetch/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// MediaFilter narrows the cumulative results before they are printed.
type MediaFilter func([]source.MatchMedia) []source.MatchMedia

type Options struct {
	Out     io.Writer
	Fetcher *fetch.Fetcher
	Request source.Request
	Json    bool
	// Timeout bounds the wait for completion. Partial results are printed when it expires.
	Timeout  time.Duration
	MinMatch source.MatchKind
	Filter   mo.Option[MediaFilter]
}

// ParseMediaFilter parses a filter description.
// Format: "first", "last", "all", "1-5", "@text@", "5", "res:1080p", "kind:torrent"
func ParseMediaFilter(description string) (MediaFilter, error) {
	switch description {
	case "all", "":
		return func(items []source.MatchMedia) []source.MatchMedia {
			return items
		}, nil
	case "first":
		return func(items []source.MatchMedia) []source.MatchMedia {
			return lo.Subset(items, 0, 1)
		}, nil
	case "last":
		return func(items []source.MatchMedia) []source.MatchMedia {
			return lo.Subset(items, -1, 1)
		}, nil
	}

	if res, ok := strings.CutPrefix(description, "res:"); ok {
		return func(items []source.MatchMedia) []source.MatchMedia {
			return lo.Filter(items, func(m source.MatchMedia, _ int) bool {
				return strings.EqualFold(m.Media.Resolution, res)
			})
		}, nil
	}

	if kind, ok := strings.CutPrefix(description, "kind:"); ok {
		return func(items []source.MatchMedia) []source.MatchMedia {
			return lo.Filter(items, func(m source.MatchMedia, _ int) bool {
				return string(m.Media.Kind) == strings.ToLower(kind)
			})
		}, nil
	}

	// Substring: "@text@"
	if len(description) > 1 && strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(items []source.MatchMedia) []source.MatchMedia {
			return lo.Filter(items, func(m source.MatchMedia, _ int) bool {
				return strings.Contains(strings.ToLower(m.Media.Title), sub)
			})
		}, nil
	}

	// Range: "1-5"
	if from, to, ok := strings.Cut(description, "-"); ok {
		start, err1 := strconv.ParseUint(from, 10, 16)
		end, err2 := strconv.ParseUint(to, 10, 16)
		if err1 == nil && err2 == nil {
			return func(items []source.MatchMedia) []source.MatchMedia {
				s := min(int(start), len(items))
				e := min(int(end)+1, len(items))
				if s > e {
					return []source.MatchMedia{}
				}
				return items[s:e]
			}, nil
		}
	}

	// Single index: "5"
	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(items []source.MatchMedia) []source.MatchMedia {
			if uint64(len(items)) <= idx {
				return []source.MatchMedia{}
			}
			return []source.MatchMedia{items[idx]}
		}, nil
	}

	return nil, fmt.Errorf("invalid media filter: %s", description)
}
