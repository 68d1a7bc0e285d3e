package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/anisan-cli/anifetch/icon"
	"github.com/anisan-cli/anifetch/key"
	"github.com/anisan-cli/anifetch/provider/rss"
	"github.com/anisan-cli/anifetch/source"
	"github.com/anisan-cli/anifetch/style"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Default holds every registered field by key.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables.
var EnvExposed []string

// ErrUnknownKey is returned by Lookup for unregistered keys.
var ErrUnknownKey = errors.New("unknown key")

func register(k string, v any, description string, validate ...func(any) error) {
	if _, exists := Default[k]; exists {
		panic("duplicate config key: " + k)
	}

	Default[k] = Field{
		Key:         k,
		Value:       v,
		Description: description,
		validate:    lo.FirstOr(validate, nil),
	}
	EnvExposed = append(EnvExposed, k)
}

// Keys returns the registered keys in order.
func Keys() []string {
	keys := lo.Keys(Default)
	sort.Strings(keys)
	return keys
}

// Lookup returns the field registered for k. Unknown keys get the closest known key as a hint.
func Lookup(k string) (Field, error) {
	if field, ok := Default[k]; ok {
		return field, nil
	}

	closest := lo.MinBy(Keys(), func(a, b string) bool {
		return levenshtein.Distance(k, a) < levenshtein.Distance(k, b)
	})

	return Field{}, fmt.Errorf("%w %s, did you mean %s?", ErrUnknownKey, style.Error(k), style.Warning(closest))
}

func atLeast(n int) func(any) error {
	return func(v any) error {
		if v.(int) < n {
			return fmt.Errorf("must be at least %d", n)
		}
		return nil
	}
}

func oneOf(options ...string) func(any) error {
	return func(v any) error {
		if !lo.Contains(options, v.(string)) {
			return fmt.Errorf("unknown value %q, expected one of %s", v, strings.Join(options, ", "))
		}
		return nil
	}
}

func init() {
	register(
		key.DefaultSources,
		[]string{},
		"Connectors enabled by default in new sessions.\nEmpty means every installed connector.\nType \"anifetch sources list\" to show available connectors",
	)
	register(
		key.RSSFeeds,
		[]string{},
		"Built-in RSS connectors as name=url entries.\n{query} in the url is replaced by each subject title",
		func(v any) error {
			for _, entry := range v.([]string) {
				if _, err := rss.ParseFeed(entry); err != nil {
					return err
				}
			}
			return nil
		},
	)
	register(key.FetchMaxConcurrency, 8, "Maximum number of connectors fetching at the same time", atLeast(1))
	register(
		key.FetchDedupKey,
		"url",
		"Identity used to deduplicate media across connectors.\nAvailable options are: "+strings.Join(source.KeyFuncNames(), ", "),
		oneOf(source.KeyFuncNames()...),
	)
	register(key.FetchAwaitTimeout, 0, "Seconds to wait for every connector to complete. 0 waits forever", atLeast(0))
	register(key.NetworkRateLimit, 2, "Requests per second allowed to a single domain", atLeast(1))
	register(key.SearchShowQuerySuggestions, true, "Show subject title suggestions for completion")
	register(
		key.IconsVariant,
		"plain",
		"Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)",
		oneOf(icon.AvailableVariants()...),
	)
	register(key.TUIShowURLs, true, "Show media URLs in the live session view")
	register(key.TUIOpenWith, "", "Application used to open a media URL from the live session view.\nEmpty uses the system default")
	register(key.LogsWrite, false, "Write logs")
	register(
		key.LogsLevel,
		"info",
		"Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace",
		oneOf(lo.Map(logrus.AllLevels, func(l logrus.Level, _ int) string { return l.String() })...),
	)
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Check for a newer release when showing help or version")
}
