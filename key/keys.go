// Package key names every configuration field.
package key

// Connectors.
const (
	DefaultSources = "sources.default"
	RSSFeeds       = "rss.feeds"
)

// Fetch core.
const (
	FetchMaxConcurrency = "fetch.max_concurrency"
	FetchDedupKey       = "fetch.dedup_key"
	// FetchAwaitTimeout is in seconds, 0 waits forever.
	FetchAwaitTimeout = "fetch.await_timeout"
)

const NetworkRateLimit = "network.rate_limit"

const SearchShowQuerySuggestions = "search.show_query_suggestions"

const IconsVariant = "icons.variant"

// Live session view.
const (
	TUIShowURLs = "tui.show_urls"
	TUIOpenWith = "tui.open_with"
)

const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
