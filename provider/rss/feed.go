// Package rss finds torrent releases in RSS search feeds.
package rss

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Feed is a search feed. URLTemplate contains {query}, replaced by an escaped subject name.
type Feed struct {
	Name        string `validate:"required"`
	URLTemplate string `validate:"required,url,contains={query}"`
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// ID returns the connector ID of the feed.
func (f Feed) ID() string {
	return "rss-" + strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(f.Name), "-"), "-")
}

// URL returns the feed URL searching for query.
func (f Feed) URL(query string) string {
	return strings.ReplaceAll(f.URLTemplate, "{query}", url.QueryEscape(query))
}

// ParseFeed reads a "name=url-template" entry.
func ParseFeed(entry string) (Feed, error) {
	name, template, ok := strings.Cut(entry, "=")
	if !ok {
		return Feed{}, fmt.Errorf("feed %q: expected name=url", entry)
	}

	feed := Feed{
		Name:        strings.TrimSpace(name),
		URLTemplate: strings.TrimSpace(template),
	}

	if err := validate.Struct(feed); err != nil {
		return Feed{}, fmt.Errorf("feed %q: %w", entry, err)
	}

	return feed, nil
}
