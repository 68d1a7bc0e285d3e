package rss

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anisan-cli/anifetch/log"
	"github.com/anisan-cli/anifetch/match"
	"github.com/anisan-cli/anifetch/source"
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

const torrentType = "application/x-bittorrent"

// Connector searches one feed for every subject name of a request. Each name is one page.
type Connector struct {
	feed   Feed
	client *http.Client
}

var _ source.Connector = (*Connector)(nil)

// New returns a connector for feed that sends its requests with client.
func New(feed Feed, client *http.Client) *Connector {
	return &Connector{feed: feed, client: client}
}

// Fetch emits the releases matching the request. Releases of other episodes or shows are dropped.
func (c *Connector) Fetch(ctx context.Context, request source.Request, emit source.Emit) error {
	parser := gofeed.NewParser()
	parser.Client = c.client

	seen := make(map[string]struct{})
	var errs []error

	for _, name := range request.SubjectNames {
		feedURL := c.feed.URL(name)

		parsed, err := parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			errs = append(errs, fmt.Errorf("parse %s: %w", feedURL, err))
			continue
		}

		log.WithFields(log.Fields{
			"feed":  c.feed.Name,
			"query": name,
			"items": len(parsed.Items),
		}).Debug("feed parsed")

		for _, item := range parsed.Items {
			m, ok := mediaFromItem(item)
			if !ok {
				continue
			}
			if _, dup := seen[m.URL]; dup {
				continue
			}
			seen[m.URL] = struct{}{}

			kind := match.Classify(request, m.Title)
			if kind == source.MatchNone {
				continue
			}

			if !emit(source.MatchMedia{Media: m, Kind: kind}) {
				return nil
			}
		}
	}

	if len(errs) == len(request.SubjectNames) {
		return errors.Join(errs...)
	}

	return nil
}

// mediaFromItem picks the best locator of an item: a torrent enclosure, a magnet link in the
// description, a torrent link, a nyaa info hash, then the item link.
func mediaFromItem(item *gofeed.Item) (source.Media, bool) {
	m := source.Media{
		Title:      strings.TrimSpace(item.Title),
		Kind:       source.KindTorrent,
		Resolution: match.Resolution(item.Title),
	}

	if item.PublishedParsed != nil {
		m.PublishedAt = *item.PublishedParsed
	}

	for _, enclosure := range item.Enclosures {
		if enclosure.Type == torrentType || strings.HasSuffix(enclosure.URL, ".torrent") {
			m.URL = enclosure.URL
			m.Size, _ = strconv.ParseInt(enclosure.Length, 10, 64)
			break
		}
	}

	if m.URL == "" {
		m.URL = magnetIn(item.Description)
	}

	if m.URL == "" && (strings.HasPrefix(item.Link, "magnet:") || strings.HasSuffix(item.Link, ".torrent")) {
		m.URL = item.Link
	}

	if nyaa, ok := item.Extensions["nyaa"]; ok {
		if m.URL == "" {
			if hash := extension(nyaa, "infoHash"); hash != "" {
				m.URL = "magnet:?xt=urn:btih:" + hash
			}
		}
		if m.Size == 0 {
			m.Size = ParseSize(extension(nyaa, "size"))
		}
	}

	if m.URL == "" && item.Link != "" {
		m.URL = item.Link
		m.Kind = source.KindWeb
	}

	return m, m.URL != "" && m.Title != ""
}

func magnetIn(description string) string {
	if !strings.Contains(description, "magnet:") {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return ""
	}

	href, _ := doc.Find(`a[href^="magnet:"]`).First().Attr("href")
	return href
}

func extension(exts map[string][]ext.Extension, name string) string {
	if values, ok := exts[name]; ok && len(values) > 0 {
		return strings.TrimSpace(values[0].Value)
	}
	return ""
}

var units = map[string]float64{
	"B":   1,
	"KIB": 1 << 10,
	"MIB": 1 << 20,
	"GIB": 1 << 30,
	"TIB": 1 << 40,
	"KB":  1e3,
	"MB":  1e6,
	"GB":  1e9,
	"TB":  1e12,
}

// ParseSize reads sizes like "1.4 GiB". Unknown formats yield 0.
func ParseSize(s string) int64 {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0
	}

	n, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}

	unit, ok := units[strings.ToUpper(fields[1])]
	if !ok {
		return 0
	}

	return int64(n * unit)
}
