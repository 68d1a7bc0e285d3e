package source

import (
	"fmt"
	"strings"
	"time"
)

// MediaKind tells how a media item is retrieved.
type MediaKind string

const (
	KindWeb     MediaKind = "web"
	KindTorrent MediaKind = "torrent"
)

// Media is one downloadable source for an episode, as reported by a connector.
type Media struct {
	// URL is the canonical origin locator (stream URL, magnet link, torrent file).
	URL string `json:"url"`
	// Title is the release title as shown by the origin.
	Title string `json:"title"`
	// SourceID is the connector instance that produced the item.
	SourceID string `json:"source_id"`
	// Kind tells whether URL is a direct stream or a torrent.
	Kind MediaKind `json:"kind"`
	// Resolution label (e.g. "1080p").
	Resolution string `json:"resolution,omitempty"`
	// Extension of the file or playlist (e.g. "mp4", "m3u8").
	Extension string `json:"extension,omitempty"`
	// Size in bytes, 0 when unknown.
	Size int64 `json:"size,omitempty"`
	// Headers required to stream.
	Headers map[string]string `json:"headers,omitempty"`
	// PublishedAt is zero when the origin does not tell.
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// String returns the title or URL for display.
func (m Media) String() string {
	if m.Title != "" {
		return m.Title
	}
	return m.URL
}

// MatchKind expresses how confident a connector is that a media item matches the request.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchFuzzy
	MatchExact
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchFuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// ParseMatchKind is the inverse of MatchKind.String. Unknown values yield MatchNone.
func ParseMatchKind(s string) MatchKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact":
		return MatchExact
	case "fuzzy":
		return MatchFuzzy
	default:
		return MatchNone
	}
}

func (k MatchKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *MatchKind) UnmarshalText(text []byte) error {
	*k = ParseMatchKind(string(text))
	return nil
}

// MatchMedia pairs a media item with the connector's confidence.
type MatchMedia struct {
	Media Media     `json:"media"`
	Kind  MatchKind `json:"match"`
}

func (m MatchMedia) String() string {
	return fmt.Sprintf("[%s] %s", m.Kind, m.Media)
}
