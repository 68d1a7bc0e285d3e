// Package source defines the domain models and the connector contract for media discovery.
package source

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Request identifies the episode a fetch session searches downloadable media for.
// It is passed by value and never modified once a session holds it.
type Request struct {
	// SubjectID identifies the series.
	SubjectID string `json:"subject_id" validate:"required"`
	// EpisodeID identifies the episode within the series.
	EpisodeID string `json:"episode_id" validate:"required"`
	// SubjectNames is the set of known titles of the series, used for fuzzy matching.
	SubjectNames []string `json:"subject_names" validate:"min=1,dive,required"`
	// EpisodeSort is the ordinal of the episode. Fractional values denote specials (e.g. 12.5).
	EpisodeSort float64 `json:"episode_sort" validate:"gte=0"`
	// EpisodeName is the display name of the episode.
	EpisodeName string `json:"episode_name"`
}

// NewRequest builds a request with the subject names normalized into a set.
func NewRequest(subjectID, episodeID string, names []string, sort float64, episodeName string) Request {
	return Request{
		SubjectID:    subjectID,
		EpisodeID:    episodeID,
		SubjectNames: normalizeNames(names),
		EpisodeSort:  sort,
		EpisodeName:  episodeName,
	}
}

func normalizeNames(names []string) []string {
	trimmed := lo.FilterMap(names, func(n string, _ int) (string, bool) {
		n = strings.TrimSpace(n)
		return n, n != ""
	})
	set := lo.Uniq(trimmed)
	slices.Sort(set)
	return set
}

// Validate reports whether the request carries everything a connector needs.
func (r Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

// Sort renders EpisodeSort the way episode lists print it: "12", "12.5".
func (r Request) Sort() string {
	return strconv.FormatFloat(r.EpisodeSort, 'f', -1, 64)
}

// Fingerprint is a stable hash of the request, independent of name order.
func (r Request) Fingerprint() uint64 {
	names := normalizeNames(r.SubjectNames)
	return xxhash.Sum64String(strings.Join([]string{
		r.SubjectID,
		r.EpisodeID,
		strings.Join(names, "\x00"),
		r.Sort(),
	}, "\x1f"))
}

func (r Request) String() string {
	title := r.SubjectID
	if len(r.SubjectNames) > 0 {
		title = r.SubjectNames[0]
	}
	if r.EpisodeName != "" {
		return fmt.Sprintf("%s - %s (%s)", title, r.Sort(), r.EpisodeName)
	}
	return fmt.Sprintf("%s - %s", title, r.Sort())
}
