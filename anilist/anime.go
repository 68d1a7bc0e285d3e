// Package anilist resolves subject titles from the Anilist GraphQL API.
package anilist

import (
	"strings"

	"github.com/samber/lo"
)

// Anime is the subset of Anilist media metadata used to describe a subject.
type Anime struct {
	// ID is the unique identifier for the anime on Anilist.
	ID int `json:"id"`
	// IDMal is the id of the anime on MyAnimeList.
	IDMal int `json:"idMal"`
	Title struct {
		Romaji  string `json:"romaji"`
		English string `json:"english"`
		// Native is usually in kanji.
		Native string `json:"native"`
	} `json:"title"`
	// Synonyms are alternative titles.
	Synonyms []string `json:"synonyms"`
	// Episodes is 0 while the total is unknown.
	Episodes int    `json:"episodes"`
	Status   string `json:"status"`
	SiteURL  string `json:"siteUrl"`
}

// Name returns the primary display name of the anime. English is preferred over Romaji.
func (a *Anime) Name() string {
	if a.Title.English == "" {
		return a.Title.Romaji
	}

	return a.Title.English
}

// Names returns every known title of the anime, most recognizable first, without blanks or duplicates.
func (a *Anime) Names() []string {
	names := append([]string{a.Title.Romaji, a.Title.English, a.Title.Native}, a.Synonyms...)
	names = lo.Map(names, func(name string, _ int) string {
		return strings.TrimSpace(name)
	})

	return lo.Uniq(lo.Compact(names))
}
