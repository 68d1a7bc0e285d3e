// Package match classifies how well a release title fits a request.
package match

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/anisan-cli/anifetch/source"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

var (
	bracketed  = regexp.MustCompile(`[\[(【][^\])】]*[\])】]`)
	separators = regexp.MustCompile(`[\s_.\-:!?'"~]+`)
	number     = regexp.MustCompile(`\d+(?:\.\d+)?`)
	resolution = regexp.MustCompile(`(?i)\b(2160|1440|1080|720|576|480|360)[pi]\b|\b(4k)\b`)
)

// Classify tells whether title is the requested episode of one of the request's subjects.
// The subject name must appear in the title; the episode number must match when the title carries one.
func Classify(request source.Request, title string) source.MatchKind {
	plain := normalize(bracketed.ReplaceAllString(title, " "))
	if plain == "" {
		plain = normalize(title)
	}

	name, kind := bestName(request.SubjectNames, plain)
	if kind == source.MatchNone {
		return source.MatchNone
	}

	rest := plain
	if name != "" {
		rest = strings.Replace(plain, name, " ", 1)
	}

	episodes := Episodes(rest)
	if len(episodes) == 0 {
		return source.MatchFuzzy
	}

	if !lo.Contains(episodes, request.EpisodeSort) {
		return source.MatchNone
	}

	return kind
}

// bestName returns the normalized subject name found in plain and how closely it matched.
func bestName(names []string, plain string) (string, source.MatchKind) {
	var fuzzyName string

	for _, n := range names {
		n = normalize(n)
		if n == "" {
			continue
		}

		if strings.Contains(plain, n) {
			return n, source.MatchExact
		}

		if fuzzyName == "" && similar(n, plain) {
			fuzzyName = n
		}
	}

	if fuzzyName != "" {
		return "", source.MatchFuzzy
	}

	return "", source.MatchNone
}

// similar reports whether name reads like the leading part of plain.
func similar(name, plain string) bool {
	if fuzzy.MatchNormalizedFold(name, plain) && len(name) >= len(plain)/3 {
		return true
	}

	head := plain
	if len(head) > len(name) {
		head = head[:len(name)]
	}

	return levenshtein.Distance(name, head) <= len(name)/4
}

// Episodes extracts the numbers of a title that may be episode numbers.
// Resolutions, codecs, versions and years are skipped.
func Episodes(title string) []float64 {
	title = resolution.ReplaceAllString(strings.ToLower(title), " ")

	var found []float64
	for _, loc := range number.FindAllStringIndex(title, -1) {
		start, end := loc[0], loc[1]
		digits := title[start:end]

		if start > 0 && strings.ContainsRune("xhv", rune(title[start-1])) {
			continue
		}
		if end < len(title) && strings.ContainsRune("pbk", rune(title[end])) {
			continue
		}
		if len(digits) == 4 && !strings.Contains(digits, ".") {
			continue
		}

		if n, err := strconv.ParseFloat(digits, 64); err == nil {
			found = append(found, n)
		}
	}

	return lo.Uniq(found)
}

// Resolution returns the resolution label of a title, e.g. "1080p", or "" when none is given.
func Resolution(title string) string {
	m := resolution.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	if m[2] != "" {
		return "2160p"
	}
	return m[1] + "p"
}

func normalize(s string) string {
	return strings.TrimSpace(separators.ReplaceAllString(strings.ToLower(s), " "))
}
