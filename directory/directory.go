// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/mohamed20o03/web/api"
)

// AllFaculties disables the faculty filter.
const AllFaculties = "ALL"

// Filter selects profiles from a listing.
type Filter struct {
	// Query is matched against "First Last" and the faculty name. Empty
	// matches everything.
	Query string
	// Faculty keeps only profiles of exactly this faculty. Empty or
	// AllFaculties keeps every faculty.
	Faculty string
	// Fuzzy switches Query from substring to fuzzy matching and orders
	// results by match score.
	Fuzzy bool
}

// Match is a profile that passed the filter. Score is zero in
// substring mode.
type Match struct {
	Profile api.Profile
	Score   int
}

var initAlgo = sync.OnceFunc(func() { algo.Init("default") })

// Apply returns the profiles selected by filter. Substring mode keeps
// the listing order. Fuzzy mode orders by descending score, then by
// name.
func Apply(profiles []api.Profile, filter Filter) []Match {
	query := strings.TrimSpace(filter.Query)
	var (
		pattern []rune
		slab    *util.Slab
	)
	if filter.Fuzzy && query != "" {
		initAlgo()
		pattern = []rune(strings.ToLower(query))
		slab = util.MakeSlab(16*1024, 2048)
	}
	lowered := strings.ToLower(query)

	matches := make([]Match, 0, len(profiles))
	for _, profile := range profiles {
		if !facultySelected(profile.Faculty, filter.Faculty) {
			continue
		}
		if query == "" {
			matches = append(matches, Match{Profile: profile})
			continue
		}
		if filter.Fuzzy {
			if score := fuzzyScore(searchText(profile), pattern, slab); score > 0 {
				matches = append(matches, Match{Profile: profile, Score: score})
			}
			continue
		}
		if substringMatch(profile, lowered) {
			matches = append(matches, Match{Profile: profile})
		}
	}

	if filter.Fuzzy && query != "" {
		slices.SortStableFunc(matches, func(a, b Match) int {
			if byScore := cmp.Compare(b.Score, a.Score); byScore != 0 {
				return byScore
			}
			return strings.Compare(
				strings.ToLower(a.Profile.FullName()),
				strings.ToLower(b.Profile.FullName()))
		})
	}
	return matches
}

// Profiles strips scores from matches.
func Profiles(matches []Match) []api.Profile {
	profiles := make([]api.Profile, len(matches))
	for index, match := range matches {
		profiles[index] = match.Profile
	}
	return profiles
}

// Faculties returns the distinct non-empty faculty names in profiles,
// sorted.
func Faculties(profiles []api.Profile) []string {
	var names []string
	for _, profile := range profiles {
		if profile.Faculty != "" {
			names = append(names, profile.Faculty)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

func facultySelected(faculty, selected string) bool {
	return selected == "" || selected == AllFaculties || faculty == selected
}

func substringMatch(profile api.Profile, lowered string) bool {
	name := strings.ToLower(profile.FirstName + " " + profile.LastName)
	if strings.Contains(name, lowered) {
		return true
	}
	return profile.Faculty != "" && strings.Contains(strings.ToLower(profile.Faculty), lowered)
}

func searchText(profile api.Profile) string {
	return profile.FirstName + " " + profile.LastName + " " + profile.Faculty
}

// fuzzyScore runs the fzf v2 algorithm case-insensitively. pattern must
// already be lower case.
func fuzzyScore(text string, pattern []rune, slab *util.Slab) int {
	chars := util.ToChars([]byte(text))
	result, _ := algo.FuzzyMatchV2(false, false, true, &chars, pattern, false, slab)
	if result.Start < 0 {
		return 0
	}
	return result.Score
}
