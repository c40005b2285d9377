package recommend

import (
	"slices"
	"strings"

	"github.com/opporank/opporank/core"
)

// RankerConfig tunes the tiered fallback ranker.
type RankerConfig struct {
	// Threshold is the minimum final score a candidate needs to count as
	// a quality match.
	Threshold float64
	// PrimarySize is the result size for the location-match tier.
	PrimarySize int
	// FallbackSize is the result size for the fallback tiers.
	FallbackSize int
}

// DefaultRankerConfig returns the standard ranker tuning.
func DefaultRankerConfig() RankerConfig {
	return RankerConfig{
		Threshold:    0.50,
		PrimarySize:  5,
		FallbackSize: 3,
	}
}

// remoteLocations are posting locations treated as satisfying a
// work-from-home preference.
var remoteLocations = map[string]struct{}{
	"remote":         {},
	"work from home": {},
	"wfh":            {},
	"anywhere":       {},
	"virtual":        {},
}

// matchesLocation reports whether a posting satisfies the profile's
// location preference. Matching is case-insensitive equality; an empty or
// "any" preference matches everything, and a work-from-home preference
// matches the recognized remote location spellings.
func matchesLocation(profile *core.Profile, posting *core.Posting) bool {
	loc := strings.ToLower(strings.TrimSpace(posting.Location))
	if profile.WorkFromHomeOnly {
		_, ok := remoteLocations[loc]
		return ok
	}
	pref := strings.ToLower(strings.TrimSpace(profile.LocationPreference))
	if pref == "" || pref == "any" {
		return true
	}
	return loc == pref
}

// Rank applies the tiered fallback policy to a scored candidate pool and
// returns the chosen candidates together with the tier that produced them.
// The tiers are evaluated in order and the first non-empty one wins:
//
//  1. In-location candidates at or above the threshold (top PrimarySize).
//  2. Any candidate at or above the threshold (top FallbackSize).
//  3. The best of the whole pool regardless of threshold (top FallbackSize).
//  4. Nothing to rank at all.
//
// Ordering within a tier is final score descending; ties keep retrieval
// order. The input slice is not modified.
func Rank(candidates []*core.ScoredCandidate, profile *core.Profile, cfg RankerConfig) ([]*core.ScoredCandidate, core.Tier) {
	if len(candidates) == 0 {
		return nil, core.TierEmpty
	}

	var locMatches, globalMatches []*core.ScoredCandidate
	for _, c := range candidates {
		if c.FinalScore < cfg.Threshold {
			continue
		}
		globalMatches = append(globalMatches, c)
		if matchesLocation(profile, c.Posting) {
			locMatches = append(locMatches, c)
		}
	}

	if len(locMatches) > 0 {
		return top(locMatches, cfg.PrimarySize), core.TierLocationMatch
	}
	if len(globalMatches) > 0 {
		return top(globalMatches, cfg.FallbackSize), core.TierGlobalFallback
	}
	return top(slices.Clone(candidates), cfg.FallbackSize), core.TierClosestMatch
}

// top sorts candidates by final score descending, retrieval rank ascending
// on ties, and truncates to n. The slice is sorted in place.
func top(candidates []*core.ScoredCandidate, n int) []*core.ScoredCandidate {
	slices.SortStableFunc(candidates, func(a, b *core.ScoredCandidate) int {
		switch {
		case a.FinalScore > b.FinalScore:
			return -1
		case a.FinalScore < b.FinalScore:
			return 1
		default:
			return a.RetrievalRank - b.RetrievalRank
		}
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}
