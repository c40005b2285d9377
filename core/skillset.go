package core

import (
	"sort"
	"strings"
	"unicode"
)

// SkillSet is a set of normalized skill tokens. Tokens are lowercase and
// trimmed; the empty set is valid and never represented as nil by the
// constructors in this package.
type SkillSet map[string]struct{}

// NewSkillSet builds a SkillSet from raw tokens. Each token is split on
// commas and whitespace, trimmed, and lowercased. Empty fragments are
// dropped silently.
func NewSkillSet(raw ...string) SkillSet {
	set := make(SkillSet)
	for _, r := range raw {
		for _, tok := range splitTokens(r) {
			set[tok] = struct{}{}
		}
	}
	return set
}

// ParseSkills builds a SkillSet from a single comma/whitespace separated
// string, as found in catalog skill columns.
func ParseSkills(s string) SkillSet {
	return NewSkillSet(s)
}

func splitTokens(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		tokens = append(tokens, strings.ToLower(part))
	}
	return tokens
}

// Contains reports whether the set contains the normalized form of tok.
func (s SkillSet) Contains(tok string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(tok))]
	return ok
}

// Len returns the number of tokens in the set.
func (s SkillSet) Len() int {
	return len(s)
}

// Tokens returns the tokens in sorted order. Sorting makes every derived
// artifact (synthesized text, fingerprints) deterministic.
func (s SkillSet) Tokens() []string {
	tokens := make([]string, 0, len(s))
	for tok := range s {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return tokens
}

// Union returns a new set containing tokens from both sets.
func (s SkillSet) Union(other SkillSet) SkillSet {
	out := make(SkillSet, len(s)+len(other))
	for tok := range s {
		out[tok] = struct{}{}
	}
	for tok := range other {
		out[tok] = struct{}{}
	}
	return out
}

// Intersect returns a new set containing tokens present in both sets.
func (s SkillSet) Intersect(other SkillSet) SkillSet {
	out := make(SkillSet)
	for tok := range s {
		if _, ok := other[tok]; ok {
			out[tok] = struct{}{}
		}
	}
	return out
}

// Jaccard returns |s ∩ other| / |s ∪ other|. An empty union yields 0.0,
// so two empty sets score zero rather than dividing by zero.
func (s SkillSet) Jaccard(other SkillSet) float64 {
	inter := len(s.Intersect(other))
	union := len(s) + len(other) - inter
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}

// Matched returns the sorted tokens of other that also appear in s.
func (s SkillSet) Matched(other SkillSet) []string {
	return s.Intersect(other).Tokens()
}

// Missing returns the sorted tokens of other that do not appear in s.
func (s SkillSet) Missing(other SkillSet) []string {
	out := make(SkillSet)
	for tok := range other {
		if _, ok := s[tok]; !ok {
			out[tok] = struct{}{}
		}
	}
	return out.Tokens()
}
