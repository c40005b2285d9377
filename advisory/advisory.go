// Package advisory maps skill tokens to learning resources. It backs the
// skill-gap explanation in a query response: every missing skill can be
// paired with a tutorial link.
package advisory

import (
	"net/url"
	"strings"
)

// tutorials holds curated tutorial links for common skills. Lookups fall
// back to a generic search URL, so the table only needs entries where a
// curated link beats a search.
var tutorials = map[string]string{
	"python":        "https://www.youtube.com/watch?v=eWRfhZUzrAc",
	"java":          "https://www.youtube.com/watch?v=grEKMHGYCs8",
	"marketing":     "https://www.youtube.com/watch?v=nU-IIXBWlS4",
	"sales":         "https://www.youtube.com/watch?v=bSa0_Vp3o_M",
	"msoffice":      "https://www.youtube.com/watch?v=2-h6t4p6a_g",
	"dataanalysis":  "https://www.youtube.com/watch?v=rCG36C4d3g8",
	"communication": "https://www.youtube.com/watch?v=Jwyb7I_3R2Y",
	"teamwork":      "https://www.youtube.com/watch?v=s8a8aV3w7pU",
}

// Resource is a learning resource for one skill.
type Resource struct {
	Skill string
	URL   string
	// Curated is true when the link comes from the curated table rather
	// than the generic search fallback.
	Curated bool
}

// Lookup returns a learning resource for a skill token. Unknown skills
// get a search URL rather than an empty result. Spaces are stripped
// before the table lookup, so "ms office" and "msoffice" hit the same
// curated entry; the fallback search keeps the original wording.
func Lookup(skill string) Resource {
	normalized := strings.ToLower(strings.TrimSpace(skill))
	key := strings.ReplaceAll(normalized, " ", "")
	if link, ok := tutorials[key]; ok {
		return Resource{Skill: skill, URL: link, Curated: true}
	}
	return Resource{
		Skill: skill,
		URL:   "https://www.youtube.com/results?search_query=how+to+learn+" + url.QueryEscape(normalized),
	}
}

// ForSkills returns one resource per skill, in input order.
func ForSkills(skills []string) []Resource {
	out := make([]Resource, len(skills))
	for i, skill := range skills {
		out[i] = Lookup(skill)
	}
	return out
}
