package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostingText(t *testing.T) {
	p := &Posting{
		ID:       "42",
		Title:    "Data Analyst",
		Location: "Remote",
		Skills:   NewSkillSet("SQL, Python"),
	}
	assert.Equal(t,
		"Seeking a candidate for a Data Analyst position requiring skills such as python, sql.",
		PostingText(p))
}

func TestPostingText_EmptySkills(t *testing.T) {
	p := &Posting{ID: "1", Title: "Office Assistant", Skills: NewSkillSet()}
	assert.Equal(t,
		"Seeking a candidate for a Office Assistant position requiring skills such as various skills.",
		PostingText(p))
}

func TestProfileText(t *testing.T) {
	p := &Profile{
		Skills:    NewSkillSet("python, sql"),
		Interests: NewSkillSet("analytics"),
	}
	assert.Equal(t, "A candidate with key skills in: analytics, python, sql.", ProfileText(p))
}

func TestProfileText_Deterministic(t *testing.T) {
	// Map iteration order must not leak into the synthesized text.
	p := &Profile{Skills: NewSkillSet("go, rust, python, sql, java"), Interests: NewSkillSet()}
	first := ProfileText(p)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, ProfileText(p))
	}
}

func TestFingerprintPostings(t *testing.T) {
	postings := []*Posting{
		{ID: "1", Title: "A", Location: "Remote", Skills: NewSkillSet("python")},
		{ID: "2", Title: "B", Location: "Onsite", Skills: NewSkillSet("java")},
	}

	fp1 := FingerprintPostings(postings)
	fp2 := FingerprintPostings(postings)
	assert.Equal(t, fp1, fp2)

	// Order matters: index position is the join key with the id map.
	swapped := []*Posting{postings[1], postings[0]}
	assert.NotEqual(t, fp1, FingerprintPostings(swapped))

	// Content matters.
	changed := []*Posting{
		{ID: "1", Title: "A", Location: "Remote", Skills: NewSkillSet("python, sql")},
		postings[1],
	}
	assert.NotEqual(t, fp1, FingerprintPostings(changed))
}

func TestValidatePosting(t *testing.T) {
	valid := &Posting{ID: "1", Title: "Analyst", Skills: NewSkillSet()}
	require.NoError(t, ValidatePosting(valid))

	tests := []struct {
		name    string
		posting *Posting
	}{
		{"nil posting", nil},
		{"missing id", &Posting{Title: "Analyst", Skills: NewSkillSet()}},
		{"missing title", &Posting{ID: "1", Skills: NewSkillSet()}},
		{"nil skills", &Posting{ID: "1", Title: "Analyst"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePosting(tt.posting)
			assert.ErrorIs(t, err, ErrInvalidPosting)
		})
	}
}

func TestNormalizeProfile(t *testing.T) {
	p := NormalizeProfile(Profile{LocationPreference: "  Mumbai  "})
	assert.NotNil(t, p.Skills)
	assert.NotNil(t, p.Interests)
	assert.Equal(t, "Mumbai", p.LocationPreference)
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "LOCATION_MATCH", TierLocationMatch.String())
	assert.Equal(t, "GLOBAL_FALLBACK", TierGlobalFallback.String())
	assert.Equal(t, "CLOSEST_MATCH", TierClosestMatch.String())
	assert.Equal(t, "EMPTY", TierEmpty.String())
	assert.Equal(t, "UNKNOWN", Tier(0).String())
}
