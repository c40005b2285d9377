package advisory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	t.Run("curated", func(t *testing.T) {
		r := Lookup("python")
		assert.True(t, r.Curated)
		assert.Equal(t, "https://www.youtube.com/watch?v=eWRfhZUzrAc", r.URL)
	})

	t.Run("case insensitive", func(t *testing.T) {
		r := Lookup("  Python ")
		assert.True(t, r.Curated)
	})

	t.Run("spaces stripped before table lookup", func(t *testing.T) {
		spaced := Lookup("MS Office")
		assert.True(t, spaced.Curated)
		joined := Lookup("msoffice")
		assert.True(t, joined.Curated)
		assert.Equal(t, spaced.URL, joined.URL)
	})

	t.Run("fallback search", func(t *testing.T) {
		r := Lookup("kubernetes")
		assert.False(t, r.Curated)
		assert.Equal(t, "https://www.youtube.com/results?search_query=how+to+learn+kubernetes", r.URL)
	})

	t.Run("fallback escapes spaces", func(t *testing.T) {
		r := Lookup("machine learning")
		assert.Equal(t, "https://www.youtube.com/results?search_query=how+to+learn+machine+learning", r.URL)
	})
}

func TestForSkills(t *testing.T) {
	resources := ForSkills([]string{"python", "go"})
	assert.Len(t, resources, 2)
	assert.Equal(t, "python", resources[0].Skill)
	assert.True(t, resources[0].Curated)
	assert.False(t, resources[1].Curated)
}
