package storage

import (
	"testing"

	"github.com/opporank/opporank/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostingSerialization_RoundTrip(t *testing.T) {
	p := &core.Posting{
		ID:       "p-42",
		Title:    "Backend Engineer",
		Location: "Work From Home",
		Skills:   core.NewSkillSet("go, sql, docker"),
	}

	got, err := UnmarshalPosting(MarshalPosting(p))
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, p.Location, got.Location)
	assert.Equal(t, p.Skills.Tokens(), got.Skills.Tokens())
}

func TestPostingSerialization_EmptySkills(t *testing.T) {
	p := &core.Posting{ID: "1", Title: "Assistant", Skills: core.NewSkillSet()}

	got, err := UnmarshalPosting(MarshalPosting(p))
	require.NoError(t, err)
	require.NotNil(t, got.Skills, "skills must never round-trip to nil")
	assert.Equal(t, 0, got.Skills.Len())
}

func TestUnmarshalPosting_Truncated(t *testing.T) {
	p := &core.Posting{ID: "1", Title: "Analyst", Skills: core.NewSkillSet("python")}
	bs := MarshalPosting(p)

	_, err := UnmarshalPosting(bs[:len(bs)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
