package catalog

import (
	"testing"

	"github.com/opporank/opporank/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPostings() []*core.Posting {
	return []*core.Posting{
		{ID: "1", Title: "Data Analyst", Location: "Remote", Skills: core.NewSkillSet("python, sql")},
		{ID: "2", Title: "Backend Engineer", Location: "Bengaluru", Skills: core.NewSkillSet("go, sql")},
		{ID: "3", Title: "Designer", Location: "Mumbai", Skills: core.NewSkillSet("figma")},
	}
}

func TestNewStore_PreservesOrder(t *testing.T) {
	store, err := NewStore(testPostings())
	require.NoError(t, err)

	require.Equal(t, 3, store.Len())
	assert.Equal(t, "1", store.At(0).ID)
	assert.Equal(t, "2", store.At(1).ID)
	assert.Equal(t, "3", store.At(2).ID)

	ids := make([]string, 0, store.Len())
	for _, p := range store.Postings() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestNewStore_Get(t *testing.T) {
	store, err := NewStore(testPostings())
	require.NoError(t, err)

	p := store.Get("2")
	require.NotNil(t, p)
	assert.Equal(t, "Backend Engineer", p.Title)
	assert.Nil(t, store.Get("missing"))
}

func TestNewStore_RejectsDuplicates(t *testing.T) {
	postings := testPostings()
	postings = append(postings, &core.Posting{ID: "1", Title: "Dup", Skills: core.NewSkillSet()})

	_, err := NewStore(postings)
	assert.ErrorIs(t, err, ErrDuplicatePosting)
}

func TestNewStore_RejectsInvalidPosting(t *testing.T) {
	_, err := NewStore([]*core.Posting{{ID: "", Title: "No ID", Skills: core.NewSkillSet()}})
	assert.ErrorIs(t, err, core.ErrInvalidPosting)
}

func TestNewStore_Empty(t *testing.T) {
	store, err := NewStore(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.Postings())
}

func TestStore_PostingsReturnsCopy(t *testing.T) {
	store, err := NewStore(testPostings())
	require.NoError(t, err)

	out := store.Postings()
	out[0] = nil
	assert.NotNil(t, store.At(0))
}

func TestStore_Fingerprint(t *testing.T) {
	a, err := NewStore(testPostings())
	require.NoError(t, err)
	b, err := NewStore(testPostings())
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	shuffled := testPostings()
	shuffled[0], shuffled[1] = shuffled[1], shuffled[0]
	c, err := NewStore(shuffled)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
