package index

import (
	"testing"

	"github.com/opporank/opporank/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlat_AddDimensionMismatch(t *testing.T) {
	idx, err := NewFlat(3)
	require.NoError(t, err)

	require.NoError(t, idx.Add([]float32{1, 0, 0}))
	err = idx.Add([]float32{1, 0})
	assert.ErrorIs(t, err, core.ErrIndexCorrupt)
	assert.Equal(t, 1, idx.Count())
}

func TestFlat_SearchOrdering(t *testing.T) {
	idx, err := NewFlat(3)
	require.NoError(t, err)

	require.NoError(t, idx.Add([]float32{1, 0, 0}))
	require.NoError(t, idx.Add([]float32{0, 1, 0}))
	require.NoError(t, idx.Add([]float32{0, 0, 1}))

	hits := idx.Search([]float32{0.9, 0.1, 0}, 3)
	require.Len(t, hits, 3)
	assert.Equal(t, 0, hits[0].Position)
	assert.Equal(t, 1, hits[1].Position)
	assert.Equal(t, 2, hits[2].Position)
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

func TestFlat_SelfSimilarityRoundTrip(t *testing.T) {
	idx, err := NewFlat(4)
	require.NoError(t, err)

	vectors := [][]float32{
		Normalize([]float32{1, 2, 3, 4}),
		Normalize([]float32{-1, 0.5, 2, 0}),
		Normalize([]float32{0, 0, 0, 1}),
	}
	for _, v := range vectors {
		require.NoError(t, idx.Add(v))
	}

	// Querying with a stored vector must return that vector as top-1 with
	// score ~1.0.
	for pos, v := range vectors {
		hits := idx.Search(v, 1)
		require.Len(t, hits, 1)
		assert.Equal(t, pos, hits[0].Position)
		assert.InDelta(t, 1.0, hits[0].Score, 1e-5)
	}
}

func TestFlat_SearchTruncatesToK(t *testing.T) {
	idx, err := NewFlat(2)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		require.NoError(t, idx.Add(Normalize([]float32{float32(i + 1), 1})))
	}

	assert.Len(t, idx.Search([]float32{1, 0}, 3), 3)
	assert.Len(t, idx.Search([]float32{1, 0}, 100), 10)
}

func TestFlat_SearchEmpty(t *testing.T) {
	idx, err := NewFlat(2)
	require.NoError(t, err)
	assert.Empty(t, idx.Search([]float32{1, 0}, 5))
	assert.Empty(t, idx.Search([]float32{1, 0}, 0))
}

func TestFlat_SearchTiesKeepInsertionOrder(t *testing.T) {
	idx, err := NewFlat(2)
	require.NoError(t, err)

	// Identical vectors tie exactly; stable sort keeps insertion order.
	v := Normalize([]float32{1, 1})
	for i := 0; i < 4; i++ {
		require.NoError(t, idx.Add(v))
	}

	hits := idx.Search(v, 4)
	require.Len(t, hits, 4)
	for i, hit := range hits {
		assert.Equal(t, i, hit.Position)
	}
}

func TestIDMap_Resolve(t *testing.T) {
	m := IDMap{"a", "b", "c"}

	id, err := m.Resolve(1)
	require.NoError(t, err)
	assert.Equal(t, "b", id)

	_, err = m.Resolve(3)
	assert.ErrorIs(t, err, core.ErrIndexDesync)
	_, err = m.Resolve(-1)
	assert.ErrorIs(t, err, core.ErrIndexDesync)
}

func TestNormalize(t *testing.T) {
	t.Run("unit length", func(t *testing.T) {
		v := Normalize([]float32{3, 4})
		assert.InDelta(t, 0.6, v[0], 1e-6)
		assert.InDelta(t, 0.8, v[1], 1e-6)
		assert.InDelta(t, 1.0, Dot(v, v), 1e-6)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		v := Normalize([]float32{0, 0, 0})
		assert.Equal(t, []float32{0, 0, 0}, v)
	})

	t.Run("empty vector", func(t *testing.T) {
		assert.Empty(t, Normalize(nil))
	})

	t.Run("does not mutate input", func(t *testing.T) {
		in := []float32{3, 4}
		Normalize(in)
		assert.Equal(t, []float32{3, 4}, in)
	})
}
