package index

import (
	"fmt"
	"slices"

	"github.com/opporank/opporank/core"
)

// Metric identifies the similarity measure an index was built with.
type Metric int

const (
	// MetricInnerProduct is inner-product similarity. Over unit-normalized
	// vectors it is equivalent to cosine similarity.
	MetricInnerProduct Metric = 1
)

func (m Metric) String() string {
	switch m {
	case MetricInnerProduct:
		return "inner_product"
	default:
		return "unknown"
	}
}

// Hit is a single search result: an index-internal position and its
// similarity score. Positions are resolved to posting IDs through the IDMap
// persisted alongside the index.
type Hit struct {
	Position int
	Score    float32
}

// Flat is a flat inner-product vector index. It stores one vector per
// posting in insertion order; position is the join key with the IDMap, so
// insertion must be sequential and deterministic. After build the index is
// read-only and safe for arbitrarily many concurrent searches.
type Flat struct {
	dim     int
	vectors [][]float32
}

// NewFlat creates an empty flat index with the given vector dimension.
func NewFlat(dim int) (*Flat, error) {
	if dim < 0 {
		return nil, fmt.Errorf("invalid dimension %d", dim)
	}
	return &Flat{dim: dim}, nil
}

// Dim returns the declared vector dimension.
func (f *Flat) Dim() int {
	return f.dim
}

// Metric returns the similarity metric the index searches with.
func (f *Flat) Metric() Metric {
	return MetricInnerProduct
}

// Count returns the number of stored vectors.
func (f *Flat) Count() int {
	return len(f.vectors)
}

// Add appends a vector at the next position. The vector must match the
// index dimension; callers are expected to have unit-normalized it.
func (f *Flat) Add(v []float32) error {
	if len(v) != f.dim {
		return fmt.Errorf("%w: vector dimension %d does not match index dimension %d",
			core.ErrIndexCorrupt, len(v), f.dim)
	}
	f.vectors = append(f.vectors, v)
	return nil
}

// Search returns the top k positions by inner product with the query
// vector, ordered by score descending. Ties keep insertion order. Fewer
// than k hits are returned when the index holds fewer vectors.
func (f *Flat) Search(query []float32, k int) []Hit {
	if k <= 0 || len(f.vectors) == 0 {
		return nil
	}

	hits := make([]Hit, 0, len(f.vectors))
	for pos, v := range f.vectors {
		hits = append(hits, Hit{Position: pos, Score: Dot(query, v)})
	}

	slices.SortStableFunc(hits, func(a, b Hit) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

// vectorAt exposes a stored vector to the artifact writer.
func (f *Flat) vectorAt(pos int) []float32 {
	return f.vectors[pos]
}
