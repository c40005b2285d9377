package recommend

import (
	"fmt"

	"github.com/opporank/opporank/catalog"
	"github.com/opporank/opporank/core"
	"github.com/opporank/opporank/index"
)

// Snapshot is an immutable (store, index, id map) triple built from one
// catalog state. Queries share a snapshot without locking; a rebuild
// produces a new snapshot that replaces the old one atomically.
type Snapshot struct {
	Store *catalog.Store
	Index *index.Flat
	IDMap index.IDMap
}

// NewSnapshot validates that the three parts agree on cardinality and
// returns the assembled snapshot. A disagreement means the artifacts do
// not belong together.
func NewSnapshot(store *catalog.Store, idx *index.Flat, idMap index.IDMap) (*Snapshot, error) {
	if store == nil || idx == nil {
		return nil, ErrSnapshotInvalid
	}
	if idx.Count() != idMap.Len() {
		return nil, fmt.Errorf("%w: index holds %d vectors, id map holds %d entries",
			core.ErrIndexCorrupt, idx.Count(), idMap.Len())
	}
	if idx.Count() != store.Len() {
		return nil, fmt.Errorf("%w: index holds %d vectors, store holds %d postings",
			core.ErrIndexCorrupt, idx.Count(), store.Len())
	}
	return &Snapshot{Store: store, Index: idx, IDMap: idMap}, nil
}
