package catalog

import (
	"fmt"

	"github.com/opporank/opporank/core"
)

// Store is an immutable, ordered snapshot of the posting catalog. Iteration
// order is fixed at construction and is the order the index builder uses,
// so index position i always corresponds to At(i). A catalog change
// produces a new Store; an existing one is never mutated, which makes it
// safe to share across arbitrarily many concurrent queries.
type Store struct {
	postings []*core.Posting
	byID     map[string]*core.Posting
}

// NewStore builds a snapshot from postings in the given order. Every
// posting is validated; duplicate IDs are rejected since the id map must be
// a bijection.
func NewStore(postings []*core.Posting) (*Store, error) {
	ordered := make([]*core.Posting, 0, len(postings))
	byID := make(map[string]*core.Posting, len(postings))

	for i, p := range postings {
		if err := core.ValidatePosting(p); err != nil {
			return nil, fmt.Errorf("posting %d: %w", i, err)
		}
		if _, exists := byID[p.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate posting id %q", ErrDuplicatePosting, p.ID)
		}
		ordered = append(ordered, p)
		byID[p.ID] = p
	}

	return &Store{postings: ordered, byID: byID}, nil
}

// Len returns the number of postings in the snapshot.
func (s *Store) Len() int {
	return len(s.postings)
}

// At returns the posting at iteration position i.
func (s *Store) At(i int) *core.Posting {
	return s.postings[i]
}

// Get returns the posting with the given ID, or nil when absent.
func (s *Store) Get(id string) *core.Posting {
	return s.byID[id]
}

// Postings returns the postings in iteration order. The returned slice is
// a copy; the snapshot itself stays immutable.
func (s *Store) Postings() []*core.Posting {
	out := make([]*core.Posting, len(s.postings))
	copy(out, s.postings)
	return out
}

// Fingerprint returns the content fingerprint of the snapshot.
func (s *Store) Fingerprint() string {
	return core.FingerprintPostings(s.postings)
}
