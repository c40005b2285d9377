package storage

import (
	"context"

	"github.com/opporank/opporank/core"
)

// PostingRepository provides durable storage for the posting catalog.
// Implementations must be thread-safe and must preserve insertion order in
// AllPostings: that order is the iteration order the index builder joins
// index positions against.
type PostingRepository interface {
	// PutPostings stores one or more postings. Returns ErrDuplicateKey if a
	// posting ID is already present; the catalog is rebuild-only, not
	// upserted in place.
	PutPostings(ctx context.Context, postings ...*core.Posting) error

	// GetPosting retrieves a posting by ID.
	// Returns ErrNotFound if the posting doesn't exist.
	GetPosting(ctx context.Context, id string) (*core.Posting, error)

	// AllPostings retrieves every posting in insertion order.
	AllPostings(ctx context.Context) ([]*core.Posting, error)

	// Count returns the number of stored postings.
	Count(ctx context.Context) (int, error)

	// Close closes the repository and releases resources.
	Close() error
}
