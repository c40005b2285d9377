package badger

import (
	"context"
	"encoding/binary"

	"github.com/dgraph-io/badger/v4"
	"github.com/opporank/opporank/core"
	"github.com/opporank/opporank/storage"
)

// PostingRepository implements storage.PostingRepository for BadgerDB.
type PostingRepository struct {
	backend *Backend
	ordSeq  *badger.Sequence
}

var _ storage.PostingRepository = (*PostingRepository)(nil)

// NewPostingRepository creates a new PostingRepository.
func NewPostingRepository(backend *Backend) (*PostingRepository, error) {
	ordSeq, err := backend.GetSequence(postingOrdinalSeq)
	if err != nil {
		return nil, err
	}

	return &PostingRepository{
		backend: backend,
		ordSeq:  ordSeq,
	}, nil
}

// Close releases the ordinal sequence.
func (r *PostingRepository) Close() error {
	return r.ordSeq.Release()
}

// PutPostings stores one or more postings under the next insertion
// ordinals. A posting ID that already exists fails the whole batch.
func (r *PostingRepository) PutPostings(ctx context.Context, postings ...*core.Posting) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, p := range postings {
			if err := core.ValidatePosting(p); err != nil {
				return err
			}

			idKey := makeIDKey(p.ID)
			if _, err := tx.Get(idKey); err == nil {
				return storage.ErrDuplicateKey
			} else if err != badger.ErrKeyNotFound {
				return err
			}

			ordinal, err := r.ordSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if ordinal == 0 {
				ordinal, err = r.ordSeq.Next()
				if err != nil {
					return err
				}
			}

			if err := tx.Set(makeOrdinalKey(ordinal), storage.MarshalPosting(p)); err != nil {
				return err
			}

			var ordBuf [8]byte
			binary.BigEndian.PutUint64(ordBuf[:], ordinal)
			if err := tx.Set(idKey, ordBuf[:]); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetPosting retrieves a posting by ID.
func (r *PostingRepository) GetPosting(ctx context.Context, id string) (*core.Posting, error) {
	var posting *core.Posting

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeIDKey(id))
		if err == badger.ErrKeyNotFound {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}

		var ordinal uint64
		if err := item.Value(func(val []byte) error {
			if len(val) != 8 {
				return storage.ErrSerializationFailed
			}
			ordinal = binary.BigEndian.Uint64(val)
			return nil
		}); err != nil {
			return err
		}

		item, err = tx.Get(makeOrdinalKey(ordinal))
		if err == badger.ErrKeyNotFound {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			posting, err = storage.UnmarshalPosting(val)
			return err
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return posting, nil
}

// AllPostings retrieves every posting in insertion order.
func (r *PostingRepository) AllPostings(ctx context.Context) ([]*core.Posting, error) {
	var postings []*core.Posting

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(postingOrdinalPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var posting *core.Posting
			err := iter.Item().Value(func(val []byte) error {
				var err error
				posting, err = storage.UnmarshalPosting(val)
				return err
			})
			if err != nil {
				return err
			}
			postings = append(postings, posting)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return postings, nil
}

// Count returns the number of stored postings.
func (r *PostingRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(postingOrdinalPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}
