package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/civicvote/internal/client/storage"
)

// SaveVotes stores the snapshot under the store name
func (s *Storage) SaveVotes(ctx context.Context, store string, snapshot *storage.VoteSnapshot) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal votes: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketVotes)
		if bucket == nil {
			return fmt.Errorf("votes bucket not found")
		}

		if err := bucket.Put([]byte(store), data); err != nil {
			return fmt.Errorf("failed to save votes: %w", err)
		}
		return nil
	})
}

// LoadVotes retrieves the snapshot stored under the store name
func (s *Storage) LoadVotes(ctx context.Context, store string) (*storage.VoteSnapshot, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var snapshot *storage.VoteSnapshot

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketVotes)
		if bucket == nil {
			return fmt.Errorf("votes bucket not found")
		}

		data := bucket.Get([]byte(store))
		if data == nil {
			return storage.ErrVotesNotFound
		}

		snapshot = &storage.VoteSnapshot{}
		if err := json.Unmarshal(data, snapshot); err != nil {
			return fmt.Errorf("failed to unmarshal votes: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}
