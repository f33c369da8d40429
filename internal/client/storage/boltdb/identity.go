package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/civicvote/internal/client/storage"
)

// SaveIdentity stores the visitor identity for serverURL
func (s *Storage) SaveIdentity(ctx context.Context, serverURL string, identity *storage.Identity) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to marshal identity: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketIdentity)
		if bucket == nil {
			return fmt.Errorf("identity bucket not found")
		}
		return bucket.Put([]byte(serverURL), data)
	})
}

// GetIdentity retrieves the visitor identity for serverURL
func (s *Storage) GetIdentity(ctx context.Context, serverURL string) (*storage.Identity, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var identity *storage.Identity

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketIdentity)
		if bucket == nil {
			return fmt.Errorf("identity bucket not found")
		}

		data := bucket.Get([]byte(serverURL))
		if data == nil {
			return storage.ErrIdentityNotFound
		}

		identity = &storage.Identity{}
		if err := json.Unmarshal(data, identity); err != nil {
			return fmt.Errorf("failed to unmarshal identity: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return identity, nil
}
