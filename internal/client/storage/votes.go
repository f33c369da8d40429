package storage

import (
	"context"

	"github.com/iudanet/civicvote/internal/models"
)

// VoteStorage persists the visitor's own votes between runs.
// Only userVotes are stored: counts are always re-read from the server.
type VoteStorage interface {
	// SaveVotes replaces the persisted snapshot for the store name
	SaveVotes(ctx context.Context, store string, snapshot *VoteSnapshot) error

	// LoadVotes returns the persisted snapshot
	// Returns ErrVotesNotFound if nothing was saved under the store name
	LoadVotes(ctx context.Context, store string) (*VoteSnapshot, error)
}

// VoteSnapshot is the persisted part of the client vote cache.
type VoteSnapshot struct {
	UserVotes map[string]models.Vote `json:"userVotes"`
	SavedAt   int64                  `json:"saved_at"`
}
