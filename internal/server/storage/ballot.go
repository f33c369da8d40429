package storage

import (
	"context"

	"github.com/iudanet/civicvote/internal/models"
)

//go:generate moq -out ballotstorage_mock.go . BallotStorage

// BallotStorage defines the persistence contract of the vote ledger.
// Implementations enforce at most one ballot per (contentID, visitorKey)
// and never store aggregate counters.
type BallotStorage interface {
	// ReadBatch returns live counts for every id and the visitor's ballots among them.
	// The read is consistent across the whole batch; on error nothing is returned.
	ReadBatch(ctx context.Context, contentIDs []string, visitorKey string) (*models.BatchState, error)

	// SetBallot upserts (up/down) or deletes (none) the visitor's ballot and,
	// in the same transaction, recomputes the counts for contentID.
	SetBallot(ctx context.Context, contentID, visitorKey string, vote models.Vote) (*models.VoteState, error)

	// GetBallot retrieves the visitor's ballot
	// Returns ErrBallotNotFound if the visitor has not voted on contentID
	GetBallot(ctx context.Context, contentID, visitorKey string) (*models.Ballot, error)

	// CountBallots returns the number of ballot rows stored for the pair
	CountBallots(ctx context.Context, contentID, visitorKey string) (int, error)

	// Ping checks that the backing store is reachable
	Ping(ctx context.Context) error

	// Close releases the underlying connections
	Close() error
}
