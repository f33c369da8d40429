// Package ledger is the authoritative vote ledger: one ballot per visitor per
// content item, with counts always derived from the stored ballots.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/civicvote/internal/crypto"
	"github.com/iudanet/civicvote/internal/models"
	"github.com/iudanet/civicvote/internal/server/metrics"
	"github.com/iudanet/civicvote/internal/server/storage"
	"github.com/iudanet/civicvote/internal/validation"
)

// Service implements ReadCounts and SetVote on top of a BallotStorage.
// It holds no mutable state of its own and is safe for concurrent use.
type Service struct {
	storage     storage.BallotStorage
	keyer       *crypto.Keyer
	metrics     *metrics.Metrics
	logger      *slog.Logger
	maxBatchIDs int
}

// New creates a ledger service. maxBatchIDs <= 0 selects validation.DefaultMaxBatchIDs.
func New(st storage.BallotStorage, keyer *crypto.Keyer, m *metrics.Metrics, logger *slog.Logger, maxBatchIDs int) *Service {
	if maxBatchIDs <= 0 {
		maxBatchIDs = validation.DefaultMaxBatchIDs
	}
	return &Service{
		storage:     st,
		keyer:       keyer,
		metrics:     m,
		logger:      logger,
		maxBatchIDs: maxBatchIDs,
	}
}

// ReadCounts returns counts for every requested id and the caller's own votes.
// visitorID may be empty, in which case UserVotes is empty.
func (s *Service) ReadCounts(ctx context.Context, ids []string, visitorID string) (*models.BatchState, error) {
	normalized, err := validation.NormalizeIDs(ids, s.maxBatchIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if len(normalized) == 0 {
		return models.NewBatchState(nil), nil
	}

	var visitorKey string
	if visitorID != "" {
		if visitorKey, err = s.visitorKey(visitorID); err != nil {
			return nil, err
		}
	}

	state, err := s.storage.ReadBatch(ctx, normalized, visitorKey)
	if err != nil {
		s.metrics.LedgerFailures.WithLabelValues("read").Inc()
		s.logger.Error("Failed to read vote counts",
			"ids", len(normalized),
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}

	return state, nil
}

// SetVote records, replaces or retracts (models.VoteNone) the visitor's ballot
// and returns the recomputed counts with the resulting vote.
func (s *Service) SetVote(ctx context.Context, contentID, visitorID string, vote models.Vote) (*models.VoteState, error) {
	if err := validation.ValidateContentID(contentID); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if vote != models.VoteNone && !vote.IsDirection() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, models.ErrInvalidVote)
	}

	visitorKey, err := s.visitorKey(visitorID)
	if err != nil {
		return nil, err
	}

	state, err := s.storage.SetBallot(ctx, contentID, visitorKey, vote)
	if err != nil {
		s.metrics.LedgerFailures.WithLabelValues("write").Inc()
		s.logger.Error("Failed to save vote",
			"content_id", contentID,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	s.metrics.VotesTotal.WithLabelValues(voteLabel(vote)).Inc()
	s.logger.Debug("Vote saved",
		"content_id", contentID,
		"vote", voteLabel(vote),
		"up", state.Counts.Up,
		"down", state.Counts.Down,
	)

	return state, nil
}

// Ping checks the backing storage
func (s *Service) Ping(ctx context.Context) error {
	return s.storage.Ping(ctx)
}

func (s *Service) visitorKey(visitorID string) (string, error) {
	if err := validation.ValidateVisitorID(visitorID); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	key, err := s.keyer.Key(visitorID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return key, nil
}

func voteLabel(v models.Vote) string {
	if v == models.VoteNone {
		return "none"
	}
	return string(v)
}
