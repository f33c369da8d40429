package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iudanet/civicvote/internal/models"
	"github.com/iudanet/civicvote/internal/server/storage"
)

var _ storage.BallotStorage = (*Storage)(nil)

// ReadBatch returns counts for every id and the visitor's own ballots from one
// repeatable-read snapshot.
func (s *Storage) ReadBatch(ctx context.Context, contentIDs []string, visitorKey string) (*models.BatchState, error) {
	state := models.NewBatchState(contentIDs)
	if len(contentIDs) == 0 {
		return state, nil
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
		SELECT content_id,
		       COUNT(*) FILTER (WHERE value = 1),
		       COUNT(*) FILTER (WHERE value = -1)
		FROM ballots
		WHERE content_id = ANY($1)
		GROUP BY content_id`,
		contentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query counts: %w", err)
	}
	for rows.Next() {
		var id string
		var c models.Counts
		if err := rows.Scan(&id, &c.Up, &c.Down); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan counts: %w", err)
		}
		state.Counts[id] = c
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("counts iteration error: %w", err)
	}

	if visitorKey != "" {
		rows, err := tx.Query(ctx, `
			SELECT content_id, value
			FROM ballots
			WHERE visitor_key = $1 AND content_id = ANY($2)`,
			visitorKey, contentIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to query visitor ballots: %w", err)
		}
		for rows.Next() {
			var id string
			var value int16
			if err := rows.Scan(&id, &value); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan visitor ballot: %w", err)
			}
			vote, err := models.VoteFromValue(int(value))
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("%w: %w", storage.ErrInvalidBallot, err)
			}
			state.UserVotes[id] = vote
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("visitor ballots iteration error: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit read transaction: %w", err)
	}

	return state, nil
}

// SetBallot upserts or deletes the ballot and recounts in the same transaction.
func (s *Storage) SetBallot(ctx context.Context, contentID, visitorKey string, vote models.Vote) (*models.VoteState, error) {
	if vote != models.VoteNone && !vote.IsDirection() {
		return nil, storage.ErrInvalidBallot
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if vote == models.VoteNone {
		_, err = tx.Exec(ctx,
			`DELETE FROM ballots WHERE content_id = $1 AND visitor_key = $2`,
			contentID, visitorKey)
		if err != nil {
			return nil, fmt.Errorf("failed to delete ballot: %w", err)
		}
	} else {
		_, err = tx.Exec(ctx, `
			INSERT INTO ballots (content_id, visitor_key, value)
			VALUES ($1, $2, $3)
			ON CONFLICT (content_id, visitor_key) DO UPDATE
			SET value = EXCLUDED.value, updated_at = NOW()`,
			contentID, visitorKey, vote.Value())
		if err != nil {
			return nil, fmt.Errorf("failed to upsert ballot: %w", err)
		}
	}

	result := &models.VoteState{}
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE value = 1),
		       COUNT(*) FILTER (WHERE value = -1)
		FROM ballots
		WHERE content_id = $1`,
		contentID).Scan(&result.Counts.Up, &result.Counts.Down)
	if err != nil {
		return nil, fmt.Errorf("failed to recount ballots: %w", err)
	}

	var value int16
	err = tx.QueryRow(ctx,
		`SELECT value FROM ballots WHERE content_id = $1 AND visitor_key = $2`,
		contentID, visitorKey).Scan(&value)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		result.UserVote = models.VoteNone
	case err != nil:
		return nil, fmt.Errorf("failed to read resulting ballot: %w", err)
	default:
		if result.UserVote, err = models.VoteFromValue(int(value)); err != nil {
			return nil, fmt.Errorf("%w: %w", storage.ErrInvalidBallot, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit ballot: %w", err)
	}

	return result, nil
}

// GetBallot retrieves the visitor's ballot for a content item
func (s *Storage) GetBallot(ctx context.Context, contentID, visitorKey string) (*models.Ballot, error) {
	ballot := &models.Ballot{}
	var value int16

	err := s.pool.QueryRow(ctx, `
		SELECT content_id, visitor_key, value, created_at, updated_at
		FROM ballots
		WHERE content_id = $1 AND visitor_key = $2`,
		contentID, visitorKey).Scan(
		&ballot.ContentID,
		&ballot.VisitorKey,
		&value,
		&ballot.CreatedAt,
		&ballot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrBallotNotFound
		}
		return nil, fmt.Errorf("failed to get ballot: %w", err)
	}
	ballot.Value = int(value)

	return ballot, nil
}

// CountBallots returns how many rows exist for the pair
func (s *Storage) CountBallots(ctx context.Context, contentID, visitorKey string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM ballots WHERE content_id = $1 AND visitor_key = $2`,
		contentID, visitorKey).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count ballots: %w", err)
	}
	return n, nil
}
