package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/civicvote/internal/models"
	"github.com/iudanet/civicvote/internal/server/storage"
)

var _ storage.BallotStorage = (*Storage)(nil)

// ReadBatch returns counts for every content id and the visitor's own ballots.
// Both queries run in one read transaction so the batch is a single snapshot.
func (s *Storage) ReadBatch(ctx context.Context, contentIDs []string, visitorKey string) (*models.BatchState, error) {
	state := models.NewBatchState(contentIDs)
	if len(contentIDs) == 0 {
		return state, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(contentIDs)), ",")
	args := make([]any, 0, len(contentIDs)+1)
	for _, id := range contentIDs {
		args = append(args, id)
	}

	countQuery := `
		SELECT content_id,
		       COALESCE(SUM(CASE WHEN value = 1 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN value = -1 THEN 1 ELSE 0 END), 0)
		FROM ballots
		WHERE content_id IN (` + placeholders + `)
		GROUP BY content_id
	`

	rows, err := tx.QueryContext(ctx, countQuery, args...)
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
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("counts iteration error: %w", err)
	}
	rows.Close()

	if visitorKey != "" {
		voteQuery := `
			SELECT content_id, value
			FROM ballots
			WHERE visitor_key = ? AND content_id IN (` + placeholders + `)
		`

		rows, err := tx.QueryContext(ctx, voteQuery, append([]any{visitorKey}, args...)...)
		if err != nil {
			return nil, fmt.Errorf("failed to query visitor ballots: %w", err)
		}

		for rows.Next() {
			var id string
			var value int
			if err := rows.Scan(&id, &value); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan visitor ballot: %w", err)
			}
			vote, err := models.VoteFromValue(value)
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("%w: %w", storage.ErrInvalidBallot, err)
			}
			state.UserVotes[id] = vote
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("visitor ballots iteration error: %w", err)
		}
		rows.Close()
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit read transaction: %w", err)
	}

	return state, nil
}

// SetBallot creates, updates or deletes the visitor's ballot and returns fresh counts.
// The upsert relies on the (content_id, visitor_key) primary key, never on read-then-write.
func (s *Storage) SetBallot(ctx context.Context, contentID, visitorKey string, vote models.Vote) (*models.VoteState, error) {
	if vote != models.VoteNone && !vote.IsDirection() {
		return nil, storage.ErrInvalidBallot
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if vote == models.VoteNone {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM ballots WHERE content_id = ? AND visitor_key = ?`,
			contentID, visitorKey,
		); err != nil {
			return nil, fmt.Errorf("failed to delete ballot: %w", err)
		}
	} else {
		now := time.Now().Unix()
		query := `
			INSERT INTO ballots (content_id, visitor_key, value, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (content_id, visitor_key) DO UPDATE
			SET value = excluded.value, updated_at = excluded.updated_at
		`
		if _, err := tx.ExecContext(ctx, query, contentID, visitorKey, vote.Value(), now, now); err != nil {
			return nil, fmt.Errorf("failed to upsert ballot: %w", err)
		}
	}

	result := &models.VoteState{}

	// Пересчитываем агрегат одним grouped запросом внутри той же транзакции
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(CASE WHEN value = 1 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN value = -1 THEN 1 ELSE 0 END), 0)
		FROM ballots
		WHERE content_id = ?
	`, contentID).Scan(&result.Counts.Up, &result.Counts.Down)
	if err != nil {
		return nil, fmt.Errorf("failed to recount ballots: %w", err)
	}

	var value int
	err = tx.QueryRowContext(ctx,
		`SELECT value FROM ballots WHERE content_id = ? AND visitor_key = ?`,
		contentID, visitorKey,
	).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		result.UserVote = models.VoteNone
	case err != nil:
		return nil, fmt.Errorf("failed to read resulting ballot: %w", err)
	default:
		if result.UserVote, err = models.VoteFromValue(value); err != nil {
			return nil, fmt.Errorf("%w: %w", storage.ErrInvalidBallot, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ballot: %w", err)
	}

	return result, nil
}

// GetBallot retrieves the visitor's ballot for a content item
// Returns ErrBallotNotFound if no ballot exists
func (s *Storage) GetBallot(ctx context.Context, contentID, visitorKey string) (*models.Ballot, error) {
	query := `
		SELECT content_id, visitor_key, value, created_at, updated_at
		FROM ballots
		WHERE content_id = ? AND visitor_key = ?
	`

	ballot := &models.Ballot{}
	var createdAt, updatedAt int64

	err := s.db.QueryRowContext(ctx, query, contentID, visitorKey).Scan(
		&ballot.ContentID,
		&ballot.VisitorKey,
		&ballot.Value,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrBallotNotFound
		}
		return nil, fmt.Errorf("failed to get ballot: %w", err)
	}

	ballot.CreatedAt = time.Unix(createdAt, 0)
	ballot.UpdatedAt = time.Unix(updatedAt, 0)

	return ballot, nil
}

// CountBallots returns how many rows exist for the pair
func (s *Storage) CountBallots(ctx context.Context, contentID, visitorKey string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ballots WHERE content_id = ? AND visitor_key = ?`,
		contentID, visitorKey,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count ballots: %w", err)
	}
	return n, nil
}
