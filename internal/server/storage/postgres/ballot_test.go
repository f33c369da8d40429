package postgres

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/civicvote/internal/models"
	"github.com/iudanet/civicvote/internal/server/storage"
)

// testDatabaseURL указывает на одноразовую базу; без нее тесты пропускаются
const testDatabaseURL = "CIVICVOTE_TEST_POSTGRES_URL"

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	url := os.Getenv(testDatabaseURL)
	if url == "" {
		t.Skipf("%s is not set", testDatabaseURL)
	}

	ctx := context.Background()
	s, err := New(ctx, url, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	_, err = s.pool.Exec(ctx, `TRUNCATE ballots`)
	require.NoError(t, err)

	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBallotStorage_SetBallotLifecycle(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	state, err := s.SetBallot(ctx, "rol-v1", "visitor-a", models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, models.VoteUp, state.UserVote)
	assert.Equal(t, models.Counts{Up: 1}, state.Counts)

	state, err = s.SetBallot(ctx, "rol-v1", "visitor-a", models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, models.Counts{Up: 1}, state.Counts)

	state, err = s.SetBallot(ctx, "rol-v1", "visitor-a", models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, models.Counts{Down: 1}, state.Counts)

	ballot, err := s.GetBallot(ctx, "rol-v1", "visitor-a")
	require.NoError(t, err)
	assert.Equal(t, models.VoteDown, ballot.Vote())

	state, err = s.SetBallot(ctx, "rol-v1", "visitor-a", models.VoteNone)
	require.NoError(t, err)
	assert.Equal(t, models.VoteNone, state.UserVote)
	assert.Equal(t, models.Counts{}, state.Counts)

	_, err = s.GetBallot(ctx, "rol-v1", "visitor-a")
	assert.ErrorIs(t, err, storage.ErrBallotNotFound)
}

func TestBallotStorage_ReadBatch(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	_, err := s.SetBallot(ctx, "a", "me", models.VoteUp)
	require.NoError(t, err)
	_, err = s.SetBallot(ctx, "b", "other", models.VoteDown)
	require.NoError(t, err)

	state, err := s.ReadBatch(ctx, []string{"a", "b", "c"}, "me")
	require.NoError(t, err)
	assert.Equal(t, map[string]models.Counts{
		"a": {Up: 1},
		"b": {Down: 1},
		"c": {},
	}, state.Counts)
	assert.Equal(t, map[string]models.Vote{"a": models.VoteUp}, state.UserVotes)
}

func TestBallotStorage_ConcurrentDistinctVisitors(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	const n = 30
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.SetBallot(ctx, "hot", fmt.Sprintf("visitor-%d", i), models.VoteUp)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	state, err := s.ReadBatch(ctx, []string{"hot"}, "")
	require.NoError(t, err)
	assert.Equal(t, models.Counts{Up: n}, state.Counts["hot"])
}

func TestBallotStorage_ConcurrentSameVisitor(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.SetBallot(ctx, "hot", "same", models.VoteUp)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	n, err := s.CountBallots(ctx, "hot", "same")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
