package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/civicvote/internal/crypto"
	"github.com/iudanet/civicvote/internal/models"
	"github.com/iudanet/civicvote/internal/server/metrics"
	"github.com/iudanet/civicvote/internal/server/storage"
	"github.com/iudanet/civicvote/internal/server/storage/sqlite"
)

var testSecret = []byte("test-visitor-secret")

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func newTestService(t *testing.T, st storage.BallotStorage) (*Service, *metrics.Metrics) {
	t.Helper()
	keyer, err := crypto.NewKeyer(testSecret)
	require.NoError(t, err)
	m := metrics.New()
	return New(st, keyer, m, setupTestLogger(), 0), m
}

func newSQLiteService(t *testing.T) *Service {
	t.Helper()
	st, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	svc, _ := newTestService(t, st)
	return svc
}

func TestService_ReadCounts_Validation(t *testing.T) {
	mock := &storage.BallotStorageMock{}
	svc, _ := newTestService(t, mock)
	ctx := context.Background()

	t.Run("empty set does not touch storage", func(t *testing.T) {
		state, err := svc.ReadCounts(ctx, []string{"", " "}, "visitor")
		require.NoError(t, err)
		assert.Empty(t, state.Counts)
		assert.Empty(t, state.UserVotes)
		assert.Empty(t, mock.ReadBatchCalls())
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := svc.ReadCounts(ctx, []string{"ok", "bad id"}, "visitor")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("too many ids", func(t *testing.T) {
		ids := make([]string, 201)
		for i := range ids {
			ids[i] = fmt.Sprintf("item-%d", i)
		}
		_, err := svc.ReadCounts(ctx, ids, "visitor")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_ReadCounts_PassesDigestNotRawID(t *testing.T) {
	mock := &storage.BallotStorageMock{
		ReadBatchFunc: func(ctx context.Context, contentIDs []string, visitorKey string) (*models.BatchState, error) {
			return models.NewBatchState(contentIDs), nil
		},
	}
	svc, _ := newTestService(t, mock)

	_, err := svc.ReadCounts(context.Background(), []string{"b", "a", "b"}, "visitor-1")
	require.NoError(t, err)

	calls := mock.ReadBatchCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"b", "a"}, calls[0].ContentIDs)

	want, err := crypto.VisitorKey(testSecret, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, want, calls[0].VisitorKey)
	assert.NotContains(t, calls[0].VisitorKey, "visitor-1")
}

func TestService_ReadCounts_Anonymous(t *testing.T) {
	mock := &storage.BallotStorageMock{
		ReadBatchFunc: func(ctx context.Context, contentIDs []string, visitorKey string) (*models.BatchState, error) {
			return models.NewBatchState(contentIDs), nil
		},
	}
	svc, _ := newTestService(t, mock)

	_, err := svc.ReadCounts(context.Background(), []string{"a"}, "")
	require.NoError(t, err)
	assert.Equal(t, "", mock.ReadBatchCalls()[0].VisitorKey)
}

func TestService_ReadCounts_StorageFailure(t *testing.T) {
	mock := &storage.BallotStorageMock{
		ReadBatchFunc: func(ctx context.Context, contentIDs []string, visitorKey string) (*models.BatchState, error) {
			return nil, errors.New("disk on fire")
		},
	}
	svc, m := newTestService(t, mock)

	state, err := svc.ReadCounts(context.Background(), []string{"a", "b"}, "visitor")
	assert.ErrorIs(t, err, ErrRetrieval)
	assert.Nil(t, state)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.LedgerFailures.WithLabelValues("read")))
}

func TestService_SetVote_Validation(t *testing.T) {
	mock := &storage.BallotStorageMock{}
	svc, _ := newTestService(t, mock)
	ctx := context.Background()

	tests := []struct {
		name      string
		contentID string
		visitorID string
		vote      models.Vote
	}{
		{name: "empty content id", contentID: "", visitorID: "v", vote: models.VoteUp},
		{name: "bad content id", contentID: "a,b", visitorID: "v", vote: models.VoteUp},
		{name: "missing visitor", contentID: "rol-v1", visitorID: "", vote: models.VoteUp},
		{name: "bad vote", contentID: "rol-v1", visitorID: "v", vote: models.Vote("sideways")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetVote(ctx, tt.contentID, tt.visitorID, tt.vote)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, mock.SetBallotCalls())
}

func TestService_SetVote_StorageFailure(t *testing.T) {
	mock := &storage.BallotStorageMock{
		SetBallotFunc: func(ctx context.Context, contentID string, visitorKey string, vote models.Vote) (*models.VoteState, error) {
			return nil, errors.New("constraint violation")
		},
	}
	svc, m := newTestService(t, mock)

	_, err := svc.SetVote(context.Background(), "rol-v1", "visitor", models.VoteUp)
	assert.ErrorIs(t, err, ErrWrite)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.LedgerFailures.WithLabelValues("write")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.VotesTotal.WithLabelValues("up")))
}

func TestService_SetVote_RecordsMetric(t *testing.T) {
	mock := &storage.BallotStorageMock{
		SetBallotFunc: func(ctx context.Context, contentID string, visitorKey string, vote models.Vote) (*models.VoteState, error) {
			return &models.VoteState{UserVote: vote}, nil
		},
	}
	svc, m := newTestService(t, mock)

	_, err := svc.SetVote(context.Background(), "rol-v1", "visitor", models.VoteNone)
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.VotesTotal.WithLabelValues("none")))
}

func TestService_SingleBallotInvariant(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	for _, v := range []models.Vote{models.VoteUp, models.VoteUp, models.VoteDown, models.VoteUp} {
		_, err := svc.SetVote(ctx, "ed-1", "visitor", v)
		require.NoError(t, err)
	}

	state, err := svc.ReadCounts(ctx, []string{"ed-1"}, "visitor")
	require.NoError(t, err)
	assert.Equal(t, models.Counts{Up: 1}, state.Counts["ed-1"])
	assert.Equal(t, models.VoteUp, state.UserVotes["ed-1"])
}

func TestService_EndToEndExample(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	state, err := svc.ReadCounts(ctx, []string{"rol-v1"}, "fresh-visitor")
	require.NoError(t, err)
	assert.Equal(t, models.Counts{}, state.Counts["rol-v1"])
	assert.NotContains(t, state.UserVotes, "rol-v1")

	result, err := svc.SetVote(ctx, "rol-v1", "fresh-visitor", models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, models.VoteDown, result.UserVote)
	assert.Equal(t, models.Counts{Up: 0, Down: 1}, result.Counts)

	state, err = svc.ReadCounts(ctx, []string{"rol-v1"}, "fresh-visitor")
	require.NoError(t, err)
	assert.Equal(t, models.Counts{Down: 1}, state.Counts["rol-v1"])
	assert.Equal(t, models.VoteDown, state.UserVotes["rol-v1"])

	// Другой посетитель видит счетчики, но не чужой голос
	state, err = svc.ReadCounts(ctx, []string{"rol-v1"}, "someone-else")
	require.NoError(t, err)
	assert.Equal(t, models.Counts{Down: 1}, state.Counts["rol-v1"])
	assert.Empty(t, state.UserVotes)
}

func TestService_RetractIsNoOpWithoutBallot(t *testing.T) {
	svc := newSQLiteService(t)

	result, err := svc.SetVote(context.Background(), "rol-v1", "visitor", models.VoteNone)
	require.NoError(t, err)
	assert.Equal(t, models.VoteNone, result.UserVote)
	assert.Equal(t, models.Counts{}, result.Counts)
}

func TestService_ConcurrentDistinctVisitors(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SetVote(ctx, "hot-item", uuid.New().String(), models.VoteUp)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	state, err := svc.ReadCounts(ctx, []string{"hot-item"}, "")
	require.NoError(t, err)
	assert.Equal(t, models.Counts{Up: n}, state.Counts["hot-item"])
}

func TestService_BatchCompleteness(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	_, err := svc.SetVote(ctx, "b", "visitor", models.VoteUp)
	require.NoError(t, err)

	ids := strings.Split("a,b,c,d", ",")
	state, err := svc.ReadCounts(ctx, ids, "visitor")
	require.NoError(t, err)

	require.Len(t, state.Counts, len(ids))
	for _, id := range ids {
		assert.Contains(t, state.Counts, id)
	}
	assert.Equal(t, map[string]models.Vote{"b": models.VoteUp}, state.UserVotes)
}
