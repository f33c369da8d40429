package votecache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/iudanet/civicvote/internal/client/storage"
	"github.com/iudanet/civicvote/internal/models"
)

//go:generate moq -out ledgerapi_mock.go . LedgerAPI

// LedgerAPI is the server side of the cache.
type LedgerAPI interface {
	// ReadVotes возвращает счетчики и собственные голоса для ids одним запросом
	ReadVotes(ctx context.Context, ids []string) (*models.BatchState, error)

	// SetVote записывает голос; models.VoteNone снимает голос
	SetVote(ctx context.Context, contentID string, vote models.Vote) (*models.VoteState, error)
}

const (
	// StoreName ключ, под которым сохраняются голоса посетителя
	StoreName = "d101-vote-store"
	// DefaultWriteTimeout ограничивает одну фоновую запись голоса
	DefaultWriteTimeout = 10 * time.Second
	// DefaultReadTimeout ограничивает общий запрос чтения, разделяемый через singleflight
	DefaultReadTimeout = 10 * time.Second
)

// Option configures a Store.
type Option func(*Store)

// WithStorage включает сохранение userVotes между запусками
func WithStorage(st storage.VoteStorage) Option {
	return func(s *Store) {
		s.persist = st
	}
}

// WithWriteTimeout задает таймаут фоновой записи
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

// WithReadTimeout задает таймаут общего запроса чтения
func WithReadTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.readTimeout = d
		}
	}
}

// WithLogger задает логгер
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is the client-side vote cache with optimistic toggles.
type Store struct {
	api     LedgerAPI
	persist storage.VoteStorage
	logger  *slog.Logger

	counts    map[string]models.Counts
	userVotes map[string]models.Vote
	pending   map[string]bool
	settled   map[string]uint64 // число завершенных записей по id
	subs      map[int]func(Event)

	group        singleflight.Group
	writes       sync.WaitGroup
	writeTimeout time.Duration
	readTimeout  time.Duration
	nextSub      int
	mu           sync.Mutex
	subsMu       sync.Mutex
	persistMu    sync.Mutex
}

// New creates an empty Store backed by api.
func New(api LedgerAPI, opts ...Option) *Store {
	s := &Store{
		api:          api,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		counts:       make(map[string]models.Counts),
		userVotes:    make(map[string]models.Vote),
		pending:      make(map[string]bool),
		settled:      make(map[string]uint64),
		subs:         make(map[int]func(Event)),
		writeTimeout: DefaultWriteTimeout,
		readTimeout:  DefaultReadTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate loads counts and own votes for ids in a single request.
// Items with a write in flight, or a write settled while the read was
// outstanding, keep their current state.
func (s *Store) Hydrate(ctx context.Context, ids []string) error {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	before := make(map[string]uint64, len(ids))
	for _, id := range ids {
		before[id] = s.settled[id]
	}
	s.mu.Unlock()

	state, err := s.read(ctx, ids)
	if err != nil {
		s.logger.Warn("Failed to hydrate votes", "ids", len(ids), "error", err)
		err = fmt.Errorf("%w: %w", ErrRetrieval, err)
		s.publish(Event{Kind: EventHydrateFailed, IDs: ids, Err: err})
		return err
	}

	s.mu.Lock()
	for _, id := range ids {
		// Ответ мог быть снят до записи, подтвержденной сервером позже
		if s.pending[id] || s.settled[id] != before[id] {
			continue
		}
		if counts, ok := state.Counts[id]; ok {
			s.counts[id] = counts
		}
		if vote := state.UserVotes[id]; vote.IsDirection() {
			s.userVotes[id] = vote
		} else {
			delete(s.userVotes, id)
		}
	}
	s.mu.Unlock()

	s.save(ctx)
	s.publish(Event{Kind: EventHydrated, IDs: ids})
	return nil
}

// read выполняет ReadVotes. Одинаковые одновременные запросы схлопываются в один;
// общий запрос не зависит от отмены контекста отдельного вызывающего.
func (s *Store) read(ctx context.Context, ids []string) (*models.BatchState, error) {
	key := strings.Join(slices.Sorted(slices.Values(ids)), ",")
	ch := s.group.DoChan(key, func() (interface{}, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.readTimeout)
		defer cancel()
		return s.api.ReadVotes(shared, ids)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		state, ok := res.Val.(*models.BatchState)
		if !ok || state == nil {
			return nil, errors.New("empty response")
		}
		return state, nil
	}
}

// itemSnapshot запоминает состояние элемента до оптимистичного изменения
type itemSnapshot struct {
	vote      models.Vote
	counts    models.Counts
	hasCounts bool
}

// ToggleVote applies direction optimistically and writes it in the background.
// Selecting the current direction retracts the vote.
// Returns false when the toggle was dropped: a write for id is still pending or direction is invalid.
func (s *Store) ToggleVote(ctx context.Context, id string, direction models.Vote) bool {
	id = strings.TrimSpace(id)
	if id == "" || !direction.IsDirection() {
		return false
	}

	s.mu.Lock()
	if s.pending[id] {
		s.mu.Unlock()
		s.logger.Debug("Toggle dropped, write in flight", "content_id", id)
		return false
	}

	counts, hasCounts := s.counts[id]
	prev := s.userVotes[id]
	snap := itemSnapshot{vote: prev, counts: counts, hasCounts: hasCounts}

	next := models.NextVote(prev, direction)
	s.counts[id] = counts.Apply(prev, next)
	s.setVoteLocked(id, next)
	s.pending[id] = true
	item := s.itemLocked(id)
	s.writes.Add(1)
	s.mu.Unlock()

	s.publish(Event{Kind: EventOptimistic, ID: id, Item: item})

	go s.write(ctx, id, next, snap)
	return true
}

func (s *Store) write(ctx context.Context, id string, vote models.Vote, snap itemSnapshot) {
	defer s.writes.Done()

	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	state, err := s.callSetVote(ctx, id, vote)

	s.mu.Lock()
	if err != nil {
		// Откат к снимку, сделанному до оптимистичного изменения
		if snap.hasCounts {
			s.counts[id] = snap.counts
		} else {
			delete(s.counts, id)
		}
		s.setVoteLocked(id, snap.vote)
	} else {
		s.counts[id] = state.Counts
		s.setVoteLocked(id, state.UserVote)
	}
	delete(s.pending, id)
	s.settled[id]++
	item := s.itemLocked(id)
	s.mu.Unlock()

	s.save(ctx)

	if err != nil {
		s.logger.Warn("Vote rolled back", "content_id", id, "error", err)
		s.publish(Event{Kind: EventRolledBack, ID: id, Item: item, Err: fmt.Errorf("%w: %w", ErrWrite, err)})
		return
	}
	s.publish(Event{Kind: EventConfirmed, ID: id, Item: item})
}

// callSetVote превращает панику транспорта в обычную ошибку
func (s *Store) callSetVote(ctx context.Context, id string, vote models.Vote) (state *models.VoteState, err error) {
	defer func() {
		if r := recover(); r != nil {
			state, err = nil, fmt.Errorf("set vote panicked: %v", r)
		}
	}()

	state, err = s.api.SetVote(ctx, id, vote)
	if err == nil && state == nil {
		err = errors.New("empty response")
	}
	return state, err
}

// Wait blocks until all background writes have settled.
func (s *Store) Wait() {
	s.writes.Wait()
}

// Subscribe registers fn for every future Event and returns a function that removes it.
// fn is called outside the cache lock and may call Item or Snapshot.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *Store) publish(ev Event) {
	s.subsMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Item returns the cached state of id.
func (s *Store) Item(id string) ItemState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemLocked(id)
}

// Snapshot returns a copy of the whole cache.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := State{
		Counts:    make(map[string]models.Counts, len(s.counts)),
		UserVotes: s.userVotesLocked(),
		Pending:   make(map[string]bool, len(s.pending)),
	}
	for id, c := range s.counts {
		state.Counts[id] = c
	}
	for id := range s.pending {
		state.Pending[id] = true
	}
	return state
}

// Restore loads persisted userVotes. Counts are not persisted and stay as they are.
func (s *Store) Restore(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}

	snapshot, err := s.persist.LoadVotes(ctx, StoreName)
	if errors.Is(err, storage.ErrVotesNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to restore votes: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, vote := range snapshot.UserVotes {
		if s.pending[id] || !vote.IsDirection() {
			continue
		}
		s.userVotes[id] = vote
	}
	return nil
}

// save сохраняет текущие userVotes; persistMu гарантирует, что последним записан самый свежий снимок
func (s *Store) save(ctx context.Context) {
	if s.persist == nil {
		return
	}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	userVotes := s.userVotesLocked()
	s.mu.Unlock()

	// Запись в файл не должна зависеть от отмены сетевого контекста
	ctx = context.WithoutCancel(ctx)
	snapshot := &storage.VoteSnapshot{UserVotes: userVotes, SavedAt: time.Now().Unix()}
	if err := s.persist.SaveVotes(ctx, StoreName, snapshot); err != nil {
		s.logger.Warn("Failed to persist votes", "error", err)
	}
}

func (s *Store) setVoteLocked(id string, vote models.Vote) {
	if vote.IsDirection() {
		s.userVotes[id] = vote
		return
	}
	delete(s.userVotes, id)
}

func (s *Store) itemLocked(id string) ItemState {
	return ItemState{
		UserVote: s.userVotes[id],
		Counts:   s.counts[id],
		Pending:  s.pending[id],
	}
}

func (s *Store) userVotesLocked() map[string]models.Vote {
	out := make(map[string]models.Vote, len(s.userVotes))
	for id, v := range s.userVotes {
		out[id] = v
	}
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
