package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidVote возвращается для значения голоса вне множества {"up", "down", null}
var ErrInvalidVote = errors.New(`vote must be "up", "down" or null`)

// Vote представляет мнение посетителя о единице контента.
// Пустое значение (VoteNone) означает отсутствие бюллетеня, а не ноль.
type Vote string

// Vote константы
const (
	VoteNone Vote = ""
	VoteUp   Vote = "up"
	VoteDown Vote = "down"
)

// ParseVote разбирает направление голоса. Пустая строка не является допустимым направлением.
func ParseVote(s string) (Vote, error) {
	switch Vote(s) {
	case VoteUp, VoteDown:
		return Vote(s), nil
	default:
		return VoteNone, fmt.Errorf("%w: got %q", ErrInvalidVote, s)
	}
}

// VoteFromValue converts a stored ballot value (+1/-1) back to a Vote.
func VoteFromValue(value int) (Vote, error) {
	switch value {
	case 1:
		return VoteUp, nil
	case -1:
		return VoteDown, nil
	default:
		return VoteNone, fmt.Errorf("%w: stored value %d", ErrInvalidVote, value)
	}
}

// Value returns the ballot value: +1 for up, -1 for down, 0 for none.
func (v Vote) Value() int {
	switch v {
	case VoteUp:
		return 1
	case VoteDown:
		return -1
	default:
		return 0
	}
}

// IsDirection reports whether v is "up" or "down".
func (v Vote) IsDirection() bool {
	return v == VoteUp || v == VoteDown
}

// MarshalJSON кодирует VoteNone как null
func (v Vote) MarshalJSON() ([]byte, error) {
	if v == VoteNone {
		return []byte("null"), nil
	}
	if !v.IsDirection() {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidVote, string(v))
	}
	return json.Marshal(string(v))
}

// UnmarshalJSON принимает "up", "down" и null
func (v *Vote) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = VoteNone
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidVote, string(data))
	}

	parsed, err := ParseVote(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Counts is the live aggregate of ballots for one content item.
type Counts struct {
	Up   int `json:"up"`
	Down int `json:"down"`
}

// Apply returns the counts after a visitor's vote moves from prev to next.
// Decrements are floored at zero: local counts may be stale relative to the ledger.
func (c Counts) Apply(prev, next Vote) Counts {
	if prev == next {
		return c
	}

	switch prev {
	case VoteUp:
		c.Up = floorZero(c.Up - 1)
	case VoteDown:
		c.Down = floorZero(c.Down - 1)
	}

	switch next {
	case VoteUp:
		c.Up++
	case VoteDown:
		c.Down++
	}

	return c
}

func floorZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// NextVote определяет следующее состояние голоса при нажатии на direction:
// повторный выбор того же направления снимает голос, иначе голос переключается.
func NextVote(current, direction Vote) Vote {
	if current == direction {
		return VoteNone
	}
	return direction
}

// Ballot представляет единственную запись голоса для пары (контент, посетитель)
type Ballot struct {
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	ContentID  string    `json:"content_id"`  // ContentID идентификатор единицы контента
	VisitorKey string    `json:"visitor_key"` // VisitorKey псевдоним посетителя (keyed digest, не сырой id)
	Value      int       `json:"value"`       // Value +1 (up) или -1 (down)
}

// Vote returns the ballot's direction.
func (b *Ballot) Vote() Vote {
	v, err := VoteFromValue(b.Value)
	if err != nil {
		return VoteNone
	}
	return v
}

// VoteState is the post-write state of a single item for one visitor.
type VoteState struct {
	UserVote Vote
	Counts   Counts
}

// BatchState is the result of a batch read.
// Counts has an entry for every requested id; UserVotes only for ids the visitor voted on.
type BatchState struct {
	Counts    map[string]Counts
	UserVotes map[string]Vote
}

// NewBatchState returns a BatchState with zero counts for every id.
func NewBatchState(ids []string) *BatchState {
	state := &BatchState{
		Counts:    make(map[string]Counts, len(ids)),
		UserVotes: make(map[string]Vote),
	}
	for _, id := range ids {
		state.Counts[id] = Counts{}
	}
	return state
}
