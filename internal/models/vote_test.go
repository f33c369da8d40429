package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVote(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Vote
		wantErr bool
	}{
		{name: "up", input: "up", want: VoteUp},
		{name: "down", input: "down", want: VoteDown},
		{name: "empty", input: "", wantErr: true},
		{name: "uppercase", input: "UP", wantErr: true},
		{name: "garbage", input: "sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVote(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidVote)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVoteValueRoundTrip(t *testing.T) {
	assert.Equal(t, 1, VoteUp.Value())
	assert.Equal(t, -1, VoteDown.Value())
	assert.Equal(t, 0, VoteNone.Value())

	for _, v := range []Vote{VoteUp, VoteDown} {
		back, err := VoteFromValue(v.Value())
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}

	_, err := VoteFromValue(0)
	assert.ErrorIs(t, err, ErrInvalidVote)
}

func TestVoteJSON(t *testing.T) {
	type payload struct {
		UserVote Vote `json:"userVote"`
	}

	data, err := json.Marshal(payload{UserVote: VoteNone})
	require.NoError(t, err)
	assert.JSONEq(t, `{"userVote":null}`, string(data))

	data, err = json.Marshal(payload{UserVote: VoteDown})
	require.NoError(t, err)
	assert.JSONEq(t, `{"userVote":"down"}`, string(data))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"userVote":"up"}`), &p))
	assert.Equal(t, VoteUp, p.UserVote)

	p.UserVote = VoteUp
	require.NoError(t, json.Unmarshal([]byte(`{"userVote":null}`), &p))
	assert.Equal(t, VoteNone, p.UserVote)

	err = json.Unmarshal([]byte(`{"userVote":"maybe"}`), &p)
	assert.ErrorIs(t, err, ErrInvalidVote)

	err = json.Unmarshal([]byte(`{"userVote":1}`), &p)
	assert.ErrorIs(t, err, ErrInvalidVote)
}

func TestCountsApply(t *testing.T) {
	tests := []struct {
		name   string
		start  Counts
		prev   Vote
		next   Vote
		expect Counts
	}{
		{name: "add up", start: Counts{Up: 5}, prev: VoteNone, next: VoteUp, expect: Counts{Up: 6}},
		{name: "add down", start: Counts{}, prev: VoteNone, next: VoteDown, expect: Counts{Down: 1}},
		{name: "retract up", start: Counts{Up: 6}, prev: VoteUp, next: VoteNone, expect: Counts{Up: 5}},
		{name: "switch up to down", start: Counts{Up: 3, Down: 2}, prev: VoteUp, next: VoteDown, expect: Counts{Up: 2, Down: 3}},
		{name: "switch down to up", start: Counts{Up: 3, Down: 2}, prev: VoteDown, next: VoteUp, expect: Counts{Up: 4, Down: 1}},
		{name: "retract floors at zero", start: Counts{}, prev: VoteDown, next: VoteNone, expect: Counts{}},
		{name: "switch floors at zero", start: Counts{Up: 0, Down: 4}, prev: VoteUp, next: VoteDown, expect: Counts{Up: 0, Down: 5}},
		{name: "no change", start: Counts{Up: 1}, prev: VoteUp, next: VoteUp, expect: Counts{Up: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.start.Apply(tt.prev, tt.next))
		})
	}
}

func TestNextVote(t *testing.T) {
	assert.Equal(t, VoteUp, NextVote(VoteNone, VoteUp))
	assert.Equal(t, VoteNone, NextVote(VoteUp, VoteUp))
	assert.Equal(t, VoteDown, NextVote(VoteUp, VoteDown))
	assert.Equal(t, VoteNone, NextVote(VoteDown, VoteDown))
}

func TestNewBatchState(t *testing.T) {
	state := NewBatchState([]string{"a", "b", "c"})

	assert.Len(t, state.Counts, 3)
	for _, id := range []string{"a", "b", "c"} {
		assert.Equal(t, Counts{}, state.Counts[id])
	}
	assert.Empty(t, state.UserVotes)
}

func TestBallotVote(t *testing.T) {
	assert.Equal(t, VoteUp, (&Ballot{Value: 1}).Vote())
	assert.Equal(t, VoteDown, (&Ballot{Value: -1}).Vote())
	assert.Equal(t, VoteNone, (&Ballot{Value: 7}).Vote())
}
