package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rubsen49-sketch/MovieMatch/rooms"
)

func TestThreshold(t *testing.T) {
	tests := []struct {
		n    int
		mode rooms.VoteMode
		want int
	}{
		{1, rooms.VoteModeMajority, 1},
		{2, rooms.VoteModeMajority, 2},
		{3, rooms.VoteModeMajority, 2},
		{4, rooms.VoteModeMajority, 3},
		{5, rooms.VoteModeMajority, 3},
		{1, rooms.VoteModeUnanimity, 1},
		{4, rooms.VoteModeUnanimity, 4},
		{0, rooms.VoteModeMajority, 0},
		{-1, rooms.VoteModeUnanimity, 0},
		{3, rooms.VoteMode("weird"), 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Threshold(tt.n, tt.mode), "n=%d mode=%s", tt.n, tt.mode)
	}
}

func TestIsMatchAgainstFormula(t *testing.T) {
	for n := 1; n <= 12; n++ {
		for v := 0; v <= 14; v++ {
			assert.Equal(t, v >= n/2+1, IsMatch(v, n, rooms.VoteModeMajority), "majority v=%d n=%d", v, n)
			assert.Equal(t, v >= n, IsMatch(v, n, rooms.VoteModeUnanimity), "unanimity v=%d n=%d", v, n)
		}
	}
}

func TestEmptyRoomNeverMatches(t *testing.T) {
	for _, v := range []int{0, 1, 100} {
		assert.False(t, IsMatch(v, 0, rooms.VoteModeMajority))
		assert.False(t, IsMatch(v, 0, rooms.VoteModeUnanimity))
	}
}

func TestSoloRoomMatchesEveryLike(t *testing.T) {
	assert.True(t, IsMatch(1, 1, rooms.VoteModeMajority))
	assert.True(t, IsMatch(1, 1, rooms.VoteModeUnanimity))
}
