package ledger

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddIsIdempotentPerVoter(t *testing.T) {
	l := New()

	assert.Equal(t, 1, l.Add(42, "user-a"))
	assert.Equal(t, 1, l.Add(42, "user-a"))
	assert.Equal(t, 2, l.Add(42, "user-b"))
	assert.Equal(t, 2, l.Count(42))
	assert.True(t, l.HasVoted(42, "user-a"))
	assert.False(t, l.HasVoted(42, "user-c"))
}

func TestMoviesAreIndependent(t *testing.T) {
	l := New()
	l.Add(1, "a")
	l.Add(2, "a")
	l.Add(2, "b")

	assert.Equal(t, 1, l.Count(1))
	assert.Equal(t, 2, l.Count(2))
	assert.Equal(t, 0, l.Count(3))
	assert.Equal(t, 2, l.Movies())
	assert.Equal(t, map[int]int{1: 1, 2: 2}, l.Counts())
}

func TestCountNeverDecreases(t *testing.T) {
	l := New()
	rng := rand.New(rand.NewSource(7))

	last := map[int]int{}
	for i := 0; i < 500; i++ {
		movie := rng.Intn(5) + 1
		voter := fmt.Sprintf("voter-%d", rng.Intn(8))
		n := l.Add(movie, voter)

		assert.GreaterOrEqual(t, n, last[movie])
		assert.LessOrEqual(t, n, 8)
		last[movie] = n
	}
}

func TestCountsIsASnapshot(t *testing.T) {
	l := New()
	l.Add(7, "a")
	snap := l.Counts()
	l.Add(7, "b")

	assert.Equal(t, 1, snap[7])
	assert.Equal(t, 2, l.Count(7))
}
