// Package library keeps each user's saved matches.
package library

import (
	"context"
	"time"

	"github.com/rubsen49-sketch/MovieMatch/internal/errors"
)

//go:generate mockgen -source=library.go -destination=mocks/store.go -package=mocks

const ErrStore errors.Code = "library store error"

// MaxEntries caps a single library; the oldest entries fall off.
const MaxEntries = 1000

// Entry is a matched movie a user kept.
type Entry struct {
	MovieID     int       `json:"id" validate:"gt=0"`
	Title       string    `json:"title" validate:"required,max=300"`
	PosterPath  string    `json:"posterPath,omitempty" validate:"max=300"`
	ReleaseDate string    `json:"releaseDate,omitempty" validate:"max=20"`
	VoteAverage float64   `json:"voteAverage" validate:"min=0,max=10"`
	RoomCode    string    `json:"roomCode,omitempty" validate:"max=16"`
	AddedAt     time.Time `json:"addedAt"`
}

type Store interface {
	// Upsert merges entries into the user's library and returns the result.
	Upsert(ctx context.Context, userID string, entries []Entry) ([]Entry, error)
	// Get returns an empty list for an unknown user.
	Get(ctx context.Context, userID string) ([]Entry, error)
}

// Merge puts incoming entries first, newest first as given, then the
// existing entries they do not replace. Movie ids are unique in the result.
func Merge(existing, incoming []Entry) []Entry {
	out := make([]Entry, 0, len(existing)+len(incoming))
	seen := make(map[int]struct{}, len(existing)+len(incoming))
	for _, list := range [][]Entry{incoming, existing} {
		for _, e := range list {
			if _, ok := seen[e.MovieID]; ok {
				continue
			}
			seen[e.MovieID] = struct{}{}
			out = append(out, e)
		}
	}
	if len(out) > MaxEntries {
		out = out[:MaxEntries]
	}
	return out
}
