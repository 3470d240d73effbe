// Package catalog describes the movie catalog the clients swipe through.
package catalog

import (
	"context"

	"github.com/rubsen49-sketch/MovieMatch/internal/errors"
)

//go:generate mockgen -source=catalog.go -destination=mocks/provider.go -package=mocks

const (
	ErrUpstream    errors.Code = "catalog upstream error"
	ErrUnavailable errors.Code = "catalog unavailable"
)

type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"posterPath,omitempty"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
	VoteAverage float64 `json:"voteAverage"`
	VoteCount   int     `json:"voteCount"`
	Popularity  float64 `json:"popularity"`
	GenreIDs    []int   `json:"genreIds"`
}

type Page struct {
	Page         int     `json:"page"`
	TotalPages   int     `json:"totalPages"`
	TotalResults int     `json:"totalResults"`
	Results      []Movie `json:"results"`
}

type StreamingProvider struct {
	ID       int    `json:"providerId"`
	Name     string `json:"providerName"`
	LogoPath string `json:"logoPath,omitempty"`
	Priority int    `json:"displayPriority"`
}

// Provider is a read-only movie source.
type Provider interface {
	Discover(ctx context.Context, q Query) (*Page, error)
	// WatchProviders lists subscription services streaming movieID in region.
	WatchProviders(ctx context.Context, movieID int, region string) ([]StreamingProvider, error)
}
