package catalog

import (
	"github.com/rubsen49-sketch/MovieMatch/internal/constants"
	"github.com/rubsen49-sketch/MovieMatch/rooms"
)

const (
	SortPopularity = "popularity.desc"
	SortRating     = "vote_average.desc"

	// a rating filter alone surfaces obscure titles with a handful of votes
	ratedMinVotes = 300
	maxPage       = 500
)

// Query is a discover request. Zero values mean unrestricted.
type Query struct {
	Page      int
	Genres    []int
	MinRating float64
	MinVotes  int
	Providers []int
	Region    string
	YearFrom  int
	YearTo    int
	SortBy    string
}

// QueryFromSettings builds the discover query a room's settings describe.
func QueryFromSettings(s rooms.Settings, page int) Query {
	q := Query{
		Page:      min(max(page, 1), maxPage),
		Genres:    s.Genres,
		MinRating: s.MinRating,
		Providers: s.Providers,
		Region:    constants.DefaultRegion,
		SortBy:    SortPopularity,
	}
	if s.MinRating > 0 {
		q.MinVotes = ratedMinVotes
	}
	if s.DiscoveryMode == rooms.DiscoveryClassic {
		q.SortBy = SortRating
	}
	if s.YearRange != nil {
		q.YearFrom = s.YearRange.Min
		q.YearTo = s.YearRange.Max
	}
	return q
}
