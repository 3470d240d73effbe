package transport

import "github.com/rubsen49-sketch/MovieMatch/library"

type RoomURI struct {
	Code string `uri:"code" binding:"required,roomcode"`
}

type MovieURI struct {
	MovieID int `uri:"movieId" binding:"required,movieid"`
}

type UserURI struct {
	UserID string `uri:"userId" binding:"required,userid"`
}

// DiscoverQuery either names a room whose settings drive the query or
// spells the filters out. Lists are comma separated.
type DiscoverQuery struct {
	Room      string  `form:"room" binding:"omitempty,roomcode"`
	Page      int     `form:"page" binding:"omitempty,min=1,max=500"`
	Genres    []int   `form:"genres" collection_format:"csv" binding:"omitempty,max=30,dive,gt=0"`
	Providers []int   `form:"providers" collection_format:"csv" binding:"omitempty,max=50,dive,gt=0"`
	MinRating float64 `form:"minRating" binding:"omitempty,min=0,max=10"`
	YearFrom  int     `form:"yearFrom" binding:"omitempty,min=1870,max=2100"`
	YearTo    int     `form:"yearTo" binding:"omitempty,min=1870,max=2100"`
	Mode      string  `form:"mode" binding:"omitempty,discoverymode"`
	Region    string  `form:"region" binding:"omitempty,region"`
}

type ProvidersQuery struct {
	Region string `form:"region" binding:"omitempty,region"`
}

// LibraryBody entries are checked with the validate tags on library.Entry.
type LibraryBody struct {
	Entries []library.Entry `json:"entries" validate:"required,max=200,dive"`
}
