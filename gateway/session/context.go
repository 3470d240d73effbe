package session

import (
	"golang.org/x/time/rate"

	"github.com/rubsen49-sketch/MovieMatch/rooms"
)

// connContext is replaced, never mutated, so notifiers on other goroutines
// can read it while the read loop updates it.
type connContext struct {
	connID   string
	userID   string
	username string
	limiter  *rate.Limiter
}

func (c *connContext) caller() rooms.Caller {
	return rooms.Caller{ConnID: c.connID, UserID: c.userID}
}

func (c *connContext) withUser(userID string) *connContext {
	out := *c
	out.userID = userID
	return &out
}

func (c *connContext) withConnID(connID string) *connContext {
	out := *c
	out.connID = connID
	return &out
}
