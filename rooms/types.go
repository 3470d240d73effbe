package rooms

import (
	"context"
	"strings"
	"time"
)

type VoteMode string

const (
	VoteModeMajority  VoteMode = "majority"
	VoteModeUnanimity VoteMode = "unanimity"
)

type DiscoveryMode string

const (
	DiscoveryTrending DiscoveryMode = "trending"
	DiscoveryClassic  DiscoveryMode = "classic"
)

// Phase of a room. There is no end phase; clients stop paginating on their own.
type Phase string

const (
	PhaseLobby  Phase = "lobby"
	PhaseVoting Phase = "voting"
)

const DefaultUsername = "Guest"

// NormalizeCode makes room codes case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Participant is one live connection inside a room. IsHost is derived from
// the room's host connection whenever a list is built.
type Participant struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId,omitempty"`
	Username string    `json:"username"`
	IsHost   bool      `json:"isHost"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Vote is a like on a movie. The same value is broadcast as match_found,
// so the metadata fields travel untouched.
type Vote struct {
	Room        string `json:"room"`
	MovieID     int    `json:"movieId"`
	MovieTitle  string `json:"movieTitle,omitempty"`
	MoviePoster string `json:"moviePoster,omitempty"`
	Overview    string `json:"overview,omitempty"`
	UserID      string `json:"userId,omitempty"`
}

// Caller identifies the connection an action comes from.
type Caller struct {
	ConnID string
	// UserID is the identity registered on the connection, if any.
	UserID string
}

// Notifier delivers server-pushed notifications. Implementations must not
// block on network I/O; they are called while a room lock is held.
type Notifier interface {
	Notify(ctx context.Context, connIDs []string, method string, params any)
}

// Directory resolves a user identity to its live connections.
type Directory interface {
	ConnsOf(userID string) []string
}
