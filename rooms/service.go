package rooms

import (
	"context"
	"time"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

// RoomService is the transport-agnostic room logic behind the websocket
// methods and the HTTP stats endpoints.
type RoomService interface {
	CreateRoom(ctx context.Context, caller Caller, code, username string) (*JoinReply, error)
	JoinRoom(ctx context.Context, caller Caller, code, username string) (*JoinReply, error)
	LeaveRoom(ctx context.Context, caller Caller, code string) error
	UpdateSettings(ctx context.Context, caller Caller, code string, patch SettingsPatch) (Settings, error)
	StartGame(ctx context.Context, caller Caller, code string) error
	Vote(ctx context.Context, caller Caller, vote Vote) (*VoteResult, error)
	Invite(ctx context.Context, caller Caller, invite Invite) (*InviteResult, error)
	// Disconnect leaves every room the connection is in. It must be the last
	// call for that connection; calls still running for it are allowed.
	Disconnect(ctx context.Context, caller Caller)
	RoomSnapshot(ctx context.Context, code string) (*Snapshot, error)
	Stats(ctx context.Context) Stats
}

// JoinReply acknowledges create_room and join_room. A missing room is a
// Status "error" reply, not a protocol error.
type JoinReply struct {
	Status       string        `json:"status"`
	Message      string        `json:"message,omitempty"`
	Room         string        `json:"room,omitempty"`
	Settings     *Settings     `json:"settings,omitempty"`
	Participants []Participant `json:"participants,omitempty"`
	Phase        Phase         `json:"phase,omitempty"`
	HostID       string        `json:"hostId,omitempty"`
}

type VoteResult struct {
	Room      string `json:"room"`
	MovieID   int    `json:"movieId"`
	Votes     int    `json:"votes"`
	Threshold int    `json:"threshold"`
	Matched   bool   `json:"matched"`
}

type Invite struct {
	FriendID    string `json:"friendId"`
	RoomCode    string `json:"roomCode"`
	InviterName string `json:"inviterName"`
}

type InviteResult struct {
	Delivered   bool `json:"delivered"`
	Connections int  `json:"connections"`
}

// Snapshot is a read-only copy of a room.
type Snapshot struct {
	Code         string        `json:"code"`
	Phase        Phase         `json:"phase"`
	Settings     Settings      `json:"settings"`
	Participants []Participant `json:"participants"`
	HostID       string        `json:"hostId,omitempty"`
	Votes        map[int]int   `json:"votes"`
	CreatedAt    time.Time     `json:"createdAt"`
}

type Stats struct {
	Rooms        int `json:"rooms"`
	Participants int `json:"participants"`
	Voting       int `json:"voting"`
	// movies liked at least once, summed over rooms
	LikedMovies int `json:"likedMovies"`
}
