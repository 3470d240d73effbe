package rooms

// Notification payloads pushed to clients.

type PlayerCount struct {
	Room  string `json:"room"`
	Count int    `json:"count"`
}

type PlayerList struct {
	Room         string        `json:"room"`
	Participants []Participant `json:"participants"`
}

// HostChange is sent as host_update to the room and you_are_host to the
// promoted connection.
type HostChange struct {
	Room   string `json:"room"`
	HostID string `json:"hostId"`
}

type GameStarted struct {
	Room     string   `json:"room"`
	Settings Settings `json:"settings"`
}

type Invitation struct {
	RoomCode    string `json:"roomCode"`
	InviterName string `json:"inviterName"`
}

type FriendOffline struct {
	FriendID string `json:"friendId"`
}

// RoomClosed tells members their room no longer exists. Votes they send for
// that code afterwards count in whatever room now holds it.
type RoomClosed struct {
	Room   string `json:"room"`
	Reason string `json:"reason"`
}

// CloseReasonReplaced: someone created a new room under the same code.
const CloseReasonReplaced = "replaced"
