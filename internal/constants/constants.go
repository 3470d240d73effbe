package constants

// Inbound JSON-RPC methods.
const (
	MethodRegisterUser   = "register_user"
	MethodCreateRoom     = "create_room"
	MethodJoinRoom       = "join_room"
	MethodLeaveRoom      = "leave_room"
	MethodUpdateSettings = "update_settings"
	MethodStartGame      = "start_game"
	MethodSwipeRight     = "swipe_right"
	MethodVote           = "vote"
	MethodInviteFriend   = "invite_friend"
)

// Outbound notifications.
const (
	EventPlayerCountUpdate  = "player_count_update"
	EventPlayerListUpdate   = "player_list_update"
	EventSettingsUpdate     = "settings_update"
	EventHostUpdate         = "host_update"
	EventYouAreHost         = "you_are_host"
	EventGameStarted        = "game_started"
	EventMatchFound         = "match_found"
	EventInvitationReceived = "invitation_received"
	EventFriendOffline      = "friend_offline"
	EventRoomClosed         = "room_closed"
)

// Join acknowledgement statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// DefaultRegion is where streaming availability is looked up when the
// caller names none.
const DefaultRegion = "FR"
