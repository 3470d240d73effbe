package rooms

import "github.com/rubsen49-sketch/MovieMatch/internal/errors"

const (
	ErrRoomNotFound    errors.Code = "room not found"
	ErrNotHost         errors.Code = "not the room host"
	ErrNotInRoom       errors.Code = "not in room"
	ErrInvalidSettings errors.Code = "invalid settings"
)
