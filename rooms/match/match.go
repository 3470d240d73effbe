// Package match decides whether a movie's tally is a match for a room.
package match

import "github.com/rubsen49-sketch/MovieMatch/rooms"

// Threshold is the number of distinct votes a movie needs in a room of
// participants. A result of 0 means no tally can match (empty room).
// Unknown modes are treated as majority.
func Threshold(participants int, mode rooms.VoteMode) int {
	if participants <= 0 {
		return 0
	}
	if mode == rooms.VoteModeUnanimity {
		return participants
	}
	return participants/2 + 1
}

// IsMatch uses the live participant count, so the same tally can flip as
// people join or leave between two votes.
func IsMatch(votes, participants int, mode rooms.VoteMode) bool {
	t := Threshold(participants, mode)
	if t == 0 {
		return false
	}
	return votes >= t
}
