package registry

import (
	"sync"
	"time"

	"github.com/rubsen49-sketch/MovieMatch/internal/errors"
	"github.com/rubsen49-sketch/MovieMatch/rooms"
	"github.com/rubsen49-sketch/MovieMatch/rooms/ledger"
	"github.com/rubsen49-sketch/MovieMatch/rooms/presence"
)

// State is everything a room owns. Only reachable through Room.Do.
type State struct {
	Code      string
	Settings  rooms.Settings
	Phase     rooms.Phase
	Votes     *ledger.Ledger
	Members   *presence.Tracker
	CreatedAt time.Time
}

func (s *State) ApplySettings(p rooms.SettingsPatch) (rooms.Settings, error) {
	merged, err := s.Settings.Merge(p)
	if err != nil {
		return s.Settings.Clone(), err
	}
	s.Settings = merged
	return merged.Clone(), nil
}

type Room struct {
	mu     sync.Mutex
	closed bool
	state  State
}

func (r *Room) Code() string {
	return r.state.Code
}

// Do runs fn with exclusive access to the room. A room removed from the
// registry is closed, so late callers get ErrRoomNotFound.
func (r *Room) Do(fn func(s *State) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return errors.Newf(rooms.ErrRoomNotFound, "room %s is closed", r.state.Code)
	}
	return fn(&r.state)
}

func (r *Room) Snapshot() (rooms.Snapshot, error) {
	var snap rooms.Snapshot
	err := r.Do(func(s *State) error {
		snap = s.snapshot()
		return nil
	})
	return snap, err
}

func (s *State) snapshot() rooms.Snapshot {
	host, _ := s.Members.Host()
	return rooms.Snapshot{
		Code:         s.Code,
		Phase:        s.Phase,
		Settings:     s.Settings.Clone(),
		Participants: s.Members.List(),
		HostID:       host,
		Votes:        s.Votes.Counts(),
		CreatedAt:    s.CreatedAt,
	}
}

// close must be called with mu held.
func (r *Room) close() {
	r.closed = true
}
