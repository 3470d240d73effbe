// Package registry owns the live rooms of the process.
package registry

import (
	"github.com/jonboulle/clockwork"

	"github.com/rubsen49-sketch/MovieMatch/internal/errors"
	"github.com/rubsen49-sketch/MovieMatch/internal/log"
	isync "github.com/rubsen49-sketch/MovieMatch/internal/sync"
	"github.com/rubsen49-sketch/MovieMatch/rooms"
	"github.com/rubsen49-sketch/MovieMatch/rooms/ledger"
	"github.com/rubsen49-sketch/MovieMatch/rooms/presence"
)

type Registry struct {
	rooms  *isync.Map[string, *Room]
	clock  clockwork.Clock
	logger *log.Logger
}

func New(clock clockwork.Clock, logger *log.Logger) *Registry {
	return &Registry{
		rooms:  isync.NewMap[string, *Room](),
		clock:  clock,
		logger: logger,
	}
}

// Create installs a fresh room under code with host as its only member.
// A room already stored under the same code is closed and replaced; its
// members are returned so the caller can tell them.
func (r *Registry) Create(code string, host rooms.Participant) (*Room, []rooms.Participant) {
	code = rooms.NormalizeCode(code)
	room := &Room{
		state: State{
			Code:      code,
			Settings:  rooms.DefaultSettings(),
			Phase:     rooms.PhaseLobby,
			Votes:     ledger.New(),
			Members:   presence.New(r.clock),
			CreatedAt: r.clock.Now(),
		},
	}
	room.state.Members.Join(host)
	room.state.Members.SetHost(host.ID)

	var dropped []rooms.Participant
	if prev, replaced := r.rooms.Swap(code, room); replaced {
		prev.mu.Lock()
		if !prev.closed {
			dropped = prev.state.Members.List()
		}
		prev.close()
		prev.mu.Unlock()
		if len(dropped) > 0 {
			r.logger.Warn("room code reused, previous room dropped",
				log.Room(code),
				log.Int("members", len(dropped)))
		}
	}
	return room, dropped
}

func (r *Registry) Get(code string) (*Room, bool) {
	return r.rooms.Load(rooms.NormalizeCode(code))
}

// UpdateSettings merges patch into the room's settings and returns the result.
func (r *Registry) UpdateSettings(code string, patch rooms.SettingsPatch) (rooms.Settings, error) {
	room, ok := r.Get(code)
	if !ok {
		return rooms.Settings{}, errors.Newf(rooms.ErrRoomNotFound, "room %s", rooms.NormalizeCode(code))
	}
	var merged rooms.Settings
	err := room.Do(func(s *State) error {
		var err error
		merged, err = s.ApplySettings(patch)
		return err
	})
	return merged, err
}

// Remove deletes the room regardless of its members.
func (r *Registry) Remove(code string) bool {
	room, ok := r.rooms.LoadAndDelete(rooms.NormalizeCode(code))
	if !ok {
		return false
	}
	room.mu.Lock()
	room.close()
	room.mu.Unlock()
	return true
}

// RemoveIfEmpty deletes room when nobody is left in it. It must be called
// from inside room.Do, so a join cannot land between the emptiness check and
// the removal. A room that was replaced under the same code is left alone.
func (r *Registry) RemoveIfEmpty(room *Room) bool {
	if room.closed || room.state.Members.Count() > 0 {
		return false
	}
	room.close()
	r.rooms.CompareAndDelete(room.state.Code, room)
	return true
}

func (r *Registry) Len() int {
	return r.rooms.Len()
}

func (r *Registry) Stats() rooms.Stats {
	var st rooms.Stats
	for _, room := range r.rooms.Values() {
		_ = room.Do(func(s *State) error {
			st.Rooms++
			st.Participants += s.Members.Count()
			st.LikedMovies += s.Votes.Movies()
			if s.Phase == rooms.PhaseVoting {
				st.Voting++
			}
			return nil
		})
	}
	return st
}
