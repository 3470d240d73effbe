package registry

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"

	"github.com/rubsen49-sketch/MovieMatch/internal/errors"
	"github.com/rubsen49-sketch/MovieMatch/internal/log"
	"github.com/rubsen49-sketch/MovieMatch/internal/utils"
	"github.com/rubsen49-sketch/MovieMatch/rooms"
)

type RegistrySuite struct {
	suite.Suite
	clock *clockwork.FakeClock
	reg   *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.clock = clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 19, 30, 0, 0, time.UTC))
	s.reg = New(s.clock, log.NewTest(s.T()))
}

func host(id string) rooms.Participant {
	return rooms.Participant{ID: id, Username: "host-" + id}
}

func (s *RegistrySuite) TestCreateDefaults() {
	room, _ := s.reg.Create(" abc1 ", host("c1"))
	s.Equal("ABC1", room.Code())

	snap, err := room.Snapshot()
	s.Require().NoError(err)
	s.Equal(rooms.PhaseLobby, snap.Phase)
	s.Equal(rooms.DefaultSettings(), snap.Settings)
	s.Equal("c1", snap.HostID)
	s.Require().Len(snap.Participants, 1)
	s.True(snap.Participants[0].IsHost)
	s.Empty(snap.Votes)
	s.Equal(s.clock.Now(), snap.CreatedAt)

	got, ok := s.reg.Get("abc1")
	s.True(ok)
	s.Same(room, got)
}

func (s *RegistrySuite) TestCreateOverwritesAndClosesPrevious() {
	old, _ := s.reg.Create("ROOM", host("c1"))
	_ = old.Do(func(st *State) error {
		st.Votes.Add(10, "u1")
		return nil
	})

	fresh, dropped := s.reg.Create("room", host("c2"))
	s.NotSame(old, fresh)
	s.Require().Len(dropped, 1)
	s.Equal("c1", dropped[0].ID)
	s.Equal(1, s.reg.Len())

	err := old.Do(func(*State) error { return nil })
	s.True(errors.Is(err, rooms.ErrRoomNotFound))

	snap, err := fresh.Snapshot()
	s.Require().NoError(err)
	s.Empty(snap.Votes)
	s.Equal("c2", snap.HostID)
}

func (s *RegistrySuite) TestUpdateSettings() {
	s.reg.Create("ROOM", host("c1"))

	mode := rooms.VoteModeUnanimity
	merged, err := s.reg.UpdateSettings("room", rooms.SettingsPatch{
		VoteMode: &mode,
		Genres:   &[]int{28, 35},
	})
	s.Require().NoError(err)
	s.Equal(rooms.VoteModeUnanimity, merged.VoteMode)
	s.Equal([]int{28, 35}, merged.Genres)
	s.Equal(rooms.DiscoveryTrending, merged.DiscoveryMode)
}

func (s *RegistrySuite) TestUpdateSettingsInvalidLeavesRoomUntouched() {
	room, _ := s.reg.Create("ROOM", host("c1"))

	bad := rooms.VoteMode("plurality")
	_, err := s.reg.UpdateSettings("ROOM", rooms.SettingsPatch{
		VoteMode:  &bad,
		MinRating: utils.Ptr(7.5),
	})
	s.True(errors.Is(err, rooms.ErrInvalidSettings))

	snap, _ := room.Snapshot()
	s.Equal(rooms.DefaultSettings(), snap.Settings)
}

func (s *RegistrySuite) TestUpdateSettingsMissingRoom() {
	_, err := s.reg.UpdateSettings("NOPE", rooms.SettingsPatch{})
	s.True(errors.Is(err, rooms.ErrRoomNotFound))
}

func (s *RegistrySuite) TestRemove() {
	room, _ := s.reg.Create("ROOM", host("c1"))
	s.True(s.reg.Remove("room"))
	s.False(s.reg.Remove("room"))

	_, ok := s.reg.Get("ROOM")
	s.False(ok)
	s.True(errors.Is(room.Do(func(*State) error { return nil }), rooms.ErrRoomNotFound))
}

func (s *RegistrySuite) TestRemoveIfEmpty() {
	room, _ := s.reg.Create("ROOM", host("c1"))
	_ = room.Do(func(*State) error {
		s.False(s.reg.RemoveIfEmpty(room))
		return nil
	})

	_ = room.Do(func(st *State) error {
		st.Members.Leave("c1")
		s.True(s.reg.RemoveIfEmpty(room))
		s.False(s.reg.RemoveIfEmpty(room))
		return nil
	})
	s.Zero(s.reg.Len())
}

func (s *RegistrySuite) TestJoinAfterLastLeaveSeesNotFound() {
	room, _ := s.reg.Create("ROOM", host("c1"))
	got, ok := s.reg.Get("ROOM")
	s.Require().True(ok)

	_ = room.Do(func(st *State) error {
		st.Members.Leave("c1")
		s.reg.RemoveIfEmpty(room)
		return nil
	})

	// a joiner holding the looked-up room must not revive it without a host
	err := got.Do(func(st *State) error {
		st.Members.Join(rooms.Participant{ID: "c2"})
		return nil
	})
	s.True(errors.Is(err, rooms.ErrRoomNotFound))
	_, ok = s.reg.Get("ROOM")
	s.False(ok)
}

func (s *RegistrySuite) TestRemoveIfEmptyKeepsReplacement() {
	old, _ := s.reg.Create("ROOM", host("c1"))
	_ = old.Do(func(st *State) error {
		st.Members.Leave("c1")
		return nil
	})
	fresh, dropped := s.reg.Create("ROOM", host("c2"))
	s.Empty(dropped)

	s.False(s.reg.RemoveIfEmpty(old))
	got, ok := s.reg.Get("ROOM")
	s.True(ok)
	s.Same(fresh, got)
}

func (s *RegistrySuite) TestStats() {
	s.reg.Create("A01", host("c1"))
	b, _ := s.reg.Create("B01", host("c2"))
	_ = b.Do(func(st *State) error {
		st.Members.Join(rooms.Participant{ID: "c3"})
		st.Phase = rooms.PhaseVoting
		st.Votes.Add(603, "c2")
		st.Votes.Add(603, "c3")
		st.Votes.Add(13, "c3")
		return nil
	})

	s.Equal(rooms.Stats{Rooms: 2, Participants: 3, Voting: 1, LikedMovies: 2}, s.reg.Stats())
}

func (s *RegistrySuite) TestConcurrentVotesAreSerialized() {
	room, _ := s.reg.Create("ROOM", host("c1"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = room.Do(func(st *State) error {
				st.Votes.Add(99, fmt.Sprintf("voter-%d", i%20))
				return nil
			})
		}(i)
	}
	wg.Wait()

	_ = room.Do(func(st *State) error {
		s.Equal(20, st.Votes.Count(99))
		return nil
	})
}
