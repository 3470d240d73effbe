package service

import (
	"context"
	"slices"

	"github.com/rubsen49-sketch/MovieMatch/internal/constants"
	"github.com/rubsen49-sketch/MovieMatch/internal/errors"
	"github.com/rubsen49-sketch/MovieMatch/internal/log"
	isync "github.com/rubsen49-sketch/MovieMatch/internal/sync"
	"github.com/rubsen49-sketch/MovieMatch/internal/utils"
	"github.com/rubsen49-sketch/MovieMatch/rooms"
	"github.com/rubsen49-sketch/MovieMatch/rooms/match"
	"github.com/rubsen49-sketch/MovieMatch/rooms/registry"
)

type roomSvcImpl struct {
	registry  *registry.Registry
	notifier  rooms.Notifier
	directory rooms.Directory
	// connID -> room codes joined by that connection
	memberships *isync.Map[string, map[string]struct{}]
	logger      *log.Logger
}

func NewRoomService(
	reg *registry.Registry,
	notifier rooms.Notifier,
	directory rooms.Directory,
	logger *log.Logger,
) rooms.RoomService {
	return &roomSvcImpl{
		registry:    reg,
		notifier:    notifier,
		directory:   directory,
		memberships: isync.NewMap[string, map[string]struct{}](),
		logger:      logger,
	}
}

func (rs *roomSvcImpl) CreateRoom(ctx context.Context, caller rooms.Caller, code, username string) (*rooms.JoinReply, error) {
	code = rooms.NormalizeCode(code)
	// recorded before the room exists, so a racing Disconnect can find it
	rs.addMembership(caller.ConnID, code)
	room, dropped := rs.registry.Create(code, rs.participant(caller, username))
	roomsCreated.Add(ctx, 1)
	rs.closeReplaced(ctx, code, caller.ConnID, dropped)

	var reply *rooms.JoinReply
	err := room.Do(func(s *registry.State) error {
		if !rs.hasMembership(caller.ConnID, code) {
			// disconnected while the room was being installed
			s.Members.Leave(caller.ConnID)
			rs.registry.RemoveIfEmpty(room)
			return errors.Newf(rooms.ErrNotInRoom, "%s disconnected before %s was created", caller.ConnID, code)
		}
		rs.broadcastPresence(ctx, s)
		reply = joinReply(s)
		return nil
	})
	if err != nil {
		rs.removeMembership(caller.ConnID, code)
		return nil, err
	}

	rs.logger.Info("room created",
		log.Room(code),
		log.Conn(caller.ConnID))
	return reply, nil
}

func (rs *roomSvcImpl) JoinRoom(ctx context.Context, caller rooms.Caller, code, username string) (*rooms.JoinReply, error) {
	code = rooms.NormalizeCode(code)
	room, ok := rs.registry.Get(code)
	if !ok {
		joinsNotFound.Add(ctx, 1)
		return notFoundReply(), nil
	}

	p := rs.participant(caller, username)
	// recorded before the room changes: a Disconnect arriving while the room
	// lock is held then waits for it and removes the participant again
	rs.addMembership(caller.ConnID, code)

	var reply *rooms.JoinReply
	err := room.Do(func(s *registry.State) error {
		if !rs.hasMembership(caller.ConnID, code) {
			return errors.Newf(rooms.ErrNotInRoom, "%s disconnected before joining %s", caller.ConnID, s.Code)
		}
		s.Members.Join(p)

		me := []string{caller.ConnID}
		rs.notifier.Notify(ctx, me, constants.EventSettingsUpdate, s.Settings.Clone())
		if s.Phase == rooms.PhaseVoting {
			rs.notifier.Notify(ctx, me, constants.EventGameStarted, rooms.GameStarted{
				Room:     s.Code,
				Settings: s.Settings.Clone(),
			})
		}
		rs.broadcastPresence(ctx, s)
		reply = joinReply(s)
		return nil
	})
	if err != nil {
		rs.removeMembership(caller.ConnID, code)
	}
	if errors.Is(err, rooms.ErrRoomNotFound) {
		// removed between lookup and lock
		joinsNotFound.Add(ctx, 1)
		return notFoundReply(), nil
	}
	if err != nil {
		return nil, err
	}

	joinsTotal.Add(ctx, 1)
	rs.logger.Debug("room joined",
		log.Room(code),
		log.Conn(caller.ConnID),
		log.Int("participants", len(reply.Participants)))
	return reply, nil
}

func (rs *roomSvcImpl) UpdateSettings(
	ctx context.Context,
	caller rooms.Caller,
	code string,
	patch rooms.SettingsPatch,
) (rooms.Settings, error) {
	room, err := rs.room(code)
	if err != nil {
		return rooms.Settings{}, err
	}

	var merged rooms.Settings
	err = room.Do(func(s *registry.State) error {
		if err := requireHost(s, caller); err != nil {
			return err
		}
		var err error
		if merged, err = s.ApplySettings(patch); err != nil {
			return err
		}
		others := slices.DeleteFunc(s.Members.ConnIDs(), func(id string) bool {
			return id == caller.ConnID
		})
		rs.notifier.Notify(ctx, others, constants.EventSettingsUpdate, merged)
		return nil
	})
	if err != nil {
		return rooms.Settings{}, err
	}
	return merged, nil
}

func (rs *roomSvcImpl) StartGame(ctx context.Context, caller rooms.Caller, code string) error {
	room, err := rs.room(code)
	if err != nil {
		return err
	}

	err = room.Do(func(s *registry.State) error {
		if err := requireHost(s, caller); err != nil {
			return err
		}
		s.Phase = rooms.PhaseVoting
		rs.notifier.Notify(ctx, s.Members.ConnIDs(), constants.EventGameStarted, rooms.GameStarted{
			Room:     s.Code,
			Settings: s.Settings.Clone(),
		})
		return nil
	})
	if err != nil {
		return err
	}
	gamesStarted.Add(ctx, 1)
	return nil
}

// Vote records a like. Matches are evaluated against the room size at this
// moment, and every vote that meets the threshold broadcasts match_found
// again, so late confirmations still reach everyone.
func (rs *roomSvcImpl) Vote(ctx context.Context, caller rooms.Caller, vote rooms.Vote) (*rooms.VoteResult, error) {
	vote.Room = rooms.NormalizeCode(vote.Room)
	room, err := rs.room(vote.Room)
	if err != nil {
		return nil, err
	}
	voter := utils.Coalesce(vote.UserID, caller.UserID, caller.ConnID)

	var (
		res      *rooms.VoteResult
		repeat   bool
		outsider bool
	)
	err = room.Do(func(s *registry.State) error {
		repeat = s.Votes.HasVoted(vote.MovieID, voter)
		outsider = !s.Members.Has(caller.ConnID)
		votes := s.Votes.Add(vote.MovieID, voter)
		participants := s.Members.Count()
		res = &rooms.VoteResult{
			Room:      s.Code,
			MovieID:   vote.MovieID,
			Votes:     votes,
			Threshold: match.Threshold(participants, s.Settings.VoteMode),
			Matched:   match.IsMatch(votes, participants, s.Settings.VoteMode),
		}
		if res.Matched {
			rs.notifier.Notify(ctx, s.Members.ConnIDs(), constants.EventMatchFound, vote)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	votesTotal.Add(ctx, 1)
	if repeat {
		votesRepeated.Add(ctx, 1)
	}
	if outsider {
		// counted anyway, membership is not checked for votes
		votesOutsider.Add(ctx, 1)
		rs.logger.Debug("vote from a connection outside the room",
			log.Room(res.Room),
			log.Conn(caller.ConnID))
	}
	if res.Matched {
		matchesTotal.Add(ctx, 1)
		rs.logger.Info("match found",
			log.Room(res.Room),
			log.Movie(res.MovieID),
			log.Int("votes", res.Votes),
			log.Int("threshold", res.Threshold))
	}
	return res, nil
}

func (rs *roomSvcImpl) LeaveRoom(ctx context.Context, caller rooms.Caller, code string) error {
	code = rooms.NormalizeCode(code)
	rs.removeMembership(caller.ConnID, code)
	return rs.leave(ctx, caller.ConnID, code)
}

func (rs *roomSvcImpl) Disconnect(ctx context.Context, caller rooms.Caller) {
	codes, ok := rs.memberships.LoadAndDelete(caller.ConnID)
	if !ok {
		return
	}
	for code := range codes {
		err := rs.leave(ctx, caller.ConnID, code)
		if err != nil && !errors.Is(err, rooms.ErrRoomNotFound) && !errors.Is(err, rooms.ErrNotInRoom) {
			rs.logger.Warn("leave on disconnect failed",
				log.Room(code),
				log.Conn(caller.ConnID),
				log.Error(err))
		}
	}
}

func (rs *roomSvcImpl) leave(ctx context.Context, connID, code string) error {
	room, err := rs.room(code)
	if err != nil {
		return err
	}

	var removed bool
	err = room.Do(func(s *registry.State) error {
		res := s.Members.Leave(connID)
		if !res.Removed {
			return errors.Newf(rooms.ErrNotInRoom, "%s is not in room %s", connID, s.Code)
		}
		if res.Empty {
			removed = rs.registry.RemoveIfEmpty(room)
			return nil
		}
		if res.NewHost != "" {
			change := rooms.HostChange{Room: s.Code, HostID: res.NewHost}
			rs.notifier.Notify(ctx, s.Members.ConnIDs(), constants.EventHostUpdate, change)
			rs.notifier.Notify(ctx, []string{res.NewHost}, constants.EventYouAreHost, change)
			hostMigrations.Add(ctx, 1)
			rs.logger.Info("host migrated",
				log.Room(s.Code),
				log.String("from", connID),
				log.String("to", res.NewHost))
		}
		rs.broadcastPresence(ctx, s)
		return nil
	})
	if err != nil {
		return err
	}

	if removed {
		roomsRemoved.Add(ctx, 1)
		rs.logger.Info("room removed", log.Room(code))
	}
	return nil
}

// closeReplaced tells the members of a room that CreateRoom replaced that it
// is gone. The creator is skipped since it now belongs to the new room.
func (rs *roomSvcImpl) closeReplaced(ctx context.Context, code, creator string, dropped []rooms.Participant) {
	conns := make([]string, 0, len(dropped))
	for _, p := range dropped {
		if p.ID == creator {
			continue
		}
		rs.removeMembership(p.ID, code)
		conns = append(conns, p.ID)
	}
	if len(conns) == 0 {
		return
	}
	rs.notifier.Notify(ctx, conns, constants.EventRoomClosed, rooms.RoomClosed{
		Room:   code,
		Reason: rooms.CloseReasonReplaced,
	})
	roomsReplaced.Add(ctx, 1)
}

func (rs *roomSvcImpl) Invite(ctx context.Context, caller rooms.Caller, invite rooms.Invite) (*rooms.InviteResult, error) {
	conns := rs.directory.ConnsOf(invite.FriendID)
	if len(conns) == 0 {
		invitesOffline.Add(ctx, 1)
		rs.notifier.Notify(ctx, []string{caller.ConnID}, constants.EventFriendOffline, rooms.FriendOffline{
			FriendID: invite.FriendID,
		})
		return &rooms.InviteResult{Delivered: false}, nil
	}

	rs.notifier.Notify(ctx, conns, constants.EventInvitationReceived, rooms.Invitation{
		RoomCode:    rooms.NormalizeCode(invite.RoomCode),
		InviterName: invite.InviterName,
	})
	invitesDelivered.Add(ctx, 1)
	return &rooms.InviteResult{Delivered: true, Connections: len(conns)}, nil
}

func (rs *roomSvcImpl) RoomSnapshot(_ context.Context, code string) (*rooms.Snapshot, error) {
	room, err := rs.room(code)
	if err != nil {
		return nil, err
	}
	snap, err := room.Snapshot()
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (rs *roomSvcImpl) Stats(_ context.Context) rooms.Stats {
	return rs.registry.Stats()
}

func (rs *roomSvcImpl) room(code string) (*registry.Room, error) {
	code = rooms.NormalizeCode(code)
	room, ok := rs.registry.Get(code)
	if !ok {
		return nil, errors.Newf(rooms.ErrRoomNotFound, "room %s", code)
	}
	return room, nil
}

func (rs *roomSvcImpl) participant(caller rooms.Caller, username string) rooms.Participant {
	return rooms.Participant{
		ID:       caller.ConnID,
		UserID:   caller.UserID,
		Username: utils.Coalesce(username, rooms.DefaultUsername),
	}
}

// broadcastPresence must run inside room.Do.
func (rs *roomSvcImpl) broadcastPresence(ctx context.Context, s *registry.State) {
	conns := s.Members.ConnIDs()
	rs.notifier.Notify(ctx, conns, constants.EventPlayerCountUpdate, rooms.PlayerCount{
		Room:  s.Code,
		Count: len(conns),
	})
	rs.notifier.Notify(ctx, conns, constants.EventPlayerListUpdate, rooms.PlayerList{
		Room:         s.Code,
		Participants: s.Members.List(),
	})
}

func (rs *roomSvcImpl) addMembership(connID, code string) {
	rs.memberships.WithLock(func(v isync.View[string, map[string]struct{}]) {
		codes, ok := v.Get(connID)
		if !ok {
			codes = make(map[string]struct{})
			v.Set(connID, codes)
		}
		codes[code] = struct{}{}
	})
}

func (rs *roomSvcImpl) hasMembership(connID, code string) bool {
	var ok bool
	rs.memberships.WithLock(func(v isync.View[string, map[string]struct{}]) {
		codes, found := v.Get(connID)
		if found {
			_, ok = codes[code]
		}
	})
	return ok
}

func (rs *roomSvcImpl) removeMembership(connID, code string) {
	rs.memberships.WithLock(func(v isync.View[string, map[string]struct{}]) {
		codes, ok := v.Get(connID)
		if !ok {
			return
		}
		delete(codes, code)
		if len(codes) == 0 {
			v.Delete(connID)
		}
	})
}

func requireHost(s *registry.State, caller rooms.Caller) error {
	if host, _ := s.Members.Host(); host != caller.ConnID {
		return errors.Newf(rooms.ErrNotHost, "%s is not the host of %s", caller.ConnID, s.Code)
	}
	return nil
}

func joinReply(s *registry.State) *rooms.JoinReply {
	host, _ := s.Members.Host()
	settings := s.Settings.Clone()
	return &rooms.JoinReply{
		Status:       constants.StatusOK,
		Room:         s.Code,
		Settings:     &settings,
		Participants: s.Members.List(),
		Phase:        s.Phase,
		HostID:       host,
	}
}

func notFoundReply() *rooms.JoinReply {
	return &rooms.JoinReply{
		Status:  constants.StatusError,
		Message: string(rooms.ErrRoomNotFound),
	}
}
