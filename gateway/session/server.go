package session

import (
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/rubsen49-sketch/MovieMatch/internal/constants"
	"github.com/rubsen49-sketch/MovieMatch/internal/errors"
	"github.com/rubsen49-sketch/MovieMatch/internal/jsonrpc"
	wsrpc "github.com/rubsen49-sketch/MovieMatch/internal/jsonrpc/websocket"
	"github.com/rubsen49-sketch/MovieMatch/internal/jwt"
	"github.com/rubsen49-sketch/MovieMatch/internal/log"
	"github.com/rubsen49-sketch/MovieMatch/internal/utils"
	"github.com/rubsen49-sketch/MovieMatch/internal/validation"
	"github.com/rubsen49-sketch/MovieMatch/rooms"
)

// Application error codes, outside the range reserved by JSON-RPC.
const (
	CodeNotHost     int64 = -32001
	CodeNotInRoom   int64 = -32002
	CodeRateLimited int64 = -32029
)

// Server serves the room methods over websocket JSON-RPC.
type Server struct {
	*wsrpc.Server[connContext]
	svc     rooms.RoomService
	connMgr *ConnManager
	logger  *log.Logger
}

func NewServer(
	svc rooms.RoomService,
	connMgr *ConnManager,
	jwtAuth jwt.Auth,
	allowedOrigins []string,
	limits RateLimit,
	logger *log.Logger,
) *Server {
	hooks := NewWSHook(svc, connMgr, jwtAuth, limits, logger.Module("Hook"))
	s := &Server{
		Server:  wsrpc.NewServer[connContext](hooks, allowedOrigins, logger),
		svc:     svc,
		connMgr: connMgr,
		logger:  logger,
	}
	s.Use(s.observe, s.limit)
	s.register()
	return s
}

func (s *Server) register() {
	// handlers run on the connection read loop, one message at a time
	s.Def(constants.MethodRegisterUser, s.handleRegisterUser)
	s.Def(constants.MethodCreateRoom, s.handleCreateRoom)
	s.Def(constants.MethodJoinRoom, s.handleJoinRoom)
	s.Def(constants.MethodLeaveRoom, s.handleLeaveRoom)
	s.Def(constants.MethodUpdateSettings, s.handleUpdateSettings)
	s.Def(constants.MethodStartGame, s.handleStartGame)
	s.Def(constants.MethodSwipeRight, s.handleVote)
	s.Def(constants.MethodVote, s.handleVote)
	s.Def(constants.MethodInviteFriend, s.handleInviteFriend)
}

func (s *Server) observe(method string, next jsonrpc.AsyncMethodHandler[connContext]) jsonrpc.AsyncMethodHandler[connContext] {
	attrs := metric.WithAttributes(attribute.String("method", method))
	return func(mctx jsonrpc.MethodContext[connContext], params *json.RawMessage, reply jsonrpc.Reply) {
		start := time.Now()
		next(mctx, params, func(result any, err error) {
			ctx := mctx.Ctx()
			methodCalls.Add(ctx, 1, attrs)
			if err != nil {
				methodErrors.Add(ctx, 1, attrs)
			}
			methodLatency.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)
			reply(result, err)
		})
	}
}

func (s *Server) limit(method string, next jsonrpc.AsyncMethodHandler[connContext]) jsonrpc.AsyncMethodHandler[connContext] {
	return func(mctx jsonrpc.MethodContext[connContext], params *json.RawMessage, reply jsonrpc.Reply) {
		if l := mctx.Get().limiter; l != nil && !l.Allow() {
			methodsThrottled.Add(mctx.Ctx(), 1)
			s.logger.Debug("rate limited",
				log.Conn(mctx.Get().connID),
				log.String("method", method))
			reply(nil, jsonrpc.ErrCustom(CodeRateLimited, "rate limited"))
			return
		}
		next(mctx, params, reply)
	}
}

// rpcError maps domain errors to wire errors. Unknown errors stay as they
// are and end up as internal errors.
func rpcError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.As[*jsonrpc.Error](err); ok {
		return err
	}
	switch {
	case errors.Is(err, rooms.ErrRoomNotFound):
		return jsonrpc.ErrInvalidRequest(string(rooms.ErrRoomNotFound))
	case errors.Is(err, rooms.ErrNotHost):
		return jsonrpc.ErrCustom(CodeNotHost, "only the host can do this")
	case errors.Is(err, rooms.ErrNotInRoom):
		return jsonrpc.ErrCustom(CodeNotInRoom, string(rooms.ErrNotInRoom))
	case errors.Is(err, rooms.ErrInvalidSettings):
		return jsonrpc.ErrInvalidParams(string(rooms.ErrInvalidSettings)).
			WithData(validation.FormatValidationError(err))
	}
	return err
}

type okReply struct {
	Status string `json:"status"`
}

var okResult = okReply{Status: constants.StatusOK}

func (s *Server) handleRegisterUser(mctx jsonrpc.MethodContext[connContext], params *json.RawMessage) (any, error) {
	var data struct {
		UserID string `json:"userId" validate:"required,userid"`
	}
	if err := jsonrpc.ShouldBindParams(params, &data); err != nil {
		return nil, err
	}

	cctx := mctx.Get().withUser(data.UserID)
	mctx.Set(cctx)
	s.connMgr.BindUser(cctx.connID, cctx.userID)

	return map[string]string{
		"status": constants.StatusOK,
		"userId": cctx.userID,
	}, nil
}

type roomParams struct {
	Room     string `json:"room" validate:"required,roomcode"`
	Username string `json:"username" validate:"max=64"`
}

func (s *Server) handleCreateRoom(mctx jsonrpc.MethodContext[connContext], params *json.RawMessage) (any, error) {
	var data roomParams
	if err := jsonrpc.ShouldBindParams(params, &data); err != nil {
		return nil, err
	}

	cctx := mctx.Get()
	reply, err := s.svc.CreateRoom(mctx.Ctx(), cctx.caller(), data.Room, utils.Coalesce(data.Username, cctx.username))
	return reply, rpcError(err)
}

func (s *Server) handleJoinRoom(mctx jsonrpc.MethodContext[connContext], params *json.RawMessage) (any, error) {
	var data roomParams
	if err := jsonrpc.ShouldBindParams(params, &data); err != nil {
		return nil, err
	}

	cctx := mctx.Get()
	reply, err := s.svc.JoinRoom(mctx.Ctx(), cctx.caller(), data.Room, utils.Coalesce(data.Username, cctx.username))
	return reply, rpcError(err)
}

func (s *Server) handleLeaveRoom(mctx jsonrpc.MethodContext[connContext], params *json.RawMessage) (any, error) {
	var data roomParams
	if err := jsonrpc.ShouldBindParams(params, &data); err != nil {
		return nil, err
	}

	if err := s.svc.LeaveRoom(mctx.Ctx(), mctx.Get().caller(), data.Room); err != nil {
		return nil, rpcError(err)
	}
	return okResult, nil
}

func (s *Server) handleUpdateSettings(mctx jsonrpc.MethodContext[connContext], params *json.RawMessage) (any, error) {
	var data struct {
		Room     string              `json:"room" validate:"required,roomcode"`
		Settings rooms.SettingsPatch `json:"settings"`
	}
	if err := jsonrpc.ShouldBindParams(params, &data); err != nil {
		return nil, err
	}

	merged, err := s.svc.UpdateSettings(mctx.Ctx(), mctx.Get().caller(), data.Room, data.Settings)
	if err != nil {
		return nil, rpcError(err)
	}
	return merged, nil
}

func (s *Server) handleStartGame(mctx jsonrpc.MethodContext[connContext], params *json.RawMessage) (any, error) {
	var data roomParams
	if err := jsonrpc.ShouldBindParams(params, &data); err != nil {
		return nil, err
	}

	if err := s.svc.StartGame(mctx.Ctx(), mctx.Get().caller(), data.Room); err != nil {
		return nil, rpcError(err)
	}
	return okResult, nil
}

func (s *Server) handleVote(mctx jsonrpc.MethodContext[connContext], params *json.RawMessage) (any, error) {
	var data struct {
		Room        string `json:"room" validate:"required,roomcode"`
		MovieID     int    `json:"movieId" validate:"movieid"`
		MovieTitle  string `json:"movieTitle" validate:"max=512"`
		MoviePoster string `json:"moviePoster" validate:"max=1024"`
		Overview    string `json:"overview" validate:"max=8192"`
		UserID      string `json:"userId" validate:"omitempty,userid"`
	}
	if err := jsonrpc.ShouldBindParams(params, &data); err != nil {
		return nil, err
	}

	res, err := s.svc.Vote(mctx.Ctx(), mctx.Get().caller(), rooms.Vote{
		Room:        data.Room,
		MovieID:     data.MovieID,
		MovieTitle:  data.MovieTitle,
		MoviePoster: data.MoviePoster,
		Overview:    data.Overview,
		UserID:      data.UserID,
	})
	if err != nil {
		return nil, rpcError(err)
	}
	return res, nil
}

func (s *Server) handleInviteFriend(mctx jsonrpc.MethodContext[connContext], params *json.RawMessage) (any, error) {
	var data struct {
		FriendID    string `json:"friendId" validate:"required,userid"`
		RoomCode    string `json:"roomCode" validate:"required,roomcode"`
		InviterName string `json:"inviterName" validate:"max=64"`
	}
	if err := jsonrpc.ShouldBindParams(params, &data); err != nil {
		return nil, err
	}

	cctx := mctx.Get()
	res, err := s.svc.Invite(mctx.Ctx(), cctx.caller(), rooms.Invite{
		FriendID:    data.FriendID,
		RoomCode:    data.RoomCode,
		InviterName: utils.Coalesce(data.InviterName, cctx.username, rooms.DefaultUsername),
	})
	if err != nil {
		return nil, rpcError(err)
	}
	return res, nil
}
