package session

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/rubsen49-sketch/MovieMatch/internal/errors"
	"github.com/rubsen49-sketch/MovieMatch/internal/jsonrpc"
	wsrpc "github.com/rubsen49-sketch/MovieMatch/internal/jsonrpc/websocket"
	"github.com/rubsen49-sketch/MovieMatch/internal/jwt"
	"github.com/rubsen49-sketch/MovieMatch/internal/log"
	"github.com/rubsen49-sketch/MovieMatch/rooms"
)

// RateLimit bounds inbound messages per connection. A non-positive rate
// disables limiting.
type RateLimit struct {
	PerSecond float64 `mapstructure:"per_second"`
	Burst     int     `mapstructure:"burst"`
}

func (r RateLimit) newLimiter() *rate.Limiter {
	if r.PerSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(r.PerSecond), max(r.Burst, 1))
}

// NewWSHook accepts anonymous connections. A token, when presented and
// jwtAuth is set, must verify; its user is registered up front.
func NewWSHook(
	svc rooms.RoomService,
	connMgr *ConnManager,
	jwtAuth jwt.Auth,
	limits RateLimit,
	logger *log.Logger,
) wsrpc.ConnectionHooks[connContext] {
	return &wsHookImpl{
		svc:     svc,
		connMgr: connMgr,
		jwtAuth: jwtAuth,
		limits:  limits,
		logger:  logger,
	}
}

type wsHookImpl struct {
	svc     rooms.RoomService
	connMgr *ConnManager
	jwtAuth jwt.Auth
	limits  RateLimit
	logger  *log.Logger
}

func bearerToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func (h *wsHookImpl) OnVerify(r *http.Request) (*connContext, bool, error) {
	cctx := &connContext{limiter: h.limits.newLimiter()}

	token := bearerToken(r)
	if token == "" || h.jwtAuth == nil {
		return cctx, true, nil
	}

	tokenChecks.Add(r.Context(), 1)
	payload, err := h.jwtAuth.Verify(token)
	if err != nil {
		if errors.Is(err, jwt.ErrInvalidToken) || errors.Is(err, jwt.ErrNoToken) {
			tokensRejected.Add(r.Context(), 1)
			return nil, false, nil
		}
		return nil, false, err
	}

	cctx.userID = payload.UserID
	cctx.username = payload.Username
	return cctx, true, nil
}

func (h *wsHookImpl) OnConnect(mctx jsonrpc.MethodContext[connContext]) {
	cctx := mctx.Get().withConnID(uuid.New().String())
	mctx.Set(cctx)

	h.connMgr.Add(cctx.connID, mctx.Peer())
	if cctx.userID != "" {
		h.connMgr.BindUser(cctx.connID, cctx.userID)
	}

	sessionsOpened.Add(mctx.Ctx(), 1)
	sessionsOpen.Add(mctx.Ctx(), 1)
	h.logger.Info("client connected",
		log.Conn(cctx.connID),
		log.User(cctx.userID))
}

func (h *wsHookImpl) OnDisconnect(mctx jsonrpc.MethodContext[connContext], closeCode int) {
	cctx := mctx.Get()
	// the connection context is already cancelled; peers still need the
	// leave broadcasts
	ctx := context.WithoutCancel(mctx.Ctx())

	h.svc.Disconnect(ctx, cctx.caller())
	h.connMgr.Remove(cctx.connID)

	sessionsClosed.Add(ctx, 1)
	sessionsOpen.Add(ctx, -1)
	h.logger.Info("client disconnected",
		log.Conn(cctx.connID),
		log.Int("closeCode", closeCode))
}
