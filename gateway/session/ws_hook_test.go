package session

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/rubsen49-sketch/MovieMatch/internal/jsonrpc"
	wsrpc "github.com/rubsen49-sketch/MovieMatch/internal/jsonrpc/websocket"
	"github.com/rubsen49-sketch/MovieMatch/internal/jwt"
	"github.com/rubsen49-sketch/MovieMatch/internal/log"
	"github.com/rubsen49-sketch/MovieMatch/rooms"
	"github.com/rubsen49-sketch/MovieMatch/rooms/mocks"
)

type WSHookSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	svc     *mocks.MockRoomService
	connMgr *ConnManager
	auth    jwt.Auth
	hook    wsrpc.ConnectionHooks[connContext]
}

func TestWSHookSuite(t *testing.T) {
	suite.Run(t, new(WSHookSuite))
}

func (s *WSHookSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.svc = mocks.NewMockRoomService(s.ctrl)
	logger := log.NewTest(s.T())
	s.connMgr = NewConnManager(logger)
	s.auth = jwt.NewAuth("hook-secret", time.Minute)
	s.hook = NewWSHook(s.svc, s.connMgr, s.auth, RateLimit{PerSecond: 5, Burst: 10}, logger)
}

func (s *WSHookSuite) TestOnVerifyAnonymous() {
	cctx, passed, err := s.hook.OnVerify(httptest.NewRequest("GET", "/ws", nil))
	s.Require().NoError(err)
	s.True(passed)
	s.Empty(cctx.userID)
	s.Require().NotNil(cctx.limiter)
	s.Equal(10, cctx.limiter.Burst())
}

func (s *WSHookSuite) TestOnVerifyQueryToken() {
	token, err := s.auth.Sign("u-1", "Uma")
	s.Require().NoError(err)

	cctx, passed, err := s.hook.OnVerify(httptest.NewRequest("GET", "/ws?token="+token, nil))
	s.Require().NoError(err)
	s.True(passed)
	s.Equal("u-1", cctx.userID)
	s.Equal("Uma", cctx.username)
}

func (s *WSHookSuite) TestOnVerifyBearerHeader() {
	token, err := s.auth.Sign("u-2", "")
	s.Require().NoError(err)

	req := httptest.NewRequest("GET", "/ws", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	cctx, passed, err := s.hook.OnVerify(req)
	s.Require().NoError(err)
	s.True(passed)
	s.Equal("u-2", cctx.userID)
}

func (s *WSHookSuite) TestOnVerifyInvalidToken() {
	other := jwt.NewAuth("another-secret", time.Minute)
	token, err := other.Sign("u-3", "")
	s.Require().NoError(err)

	_, passed, err := s.hook.OnVerify(httptest.NewRequest("GET", "/ws?token="+token, nil))
	s.NoError(err)
	s.False(passed)
}

func (s *WSHookSuite) TestTokenIgnoredWithoutAuth() {
	hook := NewWSHook(s.svc, s.connMgr, nil, RateLimit{}, log.NewNop())

	cctx, passed, err := hook.OnVerify(httptest.NewRequest("GET", "/ws?token=whatever", nil))
	s.Require().NoError(err)
	s.True(passed)
	s.Empty(cctx.userID)
	s.Nil(cctx.limiter)
}

func (s *WSHookSuite) TestConnectAndDisconnect() {
	conn := &fakeConn{}
	mctx := jsonrpc.NewContext[connContext](conn, &connContext{userID: "u-9"})

	s.hook.OnConnect(mctx)
	connID := mctx.Get().connID
	s.NotEmpty(connID)
	s.Equal([]string{connID}, s.connMgr.ConnsOf("u-9"))

	s.svc.EXPECT().
		Disconnect(gomock.Any(), rooms.Caller{ConnID: connID, UserID: "u-9"}).
		Do(func(ctx context.Context, _ rooms.Caller) {
			s.NoError(ctx.Err())
		})

	s.hook.OnDisconnect(mctx, 1001)
	s.Nil(s.connMgr.ConnsOf("u-9"))
	s.Zero(s.connMgr.Len())
}
