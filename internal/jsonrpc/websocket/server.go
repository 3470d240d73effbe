package websocket

import (
	"net/http"

	"github.com/coder/websocket"

	"github.com/rubsen49-sketch/MovieMatch/internal/jsonrpc"
	"github.com/rubsen49-sketch/MovieMatch/internal/log"
)

// Server upgrades HTTP requests and serves JSON-RPC on each websocket.
// Methods may be registered at any time; they apply to new messages.
type Server[T any] struct {
	jsonrpc.Handler[T]
	hooks          ConnectionHooks[T]
	allowedOrigins []string
	logger         *log.Logger
}

// NewServer uses permissive hooks when hooks is nil. allowedOrigins are
// coder/websocket origin patterns; empty means same-origin only.
func NewServer[T any](
	hooks ConnectionHooks[T],
	allowedOrigins []string,
	logger *log.Logger,
) *Server[T] {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if hooks == nil {
		hooks = &defaultHooks[T]{}
	}
	return &Server[T]{
		Handler:        jsonrpc.NewHandler[T](logger.Module("RPC")),
		hooks:          hooks,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

func (s *Server[T]) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	state, passed, err := s.hooks.OnVerify(r)
	if err != nil {
		s.logger.Warn("connection verification error",
			log.String("remote_addr", r.RemoteAddr),
			log.Error(err))
		http.Error(w, "fail to verify", http.StatusInternalServerError)
		return
	}
	if !passed {
		s.logger.Info("connection rejected",
			log.String("remote_addr", r.RemoteAddr))
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.allowedOrigins,
	})
	if err != nil {
		s.logger.Warn("websocket accept failed",
			log.String("remote_addr", r.RemoteAddr),
			log.Error(err))
		return
	}
	wsConn.SetReadLimit(readLimit)

	stream := newStream(wsConn, s.logger)
	rpcConn := s.Handler.NewConn(stream, state)

	s.logger.Debug("websocket connected",
		log.String("remote_addr", r.RemoteAddr),
		log.String("user_agent", r.UserAgent()))

	s.hooks.OnConnect(rpcConn.Context())
	if err := rpcConn.Open(r.Context()); err != nil {
		s.logger.Error("open rpc connection",
			log.String("remote_addr", r.RemoteAddr),
			log.Error(err))
		_ = rpcConn.Close()
		s.hooks.OnDisconnect(rpcConn.Context(), int(websocket.StatusInternalError))
		return
	}

	stream.wait()
	// a request still in its handler may touch state OnDisconnect cleans up
	<-rpcConn.Done()
	s.hooks.OnDisconnect(rpcConn.Context(), stream.closeStatus())
}
