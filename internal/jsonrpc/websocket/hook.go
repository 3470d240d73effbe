package websocket

import (
	"net/http"

	"github.com/rubsen49-sketch/MovieMatch/internal/jsonrpc"
)

// ConnectionHooks customizes the connection lifecycle.
type ConnectionHooks[T any] interface {
	// OnVerify runs before the upgrade. It returns the initial connection
	// state; passed=false answers 401, an error answers 500.
	OnVerify(r *http.Request) (state *T, passed bool, err error)

	// OnConnect runs once the websocket is accepted, before any message is read.
	OnConnect(mctx jsonrpc.MethodContext[T])

	// OnDisconnect runs after the read loop ends. closeCode is the websocket
	// close status, or -1 when the peer vanished without a close frame.
	OnDisconnect(mctx jsonrpc.MethodContext[T], closeCode int)
}

type defaultHooks[T any] struct{}

func (h *defaultHooks[T]) OnVerify(*http.Request) (*T, bool, error) {
	return new(T), true, nil
}

func (h *defaultHooks[T]) OnConnect(jsonrpc.MethodContext[T]) {}

func (h *defaultHooks[T]) OnDisconnect(jsonrpc.MethodContext[T], int) {}
