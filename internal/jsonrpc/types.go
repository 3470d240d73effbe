package jsonrpc

import (
	"context"
	"encoding/json"
	"io"
)

// Handler owns the method table. Every Conn created by a Handler shares it.
type Handler[T any] interface {
	Def(method string, handler MethodHandler[T])
	DefAsync(method string, handler AsyncMethodHandler[T])
	// Use appends middlewares applied to every method, in the given order.
	Use(mws ...Middleware[T])
	NewConn(stream ObjectStream, v *T) Conn[T]
}

type Notifier interface {
	Notify(ctx context.Context, method string, params any) error
}

type Conn[T any] interface {
	Notifier
	Call(ctx context.Context, method string, params, result any) error
	Open(ctx context.Context) error
	Context() MethodContext[T]
	// Done is closed once the read loop has returned. Handlers registered
	// with Def run on that loop, so none of them is still running by then.
	Done() <-chan struct{}
	io.Closer
}

// MethodHandler runs on the connection read loop, so calls from one
// connection are handled in arrival order.
type MethodHandler[T any] func(mctx MethodContext[T], params *json.RawMessage) (any, error)

// AsyncMethodHandler must call reply exactly once.
type AsyncMethodHandler[T any] func(mctx MethodContext[T], params *json.RawMessage, reply Reply)

type Reply func(result any, err error)

// Middleware wraps the dispatch of one method.
type Middleware[T any] func(method string, next AsyncMethodHandler[T]) AsyncMethodHandler[T]

// ObjectStream carries whole JSON values. Read returns an error coded
// ErrCodeParseError for a frame that is not valid JSON; the stream stays usable.
type ObjectStream interface {
	Open(ctx context.Context) error
	Read(ctx context.Context, v any) error
	Write(ctx context.Context, obj any) error
	io.Closer
}
