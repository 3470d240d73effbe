package jsonrpc

import (
	"context"
	"sync/atomic"
)

// MethodContext is the per-connection state shared by every call on it.
type MethodContext[T any] interface {
	Get() *T
	Set(value *T)
	Peer() Conn[T]
	// Ctx is cancelled when the connection closes.
	Ctx() context.Context
}

func NewContext[T any](conn Conn[T], v *T) MethodContext[T] {
	c := &contextImpl[T]{conn: conn}
	c.v.Store(v)
	return c
}

type contextImpl[T any] struct {
	conn Conn[T]
	v    atomic.Pointer[T]
	ctx  atomic.Pointer[context.Context]
}

func (m *contextImpl[T]) Set(value *T) {
	m.v.Store(value)
}

func (m *contextImpl[T]) Get() *T {
	return m.v.Load()
}

func (m *contextImpl[T]) Peer() Conn[T] {
	return m.conn
}

func (m *contextImpl[T]) Ctx() context.Context {
	if ctx := m.ctx.Load(); ctx != nil {
		return *ctx
	}
	return context.Background()
}

func (m *contextImpl[T]) setCtx(ctx context.Context) {
	m.ctx.Store(&ctx)
}
