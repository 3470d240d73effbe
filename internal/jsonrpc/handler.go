package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rubsen49-sketch/MovieMatch/internal/errors"
	"github.com/rubsen49-sketch/MovieMatch/internal/log"
)

type handlerImpl[T any] struct {
	mu      sync.RWMutex
	methods map[string]AsyncMethodHandler[T]
	mws     []Middleware[T]
	logger  *log.Logger
}

func NewHandler[T any](logger *log.Logger) Handler[T] {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &handlerImpl[T]{
		methods: make(map[string]AsyncMethodHandler[T]),
		logger:  logger,
	}
}

func (h *handlerImpl[T]) define(method string, fn AsyncMethodHandler[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.methods[method]; ok {
		panic("method already defined: " + method)
	}
	h.methods[method] = fn
}

func (h *handlerImpl[T]) Def(method string, handler MethodHandler[T]) {
	h.define(method, func(mctx MethodContext[T], params *json.RawMessage, reply Reply) {
		reply(handler(mctx, params))
	})
}

// DefAsync runs the handler on its own goroutine, so it gives up ordering
// with other calls from the same connection.
func (h *handlerImpl[T]) DefAsync(method string, handler AsyncMethodHandler[T]) {
	h.define(method, func(mctx MethodContext[T], params *json.RawMessage, reply Reply) {
		go func() {
			defer h.recoverInto(method, reply)
			handler(mctx, params, reply)
		}()
	})
}

func (h *handlerImpl[T]) Use(mws ...Middleware[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mws = append(h.mws, mws...)
}

func (h *handlerImpl[T]) NewConn(stream ObjectStream, v *T) Conn[T] {
	return newConn(stream, v, h.handle, h.logger)
}

func (h *handlerImpl[T]) lookup(method string) (AsyncMethodHandler[T], bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	fn, ok := h.methods[method]
	if !ok {
		return nil, false
	}
	for i := len(h.mws) - 1; i >= 0; i-- {
		fn = h.mws[i](method, fn)
	}
	return fn, true
}

func (h *handlerImpl[T]) handle(ctx context.Context, conn *connImpl[T], req *Request) {
	h.logger.Debug("rpc request",
		log.String("method", req.Method),
		log.Any("id", req.ID))

	fn, ok := h.lookup(req.Method)
	if !ok {
		h.logger.Warn("method not found",
			log.String("method", req.Method),
			log.Any("id", req.ID))
		if err := conn.replyError(ctx, req.ID, ErrMethodNotFound(req.Method)); err != nil {
			h.logger.Debug("reply method not found", log.Error(err))
		}
		return
	}

	var replied atomic.Bool
	reply := func(result any, err error) {
		if !replied.CompareAndSwap(false, true) {
			h.logger.Warn("duplicate reply dropped", log.String("method", req.Method))
			return
		}
		if err := h.reply(ctx, conn, req, result, err); err != nil {
			h.logger.Error("send rpc reply",
				log.String("method", req.Method),
				log.Any("id", req.ID),
				log.Error(err))
		}
	}

	defer h.recoverInto(req.Method, reply)
	fn(conn.mctx, req.Params, reply)
}

// recoverInto turns a handler panic into an internal error reply so one bad
// request cannot take down the connection read loop.
func (h *handlerImpl[T]) recoverInto(method string, reply Reply) {
	if r := recover(); r != nil {
		h.logger.Error("rpc handler panic",
			log.String("method", method),
			log.String("panic", fmt.Sprint(r)))
		reply(nil, ErrInternal("internal error"))
	}
}

func (h *handlerImpl[T]) reply(
	ctx context.Context,
	conn *connImpl[T],
	req *Request,
	result any,
	err error,
) error {
	if err == nil {
		return conn.reply(ctx, req.ID, result)
	}

	if rpcErr, ok := errors.As[*Error](err); ok {
		h.logger.Info("rpc call rejected",
			log.String("method", req.Method),
			log.Any("id", req.ID),
			log.Int64("code", (*rpcErr).Code),
			log.String("message", (*rpcErr).Message))
		return conn.replyError(ctx, req.ID, *rpcErr)
	}

	h.logger.Error("rpc handler failed",
		log.String("method", req.Method),
		log.Any("id", req.ID),
		log.Error(err))

	// internal details stay in the log
	return conn.replyError(ctx, req.ID, ErrInternal("internal error"))
}
