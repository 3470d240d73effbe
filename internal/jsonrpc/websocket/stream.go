package websocket

import (
	"context"
	"encoding/json"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/rubsen49-sketch/MovieMatch/internal/errors"
	"github.com/rubsen49-sketch/MovieMatch/internal/jsonrpc"
	"github.com/rubsen49-sketch/MovieMatch/internal/log"
)

const (
	ErrBufferFull errors.Code = "buffer_full"
)

const (
	pingInterval = 10 * time.Second
	pingTimeout  = 3 * time.Second
	writeTimeout = 3 * time.Second
	bufMessages  = 64
	readLimit    = 64 << 10
)

func newStream(conn *websocket.Conn, logger *log.Logger) *wsStream {
	s := &wsStream{
		conn:   conn,
		chBuf:  make(chan any, bufMessages),
		logger: logger,
	}
	s.status.Store(-1)
	// owned by the stream, not the request, so writes queued before Open
	// or after the HTTP handler returns still have a live context
	s.connCtx, s.cancel = context.WithCancel(context.Background())
	return s
}

// wsStream is a jsonrpc.ObjectStream over one websocket. Writes are queued
// and flushed by a single pump goroutine, so Write never blocks on the network.
type wsStream struct {
	conn  *websocket.Conn
	chBuf chan any

	connCtx   context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	status    atomic.Int32
	logger    *log.Logger
}

// Write enqueues obj. A full queue means the peer cannot keep up; the
// connection is closed rather than letting one slow reader stall a room.
func (ws *wsStream) Write(ctx context.Context, obj any) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ws.connCtx.Done():
		return net.ErrClosed
	default:
	}

	select {
	case ws.chBuf <- obj:
		return nil
	default:
		ws.close(ErrBufferFull)
		return ErrBufferFull
	}
}

func (ws *wsStream) Read(ctx context.Context, v any) error {
	typ, data, err := ws.conn.Read(ctx)
	if err != nil {
		ws.close(err)
		return err
	}
	if typ != websocket.MessageText {
		return errors.New(jsonrpc.ErrCodeParseError, "binary frame")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(jsonrpc.ErrCodeParseError, err, "decode frame")
	}
	return nil
}

func (ws *wsStream) Open(context.Context) error {
	go func() {
		ws.close(ws.writePump(ws.connCtx))
	}()
	return nil
}

func (ws *wsStream) Close() error {
	ws.close(nil)
	return nil
}

func (ws *wsStream) close(err error) {
	ws.closeOnce.Do(func() {
		status := websocket.CloseStatus(err)

		switch {
		case err == nil:
			_ = ws.conn.Close(websocket.StatusNormalClosure, "bye")
			status = websocket.StatusNormalClosure
		case status != -1:
			ws.logger.Debug("peer closed", log.Int("code", int(status)))
			_ = ws.conn.CloseNow()
		case errors.Is(err, net.ErrClosed), errors.Is(err, context.Canceled):
			_ = ws.conn.CloseNow()
		case errors.Is(err, ErrBufferFull):
			ws.logger.Warn("closing slow connection, write buffer full")
			status = websocket.StatusPolicyViolation
			_ = ws.conn.Close(status, "too slow")
		default:
			ws.logger.Debug("connection lost", log.Error(err))
			_ = ws.conn.CloseNow()
		}

		ws.status.Store(int32(status))
		ws.cancel()
	})
}

func (ws *wsStream) closeStatus() int {
	return int(ws.status.Load())
}

func (ws *wsStream) wait() {
	<-ws.connCtx.Done()
}

func (ws *wsStream) writePump(ctx context.Context) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := ws.ping(ctx); err != nil {
				return err
			}
		case obj := <-ws.chBuf:
			if err := ws.write(ctx, obj); err != nil {
				return err
			}
		}
	}
}

func (ws *wsStream) write(ctx context.Context, obj any) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, ws.conn, obj)
}

func (ws *wsStream) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return ws.conn.Ping(ctx)
}
