package session

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/rubsen49-sketch/MovieMatch/internal/jsonrpc"
	"github.com/rubsen49-sketch/MovieMatch/internal/log"
)

// ConnManager indexes live connections by id and by registered user. It is
// the rooms.Notifier and rooms.Directory of the process.
type ConnManager struct {
	mu        sync.RWMutex
	conns     map[string]jsonrpc.Conn[connContext] // connId -> conn
	conn2user map[string]string                    // connId -> userId
	user2conn map[string]map[string]struct{}       // userId -> connIds
	logger    *log.Logger
}

func NewConnManager(logger *log.Logger) *ConnManager {
	return &ConnManager{
		conns:     make(map[string]jsonrpc.Conn[connContext]),
		conn2user: make(map[string]string),
		user2conn: make(map[string]map[string]struct{}),
		logger:    logger,
	}
}

func (m *ConnManager) Add(connID string, conn jsonrpc.Conn[connContext]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conns[connID] = conn
}

// Remove drops the connection and its user binding.
func (m *ConnManager) Remove(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, connID)
	m.unbindLocked(connID)
}

// BindUser routes userID to connID, replacing any earlier binding of connID.
func (m *ConnManager) BindUser(connID, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.conns[connID]; !ok {
		return
	}
	m.unbindLocked(connID)

	set, ok := m.user2conn[userID]
	if !ok {
		set = make(map[string]struct{})
		m.user2conn[userID] = set
	}
	set[connID] = struct{}{}
	m.conn2user[connID] = userID

	m.logger.Debug("user bound",
		log.Conn(connID),
		log.User(userID))
}

func (m *ConnManager) unbindLocked(connID string) {
	userID, ok := m.conn2user[connID]
	if !ok {
		return
	}
	delete(m.conn2user, connID)
	if set, ok := m.user2conn[userID]; ok {
		delete(set, connID)
		if len(set) == 0 {
			delete(m.user2conn, userID)
		}
	}
}

func (m *ConnManager) ConnsOf(userID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set := m.user2conn[userID]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

func (m *ConnManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

func (m *ConnManager) lookup(connIDs []string) []jsonrpc.Conn[connContext] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]jsonrpc.Conn[connContext], 0, len(connIDs))
	for _, id := range connIDs {
		if conn, ok := m.conns[id]; ok {
			out = append(out, conn)
		}
	}
	return out
}

// Notify pushes a notification to each connection. Writes only enqueue on
// the connection's write pump; unknown or closed connections are skipped.
func (m *ConnManager) Notify(ctx context.Context, connIDs []string, method string, params any) {
	attrs := metric.WithAttributes(attribute.String("event", method))
	for _, conn := range m.lookup(connIDs) {
		if err := conn.Notify(ctx, method, params); err != nil {
			eventsDropped.Add(ctx, 1, attrs)
			m.logger.Debug("notify failed",
				log.String("method", method),
				log.Error(err))
			continue
		}
		eventsDelivered.Add(ctx, 1, attrs)
	}
}
