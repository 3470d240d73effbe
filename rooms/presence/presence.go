// Package presence tracks the live members of one room and its host.
//
// A Tracker is not safe for concurrent use; the owning room serializes access.
package presence

import (
	"sort"

	"github.com/jonboulle/clockwork"

	"github.com/rubsen49-sketch/MovieMatch/rooms"
)

type member struct {
	rooms.Participant
	seq uint64
}

type Tracker struct {
	clock   clockwork.Clock
	seq     uint64
	members map[string]*member
	host    string
}

// LeaveResult describes what a departure changed.
type LeaveResult struct {
	Removed bool
	WasHost bool
	// NewHost is the promoted connection, empty when no promotion happened.
	NewHost string
	Empty   bool
}

func New(clock clockwork.Clock) *Tracker {
	return &Tracker{
		clock:   clock,
		members: make(map[string]*member),
	}
}

// Join adds p, stamping its join time. It never grants host; that happens
// at creation through SetHost or by promotion in Leave. Joining twice with
// the same connection is a no-op and returns false.
func (t *Tracker) Join(p rooms.Participant) bool {
	if _, ok := t.members[p.ID]; ok {
		return false
	}
	t.seq++
	p.IsHost = false
	p.JoinedAt = t.clock.Now()
	t.members[p.ID] = &member{Participant: p, seq: t.seq}
	return true
}

func (t *Tracker) SetHost(connID string) bool {
	if _, ok := t.members[connID]; !ok {
		return false
	}
	t.host = connID
	return true
}

// Leave removes connID. If it held host and others remain, the member with
// the lowest join sequence is promoted.
func (t *Tracker) Leave(connID string) LeaveResult {
	if _, ok := t.members[connID]; !ok {
		return LeaveResult{}
	}
	delete(t.members, connID)

	res := LeaveResult{Removed: true, Empty: len(t.members) == 0}
	if t.host != connID {
		return res
	}

	res.WasHost = true
	t.host = ""
	if next := t.earliest(); next != nil {
		t.host = next.ID
		res.NewHost = next.ID
	}
	return res
}

func (t *Tracker) earliest() *member {
	var first *member
	for _, m := range t.members {
		if first == nil || m.seq < first.seq {
			first = m
		}
	}
	return first
}

func (t *Tracker) ordered() []*member {
	out := make([]*member, 0, len(t.members))
	for _, m := range t.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// List returns members in join order.
func (t *Tracker) List() []rooms.Participant {
	ms := t.ordered()
	out := make([]rooms.Participant, len(ms))
	for i, m := range ms {
		p := m.Participant
		p.IsHost = p.ID == t.host
		out[i] = p
	}
	return out
}

// ConnIDs returns member connections in join order.
func (t *Tracker) ConnIDs() []string {
	ms := t.ordered()
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func (t *Tracker) Count() int {
	return len(t.members)
}

func (t *Tracker) Host() (string, bool) {
	return t.host, t.host != ""
}

func (t *Tracker) Has(connID string) bool {
	_, ok := t.members[connID]
	return ok
}
