// Package relay is the realtime fan-out between one device and its
// controllers: named channels keyed by device identity, reliable delivery
// for control events and signaling, drop-on-backpressure delivery for
// screen frames.
package relay

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"devicerelay.xyz/device-relay-service/pkg/common"
)

type EventType string

const (
	EventScreenFrame EventType = "screen-frame"
	EventControl     EventType = "control-event"
	EventOffer       EventType = "offer"
	EventAnswer      EventType = "answer"
	EventCandidate   EventType = "candidate"
)

// Volatile reports whether delivery may drop under backpressure. A stale
// screen frame is worthless; buffering it only adds latency.
func (t EventType) Volatile() bool {
	return t == EventScreenFrame
}

// Signaling reports whether the event routes by its explicit target channel.
func (t EventType) Signaling() bool {
	return t == EventOffer || t == EventAnswer || t == EventCandidate
}

type Event struct {
	Type    EventType       `json:"type"`
	Target  string          `json:"target,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Conn is one channel member. Deliver queues reliably and fails only on a
// closed connection; TryDeliver drops when the member's outbound buffer is
// full.
type Conn interface {
	ID() string
	Deliver(ev Event) error
	TryDeliver(ev Event) bool
}

type Relay struct {
	mu       sync.RWMutex
	channels map[string]map[string]Conn
}

func New() *Relay {
	return &Relay{channels: make(map[string]map[string]Conn)}
}

// Join adds a connection to a channel. Any connection that knows the device
// ID may join; access control is out of scope here.
func (r *Relay) Join(channel string, conn Conn) {
	name := common.NormalizeDeviceID(channel)

	r.mu.Lock()
	defer r.mu.Unlock()

	members, exists := r.channels[name]
	if !exists {
		members = make(map[string]Conn)
		r.channels[name] = members
	}
	members[conn.ID()] = conn
}

func (r *Relay) Leave(channel string, conn Conn) {
	name := common.NormalizeDeviceID(channel)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(name, conn.ID())
}

// LeaveAll removes a connection from every channel it joined; called on
// disconnect. Peers learn of the loss through their own liveness signals,
// not through relay events.
func (r *Relay) LeaveAll(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name := range r.channels {
		r.removeLocked(name, conn.ID())
	}
}

func (r *Relay) removeLocked(channel string, connID string) {
	members, exists := r.channels[channel]
	if !exists {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(r.channels, channel)
	}
}

func (r *Relay) MemberCount(channel string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels[common.NormalizeDeviceID(channel)])
}

// Publish fans ev out to every member of the channel except the publisher.
// Signaling events carry their own target channel and are routed there
// instead. Publishing to an absent channel is a no-op: a controller may
// publish before its device has joined.
func (r *Relay) Publish(channel string, ev Event, excludeID string) {
	name := common.NormalizeDeviceID(channel)
	if ev.Type.Signaling() && ev.Target != "" {
		name = common.NormalizeDeviceID(ev.Target)
	}

	r.mu.RLock()
	members := r.channels[name]
	receivers := make([]Conn, 0, len(members))
	for id, conn := range members {
		if id != excludeID {
			receivers = append(receivers, conn)
		}
	}
	r.mu.RUnlock()

	logger := common.GetLoggerWith(common.LoggerNameRelay)

	// delivery happens outside the membership lock; per-subscriber ordering
	// comes from each connection's own write queue
	for _, conn := range receivers {
		if ev.Type.Volatile() {
			if !conn.TryDeliver(ev) {
				logger.Debug("Dropped frame for slow subscriber",
					zap.String("channel", name),
					zap.String("conn_id", conn.ID()))
			}
			continue
		}
		if err := conn.Deliver(ev); err != nil {
			logger.Warn("Failed to deliver event",
				zap.String("channel", name),
				zap.String("event_type", string(ev.Type)),
				zap.String("conn_id", conn.ID()),
				zap.Error(err))
		}
	}
}
