package relay

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devicerelay.xyz/device-relay-service/pkg/common"
	_ "devicerelay.xyz/device-relay-service/pkg/testing"
)

// fakeConn records deliveries; a non-negative capacity simulates a full
// outbound buffer for TryDeliver.
type fakeConn struct {
	id       string
	capacity int

	mu     sync.Mutex
	events []Event
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id, capacity: -1}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Deliver(ev Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	return nil
}

func (c *fakeConn) TryDeliver(ev Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.capacity >= 0 && len(c.events) >= c.capacity {
		return false
	}
	c.events = append(c.events, ev)
	return true
}

func (c *fakeConn) received() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

func TestControlEventReachesAllButPublisher(t *testing.T) {
	common.SetTestLoggerNop()

	r := New()
	device := newFakeConn("device")
	ctrl1 := newFakeConn("ctrl1")
	ctrl2 := newFakeConn("ctrl2")

	r.Join("x1", device)
	r.Join("x1", ctrl1)
	r.Join("x1", ctrl2)

	r.Publish("x1", Event{Type: EventControl, Payload: []byte(`{"key":"a"}`)}, ctrl1.ID())

	assert.Len(t, device.received(), 1)
	assert.Len(t, ctrl2.received(), 1)
	assert.Empty(t, ctrl1.received())
}

func TestScreenFrameDropsUnderBackpressureWithoutBlockingOthers(t *testing.T) {
	common.SetTestLoggerNop()

	r := New()
	device := newFakeConn("device")
	slow := newFakeConn("slow")
	slow.capacity = 0 // buffer already full
	fast := newFakeConn("fast")

	r.Join("x1", device)
	r.Join("x1", slow)
	r.Join("x1", fast)

	r.Publish("x1", Event{Type: EventScreenFrame, Payload: []byte(`"frame"`)}, device.ID())

	assert.Empty(t, slow.received(), "slow subscriber drops the frame")
	assert.Len(t, fast.received(), 1, "slow subscriber must not block the fast one")
}

func TestSignalingRoutedToTargetChannel(t *testing.T) {
	common.SetTestLoggerNop()

	r := New()
	controller := newFakeConn("controller")
	deviceA := newFakeConn("device-a")
	deviceB := newFakeConn("device-b")

	r.Join("dashboard", controller)
	r.Join("a1", deviceA)
	r.Join("b2", deviceB)

	r.Publish("dashboard", Event{
		Type:    EventOffer,
		Target:  "A1",
		Payload: []byte(`{"sdp":"..."}`),
	}, controller.ID())

	require.Len(t, deviceA.received(), 1)
	assert.Equal(t, EventOffer, deviceA.received()[0].Type)
	assert.Empty(t, deviceB.received())
}

func TestPublishToAbsentChannelIsNoOp(t *testing.T) {
	common.SetTestLoggerNop()

	r := New()
	// controller may publish before the device joins
	r.Publish("nobody-home", Event{Type: EventControl}, "someone")
}

func TestJoinNormalizesChannelName(t *testing.T) {
	common.SetTestLoggerNop()

	r := New()
	conn := newFakeConn("c1")
	r.Join("  X1 ", conn)

	assert.Equal(t, 1, r.MemberCount("x1"))
}

func TestLeaveAllReleasesEveryMembership(t *testing.T) {
	common.SetTestLoggerNop()

	r := New()
	conn := newFakeConn("c1")
	other := newFakeConn("c2")

	r.Join("x1", conn)
	r.Join("x2", conn)
	r.Join("x1", other)

	r.LeaveAll(conn)

	assert.Equal(t, 1, r.MemberCount("x1"))
	assert.Equal(t, 0, r.MemberCount("x2"))

	r.Publish("x2", Event{Type: EventControl}, "")
	assert.Empty(t, conn.received())
}

func TestEventTypeSemantics(t *testing.T) {
	assert.True(t, EventScreenFrame.Volatile())
	assert.False(t, EventControl.Volatile())

	for _, signaling := range []EventType{EventOffer, EventAnswer, EventCandidate} {
		assert.True(t, signaling.Signaling())
		assert.False(t, signaling.Volatile())
	}
	assert.False(t, EventControl.Signaling())
}
