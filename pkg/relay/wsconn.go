package relay

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"devicerelay.xyz/device-relay-service/pkg/common"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 256
)

var ErrConnClosed = errors.New("relay connection closed")

// WSConn adapts a gorilla websocket to the relay Conn interface. Every
// outbound event goes through the out channel and a single write pump, so a
// subscriber sees events in publish order.
type WSConn struct {
	id        string
	sock      *websocket.Conn
	out       chan Event
	done      chan struct{}
	closeOnce sync.Once
}

func NewWSConn(sock *websocket.Conn) *WSConn {
	return &WSConn{
		id:   uuid.NewString(),
		sock: sock,
		out:  make(chan Event, sendBufferSize),
		done: make(chan struct{}),
	}
}

func (c *WSConn) ID() string {
	return c.id
}

func (c *WSConn) Deliver(ev Event) error {
	select {
	case c.out <- ev:
		return nil
	case <-c.done:
		return ErrConnClosed
	}
}

func (c *WSConn) TryDeliver(ev Event) bool {
	select {
	case c.out <- ev:
		return true
	default:
		return false
	}
}

func (c *WSConn) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.sock.Close()
	})
}

func (c *WSConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case ev := <-c.out:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.sock.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.sock.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// Serve joins the websocket to the device's channel and pumps events both
// ways until the peer disconnects. Blocks; membership is released before
// returning.
func Serve(r *Relay, deviceID string, sock *websocket.Conn) {
	logger := common.GetLoggerWith(common.LoggerNameRelay)
	channel := common.NormalizeDeviceID(deviceID)

	conn := NewWSConn(sock)
	r.Join(channel, conn)
	defer func() {
		r.LeaveAll(conn)
		conn.close()
	}()

	go conn.writePump()

	logger.Info("Relay connection joined",
		zap.String("channel", channel),
		zap.String("conn_id", conn.ID()))

	sock.SetReadDeadline(time.Now().Add(pongWait))
	sock.SetPongHandler(func(string) error {
		sock.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var ev Event
		if err := sock.ReadJSON(&ev); err != nil {
			logger.Debug("Relay connection closed",
				zap.String("channel", channel),
				zap.String("conn_id", conn.ID()),
				zap.Error(err))
			return
		}
		r.Publish(channel, ev, conn.ID())
	}
}
