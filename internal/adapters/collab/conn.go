// Package collab adapts gorilla/websocket connections into collaboration
// sessions driven by the app layer.
package collab

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

var ErrBackpressure = errors.New("backpressure")

// wsConn wraps one websocket connection with a buffered outbound queue
// so a slow reader cannot stall room fan-out. Close is idempotent.
type wsConn struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func newWSConn(conn *websocket.Conn, sendBuffer int) *wsConn {
	if sendBuffer <= 0 {
		sendBuffer = 32
	}
	return &wsConn{
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

func (c *wsConn) TrySend(frame []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- frame:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}
