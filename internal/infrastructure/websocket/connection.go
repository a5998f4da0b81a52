package websocket

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"collab-relay/internal/domain"
	"collab-relay/pkg/logger"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrSendBufferFull   = errors.New("send buffer full")
)

// Hub is the part of the relay core the transport needs: connection
// lifecycle plus event dispatch.
type Hub interface {
	Register(conn domain.Connection)
	Unregister(conn domain.Connection)
	Dispatch(conn domain.Connection, env domain.Envelope)
}

// Connection wraps one websocket. All writes go through the buffered
// send channel and a single writer goroutine; all reads happen on the
// read pump goroutine.
type Connection struct {
	id   string
	conn *websocket.Conn
	send chan *domain.Outbound
	log  logger.Logger

	mu     sync.RWMutex
	closed bool
}

func NewConnection(id string, conn *websocket.Conn, sendBuffer int, log logger.Logger) *Connection {
	return &Connection{
		id:   id,
		conn: conn,
		send: make(chan *domain.Outbound, sendBuffer),
		log:  log,
	}
}

func (c *Connection) ID() string {
	return c.id
}

// Send queues the event for the write pump. A full buffer means the
// client is not draining; the event is dropped rather than blocking the
// hub loop.
func (c *Connection) Send(msg *domain.Outbound) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrConnectionClosed
	}
	select {
	case c.send <- msg:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (c *Connection) Close() error {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.mu.Unlock()
	return c.conn.Close()
}

// ReadPump pumps envelopes from the websocket to the hub. It runs in a
// per-connection goroutine and is the only reader on the connection.
func (c *Connection) ReadPump(hub Hub, maxMessageSize int64) {
	defer func() {
		hub.Unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("Unexpected close", "conn_id", c.id, "error", err)
			}
			return
		}

		var env domain.Envelope
		if err := json.Unmarshal(raw, &env); err != nil || env.Event == "" {
			// reject at the boundary, keep the connection alive
			_ = c.Send(&domain.Outbound{
				Event: domain.EventError,
				Data:  domain.ErrorPayload{Message: "malformed event envelope"},
			})
			continue
		}

		hub.Dispatch(c, env)
	}
}

// WritePump pumps events from the send channel to the websocket. It
// runs in a per-connection goroutine and is the only writer on the
// connection.
func (c *Connection) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.log.Error("Failed to write event", "conn_id", c.id, "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
