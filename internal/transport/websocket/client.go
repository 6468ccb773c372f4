package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second

	sendBufferSize = 32
	maxIntentSize  = 512
)

// client is one network session bound to a (room, identity, role). It owns
// no game state; it only carries intents in and snapshots out.
type client struct {
	conn     *websocket.Conn
	send     chan []byte
	roomID   string
	identity string
	role     string
}

func newClient(conn *websocket.Conn, roomID, identity, role string) *client {
	return &client{
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		roomID:   roomID,
		identity: identity,
		role:     role,
	}
}

// enqueue - hands a message to the writer pump without blocking. A full
// buffer means the peer is too slow; the caller treats that as an implicit
// disconnect.
func (that *client) enqueue(message []byte) bool {
	select {
	case that.send <- message:
		return true
	default:
		return false
	}
}

// writePump - drains the send channel onto the socket and keeps the
// connection alive with pings. Runs as the connection's single writer.
func (that *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		that.conn.Close()
	}()

	for {
		select {
		case message, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
