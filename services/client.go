package services

import (
	"sync"

	"github.com/mkessler/squares-backend/utils/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Client struct {
	id     string
	gameID uint
	userID uint
	conn   *websocket.Conn
	hub    *Hub
	send   chan []byte
	once   sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, gameID, userID uint) *Client {
	return &Client{
		id:     uuid.NewString(),
		gameID: gameID,
		userID: userID,
		conn:   conn,
		hub:    hub,
		send:   make(chan []byte, 32),
	}
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

// TrySend queues a message without blocking. False means the client's
// buffer is full.
func (c *Client) TrySend(msg []byte) bool {
	defer func() {
		// send may race with Close; a send on the closed channel is
		// treated the same as a full buffer.
		recover()
	}()
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// readPump drains the connection. Viewers are read-only over the socket
// (mutations go through HTTP), so inbound payloads are discarded; the read
// loop exists to notice disconnects.
func (c *Client) readPump() {
	defer c.hub.Unsubscribe(c)

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("[Client %s] disconnected", c.id)
			} else {
				logger.Debugf("[Client %s] read error: %v", c.id, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Debugf("[Client %s] write error: %v", c.id, err)
			return
		}
	}
}
