package services

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/quinbingo/quinbingo-backend/utils/logger"
)

// Client is one connected viewer. Outgoing frames go through the
// buffered send channel so a slow connection never blocks a broadcast.
type Client struct {
	id   uint64
	conn *websocket.Conn
	hub  *Hub
	send chan []byte
	once sync.Once
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

// readPump drains incoming frames. Viewers do not send commands; the
// read loop exists to detect disconnects promptly.
func (c *Client) readPump() {
	defer func() {
		c.hub.removeClient(c.id)
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("[client %d] disconnected normally", c.id)
			} else {
				logger.Debugf("[client %d] read error: %v", c.id, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Debugf("[client %d] write error: %v", c.id, err)
			return
		}
	}
}
