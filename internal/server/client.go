package server

import (
	"encoding/json"
	"sync"

	"briscola-game/internal/protocol"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const sendBufferSize = 256

// Client represents a single WebSocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	ID   string
	Name string

	mu     sync.Mutex
	closed bool
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// Send queues a message for the client. Messages to a closed or backed-up
// client are dropped.
func (c *Client) Send(message []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- message:
	default:
		c.hub.log.WithField("client", c.ID).Warn("Send buffer full, dropping message")
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// ReadPump handles incoming messages from the WebSocket connection.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	log := c.hub.log.WithField("client", c.ID)
	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).Warn("Unexpected close")
			} else {
				log.WithError(err).Debug("Read ended")
			}
			break
		}

		var msg protocol.Message
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			log.WithError(err).Warn("Malformed message")
			continue
		}

		if msg.Type != protocol.TypePing {
			log.WithFields(logrus.Fields{"type": msg.Type, "name": c.Name}).Debug("Message received")
		}
		c.hub.processMessage <- clientMessage{client: c, message: msg}
	}
}

// WritePump handles outgoing messages to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			c.hub.log.WithError(err).WithField("client", c.ID).Warn("Write failed")
			break
		}
	}
}
