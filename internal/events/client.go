package events

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/battleship-go2/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Time between keepalive pings, must be less than pongWait
	pingPeriod = 30 * time.Second

	// Clients only ever send control frames
	maxMessageSize = 512

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// ErrHubClosed is returned when a client connects to a hub that is shutting down
var ErrHubClosed = errors.New("event hub closed")

// NewUpgrader returns the websocket upgrader used for event streams
func NewUpgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		HandshakeTimeout: 5 * time.Second,
		ReadBufferSize:   2048,
		WriteBufferSize:  2048,
		CheckOrigin:      func(r *http.Request) bool { return true },
	}
}

// Client is one websocket connection watching a match
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	playerID    model.PlayerID
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a new websocket client
func NewClient(hub *Hub, conn *websocket.Conn, playerID model.PlayerID) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		playerID:    playerID,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// ServeWS upgrades the request and streams hub events to the connection
// until either side closes it. hubFor is called again once if the first hub
// was closed by cleanup before the client could register.
func ServeWS(w http.ResponseWriter, r *http.Request, upgrader *websocket.Upgrader, hubFor func() *Hub, playerID model.PlayerID) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already written an HTTP error
		return err
	}

	client := NewClient(hubFor(), conn, playerID)
	if !client.hub.Register(client) {
		client.hub = hubFor()
		if !client.hub.Register(client) {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "match closed"),
				time.Now().Add(writeWait))
			_ = conn.Close()
			return ErrHubClosed
		}
	}

	go client.writePump()
	client.readPump()
	return nil
}

// readPump drains incoming frames so pongs and close messages are processed
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
