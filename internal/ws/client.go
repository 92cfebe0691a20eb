package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"courier/internal/auth"
	"courier/internal/middleware"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is one live connection bound to an authenticated user.
type Client struct {
	hub    *Hub
	router *Router
	conn   *websocket.Conn
	send   chan []byte
	userID int

	mu     sync.Mutex
	closed bool
}

// enqueue hands a frame to the write pump without ever blocking the
// caller. False means the session is closed or the buffer is full.
func (c *Client) enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// shutdown closes the outbound channel exactly once; writePump then
// closes the underlying connection, which unblocks readPump.
func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// ServeWs authenticates the handshake and upgrades the connection. A
// missing or invalid credential is refused before any channel exists, so
// no error event is emitted.
func ServeWs(hub *Hub, router *Router, verifier *auth.Verifier, w http.ResponseWriter, r *http.Request) {
	userID, err := verifier.Verify(middleware.TokenFromRequest(r))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:    hub,
		router: router,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"remote":  conn.RemoteAddr().String(),
	}).Info("user connected")

	// The write pump must already be draining when registration runs:
	// hydration pushes one frame per known user, which can exceed the
	// send buffer on long-lived processes.
	go client.writePump()

	// Register before the read pump starts so no intent can race the
	// presence entry.
	hub.Register(client)

	go client.readPump()
}

// readPump relays intents from the wire into the router until the
// connection dies, then hands the session off for the offline debounce.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
		logrus.WithField("user_id", c.userID).Info("user disconnected")
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
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithError(err).WithField("user_id", c.userID).Warn("read error")
			}
			return
		}

		var evt Event
		if err := json.Unmarshal(raw, &evt); err != nil {
			c.hub.SendToUser(c.userID, EventError, ErrorPayload{Message: "Malformed event"})
			continue
		}
		c.handle(evt)
	}
}

// handle dispatches one intent. A panic here must not take down the
// process; it only costs this one intent.
func (c *Client) handle(evt Event) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": c.userID,
				"event":   evt.Event,
				"panic":   r,
			}).Error("recovered from intent handler panic")
		}
	}()
	c.router.HandleEvent(c.userID, evt)
}

func (c *Client) writePump() {
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
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
