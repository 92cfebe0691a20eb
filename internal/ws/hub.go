package ws

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Hub owns the presence table and routes pushed events to the room (the
// single live connection) of each user. Register and unregister serialize
// on the hub mutex; pushes take only the presence read lock, so a push
// re-checks liveness at delivery time rather than at intent time.
type Hub struct {
	mu       sync.Mutex
	presence *Presence
	debounce *Debouncer
}

func NewHub(offlineGrace time.Duration) *Hub {
	h := &Hub{presence: NewPresence()}
	h.debounce = NewDebouncer(offlineGrace, h.broadcastOffline)
	return h
}

// Presence exposes the table for liveness checks.
func (h *Hub) Presence() *Presence {
	return h.presence
}

// Register binds an authenticated connection: the user goes online, any
// previous connection for the same user is superseded, peers get an
// online notice, and the new session is hydrated with the current world
// view.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	displaced := h.presence.SetOnline(c.userID, c)
	h.debounce.Cancel(c.userID)
	h.mu.Unlock()

	if displaced != nil {
		logrus.WithField("user_id", c.userID).Info("connection superseded by newer login")
		displaced.shutdown()
	}

	h.BroadcastExcept(c.userID, EventUserStatus, UserStatusPayload{
		UserID:   c.userID,
		IsOnline: true,
	})

	for _, status := range h.presence.SnapshotExcept(c.userID) {
		lastSeen := status.LastSeen
		h.sendTo(c, EventUserStatus, UserStatusPayload{
			UserID:   status.UserID,
			IsOnline: status.IsOnline,
			LastSeen: &lastSeen,
		})
	}
}

// Unregister releases a closed connection. If the connection is still the
// user's live one, the user goes offline and the debounced broadcast is
// armed; a superseded connection unwinds without touching presence.
func (h *Hub) Unregister(c *Client) {
	now := time.Now().UTC()

	h.mu.Lock()
	dropped := h.presence.dropClient(c.userID, c, now)
	if dropped {
		h.debounce.Schedule(c.userID, now)
	}
	h.mu.Unlock()

	c.shutdown()
}

// broadcastOffline runs when the debounce window elapses without a
// reconnect.
func (h *Hub) broadcastOffline(userID int, lastSeen time.Time) {
	if h.presence.IsOnline(userID) {
		return
	}
	logrus.WithField("user_id", userID).Info("user went offline")
	h.BroadcastExcept(userID, EventUserStatus, UserStatusPayload{
		UserID:   userID,
		IsOnline: false,
		LastSeen: &lastSeen,
	})
}

// SendToUser pushes one event into a user's room. Reports whether a live
// connection accepted it; an offline room is a silent no-op.
func (h *Hub) SendToUser(userID int, event string, payload any) bool {
	c := h.presence.clientOf(userID)
	if c == nil {
		return false
	}
	return h.sendTo(c, event, payload)
}

// BroadcastExcept pushes one event to every online user but the given one.
func (h *Hub) BroadcastExcept(userID int, event string, payload any) {
	for _, status := range h.presence.SnapshotExcept(userID) {
		if !status.IsOnline {
			continue
		}
		h.SendToUser(status.UserID, event, payload)
	}
}

func (h *Hub) sendTo(c *Client, event string, payload any) bool {
	msg, err := encodeEvent(event, payload)
	if err != nil {
		logrus.WithError(err).WithField("event", event).Error("encode event")
		return false
	}
	if !c.enqueue(msg) {
		// Closed session or slow consumer; drop the connection rather
		// than block the hub.
		logrus.WithField("user_id", c.userID).Warn("push failed, dropping connection")
		c.shutdown()
		return false
	}
	return true
}

// Stop cancels pending offline timers; used on shutdown and in tests.
func (h *Hub) Stop() {
	h.debounce.Stop()
}
