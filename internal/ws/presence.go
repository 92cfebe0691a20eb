package ws

import (
	"sync"
	"time"
)

// Presence is the authoritative in-process view of who is reachable.
// Entries are created on first connect and never deleted; a nil client
// means "known but offline".
type Presence struct {
	mu      sync.RWMutex
	entries map[int]*presenceEntry
}

type presenceEntry struct {
	client   *Client
	lastSeen time.Time
}

// PresenceStatus is a point-in-time copy of one entry.
type PresenceStatus struct {
	UserID   int
	IsOnline bool
	LastSeen time.Time
}

func NewPresence() *Presence {
	return &Presence{entries: make(map[int]*presenceEntry)}
}

// SetOnline binds the user's live connection, displacing any previous one
// (single active connection per user, last writer wins). It returns the
// displaced client, if any.
func (p *Presence) SetOnline(userID int, c *Client) *Client {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.entries[userID]
	if !ok {
		entry = &presenceEntry{}
		p.entries[userID] = entry
	}
	displaced := entry.client
	entry.client = c
	entry.lastSeen = time.Now().UTC()
	return displaced
}

// SetOffline clears the connection handle and records the last-seen time.
// The entry itself is kept.
func (p *Presence) SetOffline(userID int, lastSeen time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.entries[userID]
	if !ok {
		return
	}
	entry.client = nil
	entry.lastSeen = lastSeen
}

func (p *Presence) IsOnline(userID int) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	entry, ok := p.entries[userID]
	return ok && entry.client != nil
}

// LastSeen returns the recorded last-seen time for a known user.
func (p *Presence) LastSeen(userID int) (time.Time, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	entry, ok := p.entries[userID]
	if !ok {
		return time.Time{}, false
	}
	return entry.lastSeen, true
}

// SnapshotExcept copies the table for everyone but the given user, so a
// newly connected client can be hydrated without holding the lock during
// delivery.
func (p *Presence) SnapshotExcept(userID int) []PresenceStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()

	statuses := make([]PresenceStatus, 0, len(p.entries))
	for id, entry := range p.entries {
		if id == userID {
			continue
		}
		statuses = append(statuses, PresenceStatus{
			UserID:   id,
			IsOnline: entry.client != nil,
			LastSeen: entry.lastSeen,
		})
	}
	return statuses
}

// dropClient clears the entry only if it still points at c, so a stale
// disconnect from a displaced connection cannot knock the replacement
// offline. Reports whether the entry was cleared.
func (p *Presence) dropClient(userID int, c *Client, lastSeen time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.entries[userID]
	if !ok || entry.client != c {
		return false
	}
	entry.client = nil
	entry.lastSeen = lastSeen
	return true
}

// clientOf returns the live connection for a user, or nil. Used by the hub
// as the push-time liveness check.
func (p *Presence) clientOf(userID int) *Client {
	p.mu.RLock()
	defer p.mu.RUnlock()

	entry, ok := p.entries[userID]
	if !ok {
		return nil
	}
	return entry.client
}
