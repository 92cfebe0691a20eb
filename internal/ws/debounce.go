package ws

import (
	"sync"
	"time"
)

// Debouncer delays "went offline" broadcasts so a quick reconnect (page
// reload, flaky network) never flickers for peers. At most one pending
// timer exists per user; a new disconnect resets the window.
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[int]*time.Timer
	fire   func(userID int, lastSeen time.Time)
}

func NewDebouncer(delay time.Duration, fire func(userID int, lastSeen time.Time)) *Debouncer {
	return &Debouncer{
		delay:  delay,
		timers: make(map[int]*time.Timer),
		fire:   fire,
	}
}

// Schedule arms the offline broadcast for a user, replacing any pending
// timer for the same user.
func (d *Debouncer) Schedule(userID int, lastSeen time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.timers[userID]; ok {
		timer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A Stop that lost the race leaves the callback running; only the
		// currently armed timer may fire.
		if d.timers[userID] != timer {
			d.mu.Unlock()
			return
		}
		delete(d.timers, userID)
		d.mu.Unlock()
		d.fire(userID, lastSeen)
	})
	d.timers[userID] = timer
}

// Cancel stops a pending broadcast; called when the user reconnects
// inside the window. Reports whether a timer was pending.
func (d *Debouncer) Cancel(userID int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	timer, ok := d.timers[userID]
	if !ok {
		return false
	}
	timer.Stop()
	delete(d.timers, userID)
	return true
}

// Stop cancels every pending timer.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for id, timer := range d.timers {
		timer.Stop()
		delete(d.timers, id)
	}
}
