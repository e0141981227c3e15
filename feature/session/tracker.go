package session

import (
	"context"
	"sync"
	"time"
)

// CheckInterval is how often the idle checker runs.
const CheckInterval = 30 * time.Second

// State is a snapshot of the database session.
type State struct {
	Connected    bool      `json:"connected"`
	Server       string    `json:"server,omitempty"`
	Database     string    `json:"database,omitempty"`
	Port         int       `json:"port,omitempty"`
	LastActivity time.Time `json:"last_activity"`
	TimedOut     bool      `json:"timed_out"`
}

// Tracker records activity on the database session and marks it timed out
// after a period of inactivity. It is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	state   State
	timeout time.Duration
	now     func() time.Time
}

// NewTracker creates a disconnected tracker with the given idle timeout.
func NewTracker(timeout time.Duration) *Tracker {
	t := &Tracker{timeout: timeout, now: time.Now}
	t.state.LastActivity = t.now()
	return t
}

// Timeout returns the configured idle timeout.
func (t *Tracker) Timeout() time.Duration {
	return t.timeout
}

// Touch records activity and clears a previous timeout.
func (t *Tracker) Touch() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.LastActivity = t.now()
	t.state.TimedOut = false
}

// Connect marks the session connected to server/database.
func (t *Tracker) Connect(server, database string, port int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = State{
		Connected:    true,
		Server:       server,
		Database:     database,
		Port:         port,
		LastActivity: t.now(),
	}
}

// Disconnect resets the session.
func (t *Tracker) Disconnect() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = State{LastActivity: t.state.LastActivity}
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Heartbeat reports the session flags and refreshes activity unless the
// session already timed out; a timed-out session stays timed out until the
// client reconnects or reports activity explicitly.
func (t *Tracker) Heartbeat() (connected, timedOut bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	connected, timedOut = t.state.Connected, t.state.TimedOut
	if !timedOut {
		t.state.LastActivity = t.now()
	}
	return connected, timedOut
}

// CheckIdle marks a connected session timed out when it has been idle for
// longer than the timeout. It reports whether this call expired the session.
func (t *Tracker) CheckIdle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.state.Connected {
		return false
	}
	if t.now().Sub(t.state.LastActivity) <= t.timeout {
		return false
	}
	t.state.TimedOut = true
	t.state.Connected = false
	return true
}

// Run calls CheckIdle every interval until ctx is cancelled. onExpire, if
// set, runs after each call that expired the session.
func (t *Tracker) Run(ctx context.Context, interval time.Duration, onExpire func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if t.CheckIdle() && onExpire != nil {
				onExpire()
			}
		}
	}
}
