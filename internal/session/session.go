// Package session tracks who is playing: one Handle per local run or SSH
// connection, kept in a Registry that enforces a connection limit and
// relays notices (such as a new high score) between players.
package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrFull is returned by Register when the registry is at its limit.
var ErrFull = errors.New("session: server is full")

// ID uniquely identifies a session.
type ID string

// NewID returns a fresh random ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// Short returns the first eight characters, for logs and the status bar.
func (id ID) Short() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

// Notice is a message relayed to other players.
type Notice struct {
	From ID
	Text string
	At   time.Time
}

// Handle is one player's connection. Notices are delivered through a
// buffered channel; Send never blocks.
type Handle struct {
	id      ID
	user    string
	origin  string
	remote  string
	started time.Time

	notices  chan Notice
	done     chan struct{}
	doneOnce sync.Once
}

// NewHandle creates a handle. bufferSize bounds undelivered notices.
func NewHandle(user, origin, remote string, bufferSize int) *Handle {
	if bufferSize < 1 {
		bufferSize = 16
	}
	return &Handle{
		id:      NewID(),
		user:    user,
		origin:  origin,
		remote:  remote,
		started: time.Now(),
		notices: make(chan Notice, bufferSize),
		done:    make(chan struct{}),
	}
}

// ID returns the session identifier.
func (h *Handle) ID() ID { return h.id }

// User returns the login name ("" for anonymous local play).
func (h *Handle) User() string { return h.user }

// Origin returns "local" or "ssh".
func (h *Handle) Origin() string { return h.origin }

// Remote returns the remote address, if any.
func (h *Handle) Remote() string { return h.remote }

// StartedAt returns when the session began.
func (h *Handle) StartedAt() time.Time { return h.started }

// Send queues a notice. If the buffer is full the oldest notice is
// dropped to make room.
func (h *Handle) Send(n Notice) {
	select {
	case <-h.done:
		return
	default:
	}

	select {
	case h.notices <- n:
	default:
		select {
		case <-h.notices:
		default:
		}
		select {
		case h.notices <- n:
		default:
		}
	}
}

// Notices returns the channel notices arrive on.
func (h *Handle) Notices() <-chan Notice { return h.notices }

// Done returns a channel closed by Close.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Close marks the session as finished. Safe to call multiple times.
func (h *Handle) Close() {
	h.doneOnce.Do(func() {
		close(h.done)
	})
}

// Info is a read-only view of a session.
type Info struct {
	ID        ID
	User      string
	Origin    string
	Remote    string
	StartedAt time.Time
}

// Registry tracks active sessions.
// Thread-safe for concurrent access.
type Registry struct {
	mu       sync.RWMutex
	sessions map[ID]*Handle
	limit    int
}

// NewRegistry creates a registry holding at most limit sessions
// (0 means unlimited).
func NewRegistry(limit int) *Registry {
	return &Registry{
		sessions: make(map[ID]*Handle),
		limit:    max(limit, 0),
	}
}

// Register adds a session, failing with ErrFull at the limit.
func (r *Registry) Register(h *Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.limit > 0 && len(r.sessions) >= r.limit {
		return ErrFull
	}
	r.sessions[h.ID()] = h
	return nil
}

// Unregister removes a session and closes it.
func (r *Registry) Unregister(id ID) {
	r.mu.Lock()
	h, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		h.Close()
	}
}

// Get retrieves a session by ID.
func (r *Registry) Get(id ID) (*Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.sessions[id]
	return h, ok
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// List returns all sessions, oldest first.
func (r *Registry) List() []Info {
	r.mu.RLock()
	out := make([]Info, 0, len(r.sessions))
	for _, h := range r.sessions {
		out = append(out, Info{
			ID:        h.id,
			User:      h.user,
			Origin:    h.origin,
			Remote:    h.remote,
			StartedAt: h.started,
		})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}

// Broadcast delivers n to every session except its sender and returns
// how many received it.
func (r *Registry) Broadcast(n Notice) int {
	if n.At.IsZero() {
		n.At = time.Now()
	}

	r.mu.RLock()
	targets := make([]*Handle, 0, len(r.sessions))
	for id, h := range r.sessions {
		if id != n.From {
			targets = append(targets, h)
		}
	}
	r.mu.RUnlock()

	for _, h := range targets {
		h.Send(n)
	}
	return len(targets)
}
