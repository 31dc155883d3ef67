package collab

import (
	"sync"
	"time"

	"github.com/pavithrapri/collab-code-editor/internal/core"
)

// FrameLimiter caps inbound frames per session over a sliding window.
// A limit of zero disables limiting.
type FrameLimiter struct {
	mu       sync.Mutex
	history  map[core.SessionID][]time.Time
	limit    int
	interval time.Duration
}

func NewFrameLimiter(limit int, interval time.Duration) *FrameLimiter {
	return &FrameLimiter{
		history:  make(map[core.SessionID][]time.Time),
		limit:    limit,
		interval: interval,
	}
}

func (l *FrameLimiter) Allow(sid core.SessionID) bool {
	if l.limit <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-l.interval)

	attempts := l.history[sid]
	fresh := make([]time.Time, 0, len(attempts))
	for _, t := range attempts {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= l.limit {
		l.history[sid] = fresh
		return false
	}

	fresh = append(fresh, now)
	l.history[sid] = fresh
	return true
}

// Forget drops a session's history once it disconnects.
func (l *FrameLimiter) Forget(sid core.SessionID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.history, sid)
}
