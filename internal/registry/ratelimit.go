package registry

import (
	"sync"
	"time"
)

// Limiter is a fixed-window counter bounding outbound registry calls per
// window. The counter hard-resets at the window boundary rather than
// smoothing admissions; downstream retry-after messaging assumes this
// behavior, so it must not be replaced with a token bucket.
type Limiter struct {
	mu          sync.Mutex
	limit       int
	window      time.Duration
	count       int
	windowStart time.Time
	now         func() time.Time
}

func NewLimiter(limit int, window time.Duration) *Limiter {
	l := &Limiter{limit: limit, window: window, now: time.Now}
	l.windowStart = l.now()
	return l
}

// Allow reports whether another upstream call may be made now, consuming
// one admission when it returns true.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if now.Sub(l.windowStart) > l.window {
		l.count = 0
		l.windowStart = now
	}
	if l.count >= l.limit {
		return false
	}
	l.count++
	return true
}

// Status reports the current admission count, the limit, and when the
// window resets.
func (l *Limiter) Status() (count, limit int, resetAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count, l.limit, l.windowStart.Add(l.window)
}
