package bridge

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// lastSyncMinInterval is the minimum gap between last-sync marker writes for
// one user, regardless of webhook frequency.
const lastSyncMinInterval = 10 * time.Second

// markerLimiter holds one token bucket per user. The decision is made from
// in-process state only; stored marker state is never read back for control
// flow. User cardinality is tiny, so the map is not evicted.
type markerLimiter struct {
	interval time.Duration
	mu       sync.Mutex
	users    map[string]*rate.Limiter
}

func newMarkerLimiter(interval time.Duration) *markerLimiter {
	return &markerLimiter{
		interval: interval,
		users:    make(map[string]*rate.Limiter),
	}
}

// allow reports whether a marker write for userID may proceed at now,
// consuming the token if so.
func (l *markerLimiter) allow(userID string, now time.Time) bool {
	l.mu.Lock()
	lim, ok := l.users[userID]
	if !ok {
		lim = rate.NewLimiter(rate.Every(l.interval), 1)
		l.users[userID] = lim
	}
	l.mu.Unlock()
	return lim.AllowN(now, 1)
}
