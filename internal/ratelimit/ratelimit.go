// Package ratelimit caps request volume per caller. The Limiter interface is
// the injection point: the in-memory fixed window below is only correct for a
// single process, so a horizontally scaled deployment swaps in an
// implementation backed by a shared store.
package ratelimit

import (
	"sync"
	"time"
)

type Limiter interface {
	// Allow reports whether the caller identified by key may proceed, and
	// consumes one slot when it may.
	Allow(key string) bool
}

type window struct {
	start time.Time
	count int
}

// FixedWindow counts calls per key inside a fixed time window. Counters are
// process-local and reset only when the window rolls over or the process
// restarts.
type FixedWindow struct {
	limit  int
	period time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

func NewFixedWindow(limit int, period time.Duration) *FixedWindow {
	return &FixedWindow{
		limit:   limit,
		period:  period,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

func (f *FixedWindow) Allow(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	w, ok := f.windows[key]
	if !ok || now.Sub(w.start) >= f.period {
		f.windows[key] = &window{start: now, count: 1}
		return true
	}
	if w.count >= f.limit {
		return false
	}
	w.count++
	return true
}
