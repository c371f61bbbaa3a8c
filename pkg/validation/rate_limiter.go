package validation

import (
	"sync"
	"time"
)

// RateLimiter implements a token bucket per key. The simulator uses it to
// keep repeated warnings from flooding the log at frame rate.
type RateLimiter struct {
	maxEvents int
	window    time.Duration
	buckets   map[string]*bucket
	now       func() time.Time
	mu        sync.Mutex
}

// bucket tracks rate limiting state for a single key
type bucket struct {
	tokens     int
	lastRefill time.Time
}

// NewRateLimiter allows maxEvents per window for each key.
func NewRateLimiter(maxEvents int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		maxEvents: maxEvents,
		window:    window,
		buckets:   make(map[string]*bucket),
		now:       time.Now,
	}
}

// Allow consumes a token for key and reports whether one was available.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.maxEvents, lastRefill: now}
		rl.buckets[key] = b
	}

	// Refill in proportion to the fraction of the window that has passed
	elapsed := now.Sub(b.lastRefill)
	if b.tokens >= rl.maxEvents {
		b.lastRefill = now
	} else if elapsed > 0 {
		tokensToAdd := int(float64(rl.maxEvents) * float64(elapsed) / float64(rl.window))
		if tokensToAdd > 0 {
			b.tokens = min(rl.maxEvents, b.tokens+tokensToAdd)
			b.lastRefill = now
		}
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// Reset forgets every key.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.buckets = make(map[string]*bucket)
}
