package ratelimit

import (
	"sync"
	"time"
)

// Limiter defines the interface for client-side rate limiting.
type Limiter interface {
	// Allow checks if a request is allowed under the current rate limit
	Allow() bool
	// NextAllowed returns how long until the next request would be
	// allowed; zero when a request is allowed now
	NextAllowed() time.Duration
	// Reset resets the rate limiter state
	Reset()
}

// SlidingWindow tracks request timestamps within a moving time window.
// It models the API's per-window request ceiling, which applies
// independently of the monthly post quota.
type SlidingWindow struct {
	windowSize  time.Duration
	maxRequests int
	requests    []time.Time
	mu          sync.Mutex
}

// NewSlidingWindow creates a sliding window limiter allowing
// maxRequests per windowSize.
func NewSlidingWindow(maxRequests int, windowSize time.Duration) *SlidingWindow {
	return &SlidingWindow{
		windowSize:  windowSize,
		maxRequests: maxRequests,
		requests:    make([]time.Time, 0, maxRequests),
	}
}

// Allow checks if a request can proceed and records it if so.
func (sw *SlidingWindow) Allow() bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := time.Now()
	sw.cleanOldRequests(now)

	if len(sw.requests) < sw.maxRequests {
		sw.requests = append(sw.requests, now)
		return true
	}

	return false
}

// NextAllowed reports the wait until the oldest in-window request
// falls out of the window.
func (sw *SlidingWindow) NextAllowed() time.Duration {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := time.Now()
	sw.cleanOldRequests(now)

	if len(sw.requests) < sw.maxRequests {
		return 0
	}

	wait := sw.windowSize - now.Sub(sw.requests[0])
	if wait < 0 {
		return 0
	}
	return wait
}

// Reset clears all recorded requests.
func (sw *SlidingWindow) Reset() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.requests = sw.requests[:0]
}

// cleanOldRequests removes requests outside the sliding window.
func (sw *SlidingWindow) cleanOldRequests(now time.Time) {
	cutoff := now.Add(-sw.windowSize)

	i := 0
	for i < len(sw.requests) && sw.requests[i].Before(cutoff) {
		i++
	}

	if i > 0 {
		copy(sw.requests, sw.requests[i:])
		sw.requests = sw.requests[:len(sw.requests)-i]
	}
}
