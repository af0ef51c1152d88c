// Package ratelimit provides client-side rate limiting for the search
// loop.
//
// Recent search enforces a request ceiling per 15-minute window. The
// sliding-window limiter tracks requests within that moving window so
// the engine can avoid burning a request it knows will be throttled;
// the authoritative signal remains the API's 429 response.
//
// Interface:
//
// All limiters implement the Limiter interface:
//   - Allow() bool - check if a request is allowed, recording it if so
//   - NextAllowed() time.Duration - wait until the next allowed request
//   - Reset() - reset the limiter state
//
// Usage:
//
//	// 450 requests per 15 minutes
//	limiter := ratelimit.NewSlidingWindow(450, 15*time.Minute)
//
//	if limiter.Allow() {
//	    // proceed with request
//	} else {
//	    time.Sleep(limiter.NextAllowed())
//	}
package ratelimit
