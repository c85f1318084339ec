// Package ratelimit implements the per-client request limiter applied to
// the write-heavy API routes. It counts requests in fixed time windows
// keyed by a client identifier (IP-derived) and sweeps expired windows in
// the background to bound memory.
//
// This is a fixed-window algorithm, not a true sliding log or token
// bucket: bursts straddling a window boundary can transiently reach twice
// the nominal rate. That approximation is acceptable at this scale; the
// Check contract is backend-agnostic so a stricter algorithm could swap in.
package ratelimit

import "time"

// Result is the outcome of a limit check for one request.
type Result struct {
	// Allowed is false once the client has exhausted the window.
	Allowed bool

	// Remaining is the number of requests left in the current window.
	Remaining int

	// ResetAt is when the current window ends and the count resets.
	ResetAt time.Time
}

// RetryAfter returns how long the client should wait before retrying.
// Returns 0 if the window has already reset.
func (r Result) RetryAfter(now time.Time) time.Duration {
	wait := r.ResetAt.Sub(now)
	if wait < 0 {
		return 0
	}
	return wait
}

// window is the per-client counter state. The invariant is that count
// never exceeds the limiter maximum while now < resetAt; crossing resetAt
// starts a fresh window with count 1.
type window struct {
	count   int
	resetAt time.Time
}

func (w *window) expired(now time.Time) bool {
	return now.After(w.resetAt)
}
