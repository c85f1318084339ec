package ratelimit

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for rate limit decisions.
var (
	rateLimitAllowedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_rate_limit_allowed_total",
		Help: "Total number of requests allowed by the rate limiter",
	})

	rateLimitBlockedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_rate_limit_blocked_total",
		Help: "Total number of requests blocked by the rate limiter",
	})

	rateLimitClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "blog_rate_limit_clients",
		Help: "Number of client windows currently tracked",
	})
)

// DefaultSweepInterval is how often expired windows are removed.
const DefaultSweepInterval = time.Minute

// Limiter tracks request counts per client identifier in fixed windows.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window

	max      int
	duration time.Duration
	logger   zerolog.Logger

	stop chan struct{}
	once sync.Once
	now  func() time.Time
}

// New creates a limiter allowing max requests per client within each
// window of the given duration, and starts the background sweep. Callers
// must Close the limiter to stop the sweep goroutine.
func New(max int, duration time.Duration, logger zerolog.Logger) *Limiter {
	l := &Limiter{
		windows:  make(map[string]*window),
		max:      max,
		duration: duration,
		logger:   logger,
		stop:     make(chan struct{}),
		now:      time.Now,
	}

	go l.sweepLoop(DefaultSweepInterval)

	return l
}

// Check records one request for the client and reports whether it is
// allowed. A new or expired window resets the count to 1; within a window
// the count increments up to the maximum, after which requests are blocked
// until ResetAt passes.
func (l *Limiter) Check(clientID string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	w, ok := l.windows[clientID]
	if !ok || w.expired(now) {
		w = &window{count: 1, resetAt: now.Add(l.duration)}
		l.windows[clientID] = w
		rateLimitAllowedTotal.Inc()

		return Result{
			Allowed:   true,
			Remaining: l.max - 1,
			ResetAt:   w.resetAt,
		}
	}

	if w.count < l.max {
		w.count++
		rateLimitAllowedTotal.Inc()

		return Result{
			Allowed:   true,
			Remaining: l.max - w.count,
			ResetAt:   w.resetAt,
		}
	}

	rateLimitBlockedTotal.Inc()
	l.logger.Warn().
		Str("client_id", clientID).
		Time("reset_at", w.resetAt).
		Msg("Rate limit exceeded")

	return Result{
		Allowed:   false,
		Remaining: 0,
		ResetAt:   w.resetAt,
	}
}

// Limit returns the configured per-window maximum.
func (l *Limiter) Limit() int {
	return l.max
}

// Reset forgets the window for a client, if any.
func (l *Limiter) Reset(clientID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.windows, clientID)
}

// Stats returns the current count and reset time for a client. Returns
// false if the client has no live window.
func (l *Limiter) Stats(clientID string) (count int, resetAt time.Time, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, found := l.windows[clientID]
	if !found || w.expired(l.now()) {
		delete(l.windows, clientID)
		return 0, time.Time{}, false
	}
	return w.count, w.resetAt, true
}

// Close stops the background sweep. Safe to call more than once.
func (l *Limiter) Close() {
	l.once.Do(func() { close(l.stop) })
}

func (l *Limiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			removed, remaining := l.removeExpired()
			if removed > 0 {
				l.logger.Debug().
					Int("removed", removed).
					Int("remaining", remaining).
					Msg("Swept expired rate limit windows")
			}
		}
	}
}

// removeExpired drops all windows whose reset time has passed and returns
// how many were removed and how many remain.
func (l *Limiter) removeExpired() (removed, remaining int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for clientID, w := range l.windows {
		if w.expired(now) {
			delete(l.windows, clientID)
			removed++
		}
	}

	remaining = len(l.windows)
	rateLimitClients.Set(float64(remaining))

	return removed, remaining
}
