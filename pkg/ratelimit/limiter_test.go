package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestLimiter(t *testing.T, max int, duration time.Duration) *Limiter {
	t.Helper()

	l := New(max, duration, zerolog.Nop())
	t.Cleanup(l.Close)
	return l
}

func TestLimiter_AllowsUpToMax(t *testing.T) {
	l := newTestLimiter(t, 100, 15*time.Minute)

	for i := 1; i <= 100; i++ {
		res := l.Check("10.0.0.1")
		if !res.Allowed {
			t.Fatalf("request %d blocked, want allowed", i)
		}
		if res.Remaining != 100-i {
			t.Errorf("request %d: Remaining = %d, want %d", i, res.Remaining, 100-i)
		}
	}

	// The 101st call within the window is blocked.
	res := l.Check("10.0.0.1")
	if res.Allowed {
		t.Error("101st request allowed, want blocked")
	}
	if res.Remaining != 0 {
		t.Errorf("blocked Remaining = %d, want 0", res.Remaining)
	}
}

func TestLimiter_BlockedKeepsResetAt(t *testing.T) {
	l := newTestLimiter(t, 2, time.Minute)

	l.Check("c")
	second := l.Check("c")
	blocked := l.Check("c")

	if !blocked.ResetAt.Equal(second.ResetAt) {
		t.Errorf("ResetAt changed on blocked request: %v vs %v", blocked.ResetAt, second.ResetAt)
	}
	if wait := blocked.RetryAfter(time.Now()); wait <= 0 || wait > time.Minute {
		t.Errorf("RetryAfter = %v, want within (0, 1m]", wait)
	}
}

func TestLimiter_WindowReset(t *testing.T) {
	l := newTestLimiter(t, 2, time.Minute)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return base }

	l.Check("c")
	l.Check("c")
	if res := l.Check("c"); res.Allowed {
		t.Fatal("third request in window allowed, want blocked")
	}

	// Crossing resetAt starts a fresh window with count 1.
	l.now = func() time.Time { return base.Add(61 * time.Second) }
	res := l.Check("c")
	if !res.Allowed {
		t.Fatal("request after window reset blocked")
	}
	if res.Remaining != 1 {
		t.Errorf("Remaining after reset = %d, want 1 (count reset to 1)", res.Remaining)
	}
	if !res.ResetAt.Equal(base.Add(61*time.Second + time.Minute)) {
		t.Errorf("new ResetAt = %v, want window anchored at current time", res.ResetAt)
	}
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := newTestLimiter(t, 1, time.Minute)

	if res := l.Check("a"); !res.Allowed {
		t.Fatal("first request for a blocked")
	}
	if res := l.Check("a"); res.Allowed {
		t.Fatal("second request for a allowed")
	}
	if res := l.Check("b"); !res.Allowed {
		t.Error("request for b blocked by a's window")
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := newTestLimiter(t, 1, time.Minute)

	l.Check("c")
	l.Reset("c")

	if res := l.Check("c"); !res.Allowed {
		t.Error("request after Reset blocked")
	}
}

func TestLimiter_Stats(t *testing.T) {
	l := newTestLimiter(t, 10, time.Minute)

	if _, _, ok := l.Stats("c"); ok {
		t.Error("Stats for untracked client = ok")
	}

	l.Check("c")
	l.Check("c")

	count, resetAt, ok := l.Stats("c")
	if !ok {
		t.Fatal("Stats for tracked client = not ok")
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if resetAt.IsZero() {
		t.Error("resetAt is zero")
	}
}

func TestLimiter_RemoveExpired(t *testing.T) {
	l := newTestLimiter(t, 10, time.Minute)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return base }

	for i := 0; i < 5; i++ {
		l.Check(fmt.Sprintf("client-%d", i))
	}

	l.now = func() time.Time { return base.Add(2 * time.Minute) }
	l.Check("survivor")

	removed, remaining := l.removeExpired()
	if removed != 5 {
		t.Errorf("removed = %d, want 5", removed)
	}
	if remaining != 1 {
		t.Errorf("remaining = %d, want 1", remaining)
	}
}
