package rate

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiterEnforcesMax(t *testing.T) {
	l := NewMemoryLimiter(3, time.Minute)
	base := time.Date(2025, 6, 1, 12, 0, 30, 0, time.UTC)
	l.now = func() time.Time { return base }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := l.Allow(ctx, "ip-1")
		if err != nil || !res.Allowed {
			t.Fatalf("hit %d: allowed=%v err=%v", i+1, res.Allowed, err)
		}
	}

	res, _ := l.Allow(ctx, "ip-1")
	if res.Allowed {
		t.Fatal("fourth hit should be rejected")
	}
	if res.RetryAfter <= 0 || res.RetryAfter > time.Minute {
		t.Fatalf("RetryAfter fuera de rango: %v", res.RetryAfter)
	}
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	l := NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	if res, _ := l.Allow(ctx, "ip-1"); !res.Allowed {
		t.Fatal("first key should pass")
	}
	if res, _ := l.Allow(ctx, "ip-2"); !res.Allowed {
		t.Fatal("second key should pass")
	}
	if res, _ := l.Allow(ctx, "ip-1"); res.Allowed {
		t.Fatal("first key over limit should fail")
	}
}

func TestMemoryLimiterWindowRolls(t *testing.T) {
	l := NewMemoryLimiter(1, time.Minute)
	base := time.Date(2025, 6, 1, 12, 0, 30, 0, time.UTC)
	l.now = func() time.Time { return base }
	ctx := context.Background()

	_, _ = l.Allow(ctx, "ip-1")
	if res, _ := l.Allow(ctx, "ip-1"); res.Allowed {
		t.Fatal("over limit within window")
	}

	// Ventana siguiente: el contador arranca de cero.
	base = base.Add(time.Minute)
	if res, _ := l.Allow(ctx, "ip-1"); !res.Allowed {
		t.Fatal("new window should reset the counter")
	}
}
