package rate

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter: fixed window in-process, para deployments de una sola réplica
// sin Redis. Mismo algoritmo que RedisLimiter, ventana truncada al Window.
type MemoryLimiter struct {
	mu     sync.Mutex
	max    int64
	window time.Duration
	hits   map[string]int64
	starts map[string]time.Time
	now    func() time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		max:    int64(max),
		window: window,
		hits:   make(map[string]int64),
		starts: make(map[string]time.Time),
		now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now().UTC()
	winStart := now.Truncate(l.window)

	if start, ok := l.starts[key]; !ok || !start.Equal(winStart) {
		// Ventana nueva: el contador viejo ya no cuenta.
		l.starts[key] = winStart
		l.hits[key] = 0
	}
	l.hits[key]++

	hits := l.hits[key]
	allowed := hits <= l.max
	remaining := l.max - hits
	if remaining < 0 {
		remaining = 0
	}

	res := Result{
		Allowed:     allowed,
		Remaining:   remaining,
		CurrentHits: hits,
	}
	if !allowed {
		res.RetryAfter = winStart.Add(l.window).Sub(now)
	}
	return res, nil
}
