package harvest

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Limiter spaces requests by a random politeness delay between minDelay
// and maxDelay, shared across all sources hitting the same client.
type Limiter struct {
	mu       sync.Mutex
	minDelay time.Duration
	maxDelay time.Duration
	next     time.Time
}

// NewLimiter creates a politeness limiter.
func NewLimiter(minDelay, maxDelay time.Duration) *Limiter {
	return &Limiter{
		minDelay: minDelay,
		maxDelay: maxDelay,
	}
}

// Wait blocks until the next request slot, or until the context is done.
// The first call passes immediately.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	now := time.Now()
	wait := l.next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	l.next = now.Add(wait + l.randomDelay())
	l.mu.Unlock()

	if wait == 0 {
		return nil
	}

	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// randomDelay picks a delay uniformly in [minDelay, maxDelay].
func (l *Limiter) randomDelay() time.Duration {
	span := int64(l.maxDelay - l.minDelay)
	if span <= 0 {
		return l.minDelay
	}

	var b [8]byte
	_, _ = rand.Read(b[:])
	n := int64(binary.LittleEndian.Uint64(b[:]) >> 1)
	return l.minDelay + time.Duration(n%span)
}
