package ratelimit

import (
	"sync"
	"time"
)

// Limiter paces actions against the render surface.
type Limiter interface {
	// Allow reports whether an action may proceed right now.
	Allow() bool
	// Wait blocks until the limiter allows another action.
	Wait()
	// Reset restores the limiter to its initial state.
	Reset()
}

// TokenBucket is a token bucket limiter. The paginator uses a single-token
// bucket as the fixed settle delay between a reveal action and the read that
// follows it.
type TokenBucket struct {
	capacity     int
	tokens       int
	refillPeriod time.Duration
	lastRefill   time.Time
	mu           sync.Mutex
}

// NewTokenBucket creates a token bucket that starts full.
func NewTokenBucket(capacity int, refillPeriod time.Duration) *TokenBucket {
	return &TokenBucket{
		capacity:     capacity,
		tokens:       capacity,
		refillPeriod: refillPeriod,
		lastRefill:   time.Now(),
	}
}

// NewRevealPacer creates the pacer used between reveal attempts: a
// single-token bucket that starts empty, so the very first Wait already
// blocks for a full delay. Content revealed by a scroll needs that long to
// settle before it is read.
func NewRevealPacer(delay time.Duration) *TokenBucket {
	tb := NewTokenBucket(1, delay)
	tb.tokens = 0
	return tb
}

// Allow consumes a token if one is available.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// Wait blocks until a token is available.
func (tb *TokenBucket) Wait() {
	for !tb.Allow() {
		tb.mu.Lock()
		timeUntilRefill := tb.refillPeriod - time.Since(tb.lastRefill)
		tb.mu.Unlock()

		if timeUntilRefill > 0 {
			time.Sleep(timeUntilRefill)
		} else {
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// Reset restores the bucket to full capacity.
func (tb *TokenBucket) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.tokens = tb.capacity
	tb.lastRefill = time.Now()
}

// refill tops the bucket up once a full period has elapsed.
func (tb *TokenBucket) refill() {
	now := time.Now()
	if now.Sub(tb.lastRefill) >= tb.refillPeriod {
		tb.tokens = tb.capacity
		tb.lastRefill = now
	}
}

// Nop is a limiter that never blocks. Tests use it to run pagination loops
// at full speed.
type Nop struct{}

func (Nop) Allow() bool { return true }
func (Nop) Wait()       {}
func (Nop) Reset()      {}
