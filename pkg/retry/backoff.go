package retry

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// BackoffStrategy computes how long to wait before a retry attempt. The
// delay is a pure function of the attempt number, so a single strategy value
// can serve many concurrent fetches.
type BackoffStrategy interface {
	// NextDelay returns the delay to apply after attempt (1-based) failed.
	NextDelay(attempt int) time.Duration
}

// ExponentialBackoff grows the delay by Multiplier on every failed attempt,
// capped at MaxDelay. JitterFactor (0.0 to 1.0) shifts each delay by a random
// fraction of itself so comment fetches that failed together do not retry
// together.
type ExponentialBackoff struct {
	BaseDelay    time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	JitterFactor float64
}

// DefaultExponentialBackoff matches the retry defaults in pkg/config.
func DefaultExponentialBackoff() *ExponentialBackoff {
	return &ExponentialBackoff{
		BaseDelay:    1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.1,
	}
}

func (eb *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	delay := float64(eb.BaseDelay) * math.Pow(eb.Multiplier, float64(attempt-1))
	return clampAndJitter(delay, float64(eb.MaxDelay), eb.JitterFactor)
}

// LinearBackoff adds Increment to the delay after each failed attempt,
// capped at MaxDelay.
type LinearBackoff struct {
	BaseDelay    time.Duration
	MaxDelay     time.Duration
	Increment    time.Duration
	JitterFactor float64
}

// DefaultLinearBackoff is the gentler alternative to the exponential
// default: one extra second per attempt.
func DefaultLinearBackoff() *LinearBackoff {
	return &LinearBackoff{
		BaseDelay:    1 * time.Second,
		MaxDelay:     30 * time.Second,
		Increment:    1 * time.Second,
		JitterFactor: 0.1,
	}
}

func (lb *LinearBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	delay := float64(lb.BaseDelay + lb.Increment*time.Duration(attempt-1))
	return clampAndJitter(delay, float64(lb.MaxDelay), lb.JitterFactor)
}

// ConstantBackoff waits the same Delay before every retry. Tests use it to
// keep retry timing flat.
type ConstantBackoff struct {
	Delay time.Duration
}

func (cb *ConstantBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return cb.Delay
}

// clampAndJitter caps delay at limit, then shifts it by a random amount of
// up to ±factor of itself. Never returns a negative duration.
func clampAndJitter(delay, limit, factor float64) time.Duration {
	if delay > limit {
		delay = limit
	}
	if factor > 0 {
		jitter := delay * factor
		delay += rand.Float64()*2*jitter - jitter
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}

// Wait sleeps for delay, or returns the context's error if the caller is
// cancelled first.
func Wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
