package dispatch

import (
	"math"
	"math/rand"
	"time"
)

// BackoffFunc returns the wait duration for a retry attempt.
// The attempt parameter is one-based (1 for first retry, 2 for second, etc.).
type BackoffFunc func(attempt int) time.Duration

// ConstantBackoff creates a backoff function that returns a constant duration
// with optional jitter. The jitter parameter controls randomization:
// 0.0 = no jitter, 0.2 = ±20% variation.
func ConstantBackoff(delay time.Duration, jitter float64) BackoffFunc {
	applyJitter := newApplyJitterFunc(jitter)
	return func(attempt int) time.Duration {
		return applyJitter(delay)
	}
}

// ExponentialBackoff creates a backoff function with exponential growth and
// jitter. Each retry attempt waits initialDelay * factor^(attempt-1), capped
// at maxDelay (0 = no limit), with jitter applied after capping.
func ExponentialBackoff(
	initialDelay time.Duration,
	factor float64,
	maxDelay time.Duration,
	jitter float64,
) BackoffFunc {
	applyJitter := newApplyJitterFunc(jitter)
	return func(attempt int) time.Duration {
		backoff := time.Duration(float64(initialDelay) * math.Pow(factor, float64(attempt-1)))

		if maxDelay > 0 && backoff > maxDelay {
			backoff = maxDelay
		}

		return applyJitter(backoff)
	}
}

func newApplyJitterFunc(jitter float64) func(d time.Duration) time.Duration {
	if jitter < 0 {
		jitter = 0
	}
	if jitter > 1 {
		jitter = 1
	}
	return func(d time.Duration) time.Duration {
		jitterFactor := 1.0 + (rand.Float64()*2*jitter - jitter)
		return time.Duration(float64(d) * jitterFactor)
	}
}
