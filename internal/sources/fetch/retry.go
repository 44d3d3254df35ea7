package fetch

import (
	"context"
	"errors"
	"math"
	"time"
)

const (
	// DefaultMaxAttempts is the retry budget for one fetch.
	DefaultMaxAttempts = 3

	// DefaultMinBackoff is the shortest wait between attempts.
	DefaultMinBackoff = 4 * time.Second

	// DefaultMaxBackoff is the longest wait between attempts.
	DefaultMaxBackoff = 10 * time.Second
)

// RetryPolicy describes how often and how patiently a fetch is retried.
// The wait after the n-th failed attempt is Multiplier * 2^(n-1) seconds,
// clamped to [MinBackoff, MaxBackoff].
type RetryPolicy struct {
	MaxAttempts int
	Multiplier  float64
	MinBackoff  time.Duration
	MaxBackoff  time.Duration
}

// DefaultRetryPolicy returns 3 attempts with backoff between 4s and 10s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		Multiplier:  1,
		MinBackoff:  DefaultMinBackoff,
		MaxBackoff:  DefaultMaxBackoff,
	}
}

// NoBackoff returns a policy with the default budget and no waiting. Useful for testing.
func NoBackoff() RetryPolicy {
	return RetryPolicy{MaxAttempts: DefaultMaxAttempts}
}

// Backoff returns the wait after the given 1-based failed attempt.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := time.Duration(p.Multiplier * math.Pow(2, float64(attempt-1)) * float64(time.Second))
	if d < p.MinBackoff {
		d = p.MinBackoff
	}
	if p.MaxBackoff > 0 && d > p.MaxBackoff {
		d = p.MaxBackoff
	}
	return d
}

// Do runs fn until it succeeds, returns a permanent error, or the budget
// is spent. It returns the number of attempts made and the last error.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) (int, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(ctx); err == nil {
			return i, nil
		}
		if !isRetryable(err) || ctx.Err() != nil || i == attempts {
			return i, err
		}

		timer := time.NewTimer(p.Backoff(i))
		select {
		case <-ctx.Done():
			timer.Stop()
			return i, ctx.Err()
		case <-timer.C:
		}
	}
	return attempts, err
}

// permanent marks an error that retrying cannot fix.
type permanent interface {
	Permanent() bool
}

func isRetryable(err error) bool {
	var p permanent
	if errors.As(err, &p) {
		return !p.Permanent()
	}
	return true
}
