package retry

import (
	"context"
	"time"
)

// Policy controls how many times an operation runs and how long to wait
// between failed attempts. Delay receives the 1-based attempt that just
// failed.
type Policy struct {
	MaxAttempts int
	Delay       func(attempt int) time.Duration
}

func Fixed(maxAttempts int, delay time.Duration) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		Delay: func(int) time.Duration {
			return delay
		},
	}
}

func Backoff(maxAttempts int, base, max time.Duration) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		Delay: func(attempt int) time.Duration {
			if attempt < 1 {
				attempt = 1
			}
			delay := base << (attempt - 1)
			if delay > max || delay <= 0 {
				delay = max
			}
			return delay
		},
	}
}

// Do runs fn until it returns nil or MaxAttempts is exhausted, sleeping
// between failed attempts but not after the last one. A context cancelled
// during the wait stops the loop with ctx.Err().
func Do(ctx context.Context, p Policy, fn func(ctx context.Context, attempt int) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn(ctx, attempt)
		if lastErr == nil {
			return nil
		}
		if attempt < attempts {
			if err := Sleep(ctx, p.delay(attempt)); err != nil {
				return err
			}
		}
	}
	return lastErr
}

func (p Policy) delay(attempt int) time.Duration {
	if p.Delay == nil {
		return 0
	}
	return p.Delay(attempt)
}

func Sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
