package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RetryPolicy describes retry with exponential backoff: after the first
// attempt, up to Retries more are made, waiting InitialDelay before the
// first retry and doubling the wait each time.
type RetryPolicy struct {
	Retries      int
	InitialDelay time.Duration
}

// DefaultRetryPolicy is three retries starting at two seconds.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Retries: 3, InitialDelay: 2 * time.Second}
}

// Attempts returns the total number of calls the policy allows.
func (p RetryPolicy) Attempts() int {
	if p.Retries < 0 {
		return 1
	}
	return 1 + p.Retries
}

// Retry calls fn until it succeeds or the policy is exhausted. The last
// error is returned. A cancelled ctx stops the loop between attempts, and
// permanent errors (ErrDisabled) are returned without retrying.
func Retry[T any](ctx context.Context, p RetryPolicy, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	delay := p.InitialDelay
	var lastErr error

	for attempt := 0; attempt < p.Attempts(); attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
			delay *= 2
		}

		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		if isPermanent(err) {
			return zero, err
		}
	}
	return zero, fmt.Errorf("%w after %d attempts: %w", ErrRetryExhausted, p.Attempts(), lastErr)
}

// isPermanent reports errors that another attempt cannot fix.
func isPermanent(err error) bool {
	return errors.Is(err, ErrDisabled)
}
