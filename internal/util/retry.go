package util

import (
	"context"
	"fmt"
	"time"
)

// Retry calls fn up to maxAttempts times, doubling the delay after each
// failure starting at baseDelay. It returns the first successful result or
// the last error wrapped with the attempt count. Cancellation of ctx stops
// the wait between attempts.
func Retry[T any](ctx context.Context, maxAttempts int, baseDelay time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var (
		zero T
		err  error
	)
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	delay := baseDelay

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var v T
		v, err = fn(ctx)
		if err == nil {
			return v, nil
		}
		if attempt == maxAttempts {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}

	return zero, fmt.Errorf("after %d attempts: %w", maxAttempts, err)
}
