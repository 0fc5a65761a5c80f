package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/argus/internal/contracts"
)

// RetryPolicy expresses the bounded retry discipline as data so tests
// can inject a fake sleep instead of waiting on real backoff.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Sleep        func(time.Duration)
}

// DefaultRetryPolicy returns the standard gateway retry policy
func DefaultRetryPolicy(maxAttempts int, initialDelay time.Duration) RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  maxAttempts,
		InitialDelay: initialDelay,
		MaxDelay:     10 * time.Second,
		Sleep:        time.Sleep,
	}
}

// Do runs fn with exponential backoff until it succeeds, returns a
// permanent error, or the attempt budget is exhausted.
// ErrInvalidData is permanent: 잘못된 데이터는 재시도하지 않음.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	delay := p.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %v", contracts.ErrTimeout, err)
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		// Permanent failures are never retried
		if errors.Is(lastErr, contracts.ErrInvalidData) || errors.Is(lastErr, contracts.ErrInvalidInput) {
			return lastErr
		}

		if errors.Is(lastErr, context.DeadlineExceeded) || errors.Is(lastErr, context.Canceled) {
			return fmt.Errorf("%w: %v", contracts.ErrTimeout, lastErr)
		}

		if attempt == p.MaxAttempts {
			break
		}

		p.Sleep(delay)

		// Exponential backoff
		delay *= 2
		if delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}

	return fmt.Errorf("%w: %d attempts: %v", contracts.ErrFetchFailed, p.MaxAttempts, lastErr)
}
