package integrations

import (
	"context"
	"errors"
	"time"

	"github.com/cenk/backoff"
)

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (network timeouts, 5xx responses) with this type
// so that [Retry] knows to attempt the operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a RetryableError. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err is wrapped with RetryableError.
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Retry executes fn up to attempts times with exponential backoff starting
// at initial. It only retries errors wrapped with [RetryableError]; other
// errors are returned immediately. Returns the last error if all attempts
// fail, or ctx.Err() if cancelled while waiting.
func Retry(ctx context.Context, attempts int, initial time.Duration, fn func() error) error {
	attempts = max(attempts, 1)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.MaxInterval = 30 * time.Second
	b.Multiplier = 2.0
	b.MaxElapsedTime = 0
	b.Reset()

	var lastErr error
	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			delay := b.NextBackOff()
			if delay == backoff.Stop {
				break
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return lastErr
}
