package cache

import (
	"context"
	"errors"
	"time"
)

// transientError marks a failure worth retrying, such as a refused
// connection while Redis is starting.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient marks err as retryable by [Retry]. Nil stays nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err was marked with [Transient].
func IsTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// Backoff configures [Retry].
type Backoff struct {
	Attempts int
	Delay    time.Duration // first delay, doubled after every attempt
}

// DefaultBackoff is used when connecting to Redis.
var DefaultBackoff = Backoff{Attempts: 4, Delay: 250 * time.Millisecond}

// Retry calls fn until it succeeds, returns an error not marked transient,
// or b.Attempts calls were made. The last error is returned unwrapped.
func Retry(ctx context.Context, b Backoff, fn func() error) error {
	delay := b.Delay
	var err error
	for i := range max(b.Attempts, 1) {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
		if err = fn(); err == nil || !IsTransient(err) {
			return err
		}
	}
	return errors.Unwrap(err)
}
