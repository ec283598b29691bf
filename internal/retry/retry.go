// Package retry runs an operation until it succeeds or a Policy gives up.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 1 * time.Second
)

// ErrExhausted is returned (wrapping the last failure) when every attempt failed.
var ErrExhausted = errors.New("retry attempts exhausted")

// BackoffFunc returns the wait before the attempt following the given (1-based) attempt.
type BackoffFunc func(attempt int) time.Duration

// Linear waits base × attempt: 1s, 2s, 3s... for a 1s base.
func Linear(base time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return base * time.Duration(attempt)
	}
}

// Exponential doubles the wait on every attempt, capped at max.
func Exponential(base, max time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		delay := base * time.Duration(1<<uint(attempt-1))
		if delay > max || delay <= 0 {
			return max
		}
		return delay
	}
}

// Policy describes how often and how patiently an operation is retried.
type Policy struct {
	MaxAttempts int
	Backoff     BackoffFunc
	Clock       clockwork.Clock
	// Retryable decides whether a failure is worth another attempt.
	// nil retries everything except Permanent errors. A cancelled or expired
	// caller context always stops the loop.
	Retryable func(error) bool
	// OnRetry is called before each wait, mainly for logging.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// Default returns the catalog policy: 3 attempts, linear 1s backoff, wall clock.
func Default() Policy {
	return Policy{
		MaxAttempts: defaultMaxAttempts,
		Backoff:     Linear(defaultBaseDelay),
		Clock:       clockwork.NewRealClock(),
	}
}

type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// Do calls op until it returns nil, a non-retryable error, or attempts run out.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context, attempt int) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	clock := p.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := op(ctx, attempt)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return err
		}
		if !p.retryable(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		delay := p.delay(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, delay, err)
		}
		if err := wait(ctx, clock, delay); err != nil {
			return err
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempts, lastErr)
}

func (p Policy) retryable(err error) bool {
	// Caller cancellation is handled in Do; a deadline error reaching this
	// point is a transport timeout (http.Client.Timeout).
	if IsPermanent(err) {
		return false
	}
	if p.Retryable != nil {
		return p.Retryable(err)
	}
	return true
}

func (p Policy) delay(attempt int) time.Duration {
	if p.Backoff == nil {
		return Linear(defaultBaseDelay)(attempt)
	}
	return p.Backoff(attempt)
}

func wait(ctx context.Context, clock clockwork.Clock, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.Chan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
