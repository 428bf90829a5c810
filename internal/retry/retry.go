// Package retry runs outbound calls with an explicitly configured attempt
// budget. One attempt means no retry, which is the default everywhere.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Policy configures how an operation is retried.
type Policy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// RetryIf reports whether err is worth another attempt. Nil retries
	// everything except context cancellation.
	RetryIf func(error) bool
}

// Single is the default policy: exactly one attempt.
var Single = Policy{MaxAttempts: 1}

// Attempts returns a policy with the given attempt budget and default intervals.
func Attempts(n int) Policy {
	return Policy{
		MaxAttempts:     n,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

// Do runs fn until it succeeds, the attempt budget is spent, or ctx ends.
// The last error from fn is returned unchanged.
func Do[T any](ctx context.Context, p Policy, fn func(context.Context) (T, error)) (T, error) {
	if p.MaxAttempts <= 1 {
		return fn(ctx)
	}

	retryIf := p.RetryIf
	if retryIf == nil {
		retryIf = defaultRetryIf
	}

	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}

	var op backoff.Operation[T] = func() (T, error) {
		v, err := fn(ctx)
		if err != nil && !retryIf(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}

	v, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(p.MaxAttempts)),
	)
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		err = perm.Unwrap()
	}
	return v, err
}

func defaultRetryIf(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
