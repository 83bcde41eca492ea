// Package retry runs provider calls under an exponential backoff policy.
package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy describes how a failing operation is retried.
type Policy struct {
	// Name labels log lines, e.g. "overpass".
	Name string
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int
	// InitialInterval is the wait after the first failure; each later wait
	// is multiplied by Multiplier.
	InitialInterval time.Duration
	Multiplier      float64
	// MaxInterval caps a single wait. Zero means no cap.
	MaxInterval time.Duration
	// AttemptTimeout returns the deadline of the n-th attempt (0-based).
	// Nil means the attempt is only bounded by the caller's context.
	AttemptTimeout func(attempt int) time.Duration
	// Retryable reports whether an error is worth another try.
	// Nil retries every error.
	Retryable func(err error) bool
}

// Overpass returns the policy used for Overpass API queries:
// 5 attempts, waits of 3, 6, 12 and 24 seconds, and a per-attempt timeout
// growing from 45 seconds by 20 seconds per attempt.
func Overpass(retryable func(error) bool) Policy {
	return Policy{
		Name:            "overpass",
		MaxAttempts:     5,
		InitialInterval: 3 * time.Second,
		Multiplier:      2,
		AttemptTimeout: func(attempt int) time.Duration {
			return time.Duration(45+attempt*20) * time.Second
		},
		Retryable: retryable,
	}
}

// Nominatim returns the policy used for geocoding: 3 attempts with waits of
// 2 and 4 seconds and a 15 second per-attempt timeout.
func Nominatim(retryable func(error) bool) Policy {
	return Policy{
		Name:            "nominatim",
		MaxAttempts:     3,
		InitialInterval: 2 * time.Second,
		Multiplier:      2,
		AttemptTimeout:  func(int) time.Duration { return 15 * time.Second },
		Retryable:       retryable,
	}
}

// GeoNames returns the policy used for timezone lookups: 3 attempts with
// waits of 1 and 2 seconds and a 10 second per-attempt timeout.
func GeoNames(retryable func(error) bool) Policy {
	return Policy{
		Name:            "geonames",
		MaxAttempts:     3,
		InitialInterval: time.Second,
		Multiplier:      2,
		AttemptTimeout:  func(int) time.Duration { return 10 * time.Second },
		Retryable:       retryable,
	}
}

// permanent marks an error that must not be retried.
type permanent struct{ err error }

func (p *permanent) Error() string { return p.err.Error() }
func (p *permanent) Unwrap() error { return p.err }

// Permanent wraps err so that Do returns it without retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanent{err: err}
}

// Do calls op until it succeeds, returns a non-retryable error, runs out of
// attempts, or ctx is done. The last error is returned unwrapped.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	attempt := 0
	operation := func() error {
		n := attempt
		attempt++

		actx := ctx
		if p.AttemptTimeout != nil {
			var cancel context.CancelFunc
			actx, cancel = context.WithTimeout(ctx, p.AttemptTimeout(n))
			defer cancel()
		}

		err := op(actx)
		if err == nil {
			return nil
		}
		var perm *permanent
		if errors.As(err, &perm) {
			return backoff.Permanent(perm.err)
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		slog.Warn("retrying request", "provider", p.Name, "attempt", attempt, "wait", wait, "error", err)
	}

	return backoff.RetryNotify(operation, backoff.WithContext(p.schedule(attempts), ctx), notify)
}

func (p Policy) schedule(attempts int) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.InitialInterval
	eb.Multiplier = p.Multiplier
	if eb.Multiplier < 1 {
		eb.Multiplier = 1
	}
	eb.RandomizationFactor = 0
	eb.MaxInterval = p.MaxInterval
	if eb.MaxInterval == 0 {
		eb.MaxInterval = 24 * time.Hour
	}
	eb.MaxElapsedTime = 0
	eb.Reset()
	return backoff.WithMaxRetries(eb, uint64(attempts-1))
}
