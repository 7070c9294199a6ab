// retry.go — advisory-hint-aware retry helper for async tasks.
//
// The core classifies and annotates; this helper is the one collaborator in
// the module that executes policy. It re-invokes a task factory while the
// classified error is transient and the backoff policy permits, honoring a
// RetryAfterHint when the error carries one.
//
// The policy type is backoff.BackOff, so callers plug in exponential,
// constant, or capped strategies without this package knowing the difference.
package xgxrail

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// SleepFunc blocks for d or until ctx is done, whichever comes first.
type SleepFunc func(ctx context.Context, d time.Duration) error

// defaultSleep is a timer-based SleepFunc honoring cancellation.
func defaultSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type retryConfig struct {
	sleep    SleepFunc
	classify func(error) bool
}

// RetryOption customizes Retry.
type RetryOption func(*retryConfig)

// WithSleep substitutes the sleep primitive (fake clocks in tests, rate
// limiters in production).
func WithSleep(f SleepFunc) RetryOption {
	return func(c *retryConfig) { c.sleep = f }
}

// WithClassifier substitutes the transience classifier (default IsTransient).
func WithClassifier(f func(error) bool) RetryOption {
	return func(c *retryConfig) { c.classify = f }
}

// Retry runs fresh tasks from factory until one succeeds, the error
// classifies permanent, the policy stops, or ctx is cancelled.
//
// Each attempt's task is a new instance, so single-shot state inside the
// task (lazy contexts included) is never reused. A MaxRetriesHint on the
// error caps the attempt count below whatever the policy would allow. The
// final failure is annotated with the attempt number that produced it.
func Retry[T any](ctx context.Context, factory func() Task[T], policy backoff.BackOff, opts ...RetryOption) (T, error) {
	cfg := retryConfig{sleep: defaultSleep, classify: IsTransient}
	for _, opt := range opts {
		opt(&cfg)
	}
	policy.Reset()

	var attempt uint32
	for {
		v, err := factory()(ctx)
		if err == nil {
			return v, nil
		}

		giveUp := func() (T, error) {
			var zero T
			return zero, Wrap(err, fieldRetryAttempt.Context(attempt))
		}

		if !cfg.classify(err) {
			return giveUp()
		}
		if limit, ok := MaxRetriesHintOf(err); ok && attempt >= limit {
			return giveUp()
		}
		if ctx.Err() != nil {
			return giveUp()
		}

		delay := policy.NextBackOff()
		if delay == backoff.Stop {
			return giveUp()
		}
		if hint, ok := RetryAfterHintOf(err); ok && hint > delay {
			delay = hint
		}
		if serr := cfg.sleep(ctx, delay); serr != nil {
			var zero T
			return zero, Wrap(err, fieldRetryAttempt.Context(attempt)).WithContext(Message(serr.Error()))
		}
		attempt++
	}
}

// RetryPipeline is Retry finalized through an async pipeline, so the failure
// side is a *ComposableError with the attempt metadata already attached.
func RetryPipeline[T any](ctx context.Context, factory func() Task[T], policy backoff.BackOff, opts ...RetryOption) (T, error) {
	return Async(func(ctx context.Context) (T, error) {
		return Retry(ctx, factory, policy, opts...)
	}).Finish(ctx)
}
