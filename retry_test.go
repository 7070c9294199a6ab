package xgxrail

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"
)

// noSleep skips delays entirely; tests assert on recorded durations instead.
func noSleep(recorded *[]time.Duration) SleepFunc {
	return func(_ context.Context, d time.Duration) error {
		if recorded != nil {
			*recorded = append(*recorded, d)
		}
		return nil
	}
}

func TestRetry_TransientRetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	attempts := 0
	factory := func() Task[string] {
		return func(context.Context) (string, error) {
			attempts++
			if attempts < 3 {
				return "", MarkTransient(errors.New("flaky"))
			}
			return "ok", nil
		}
	}

	v, err := Retry(context.Background(), factory, backoff.NewConstantBackOff(time.Millisecond),
		WithSleep(noSleep(nil)))
	require.NoError(t, err)
	require.Equal(t, "ok", v)
	require.Equal(t, 3, attempts)
}

func TestRetry_PermanentFailsImmediately(t *testing.T) {
	t.Parallel()

	attempts := 0
	factory := func() Task[int] {
		return func(context.Context) (int, error) {
			attempts++
			return 0, errors.New("permanent")
		}
	}

	_, err := Retry(context.Background(), factory, backoff.NewConstantBackOff(time.Millisecond),
		WithSleep(noSleep(nil)))
	require.Error(t, err)
	require.Equal(t, 1, attempts)

	// The failure carries the attempt number that produced it.
	n, ok := RetryAttemptField().Get(err)
	require.True(t, ok)
	require.Zero(t, n)
}

func TestRetry_PolicyStopEndsTheLoop(t *testing.T) {
	t.Parallel()

	attempts := 0
	factory := func() Task[int] {
		return func(context.Context) (int, error) {
			attempts++
			return 0, MarkTransient(errors.New("always flaky"))
		}
	}

	_, err := Retry(context.Background(), factory,
		backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), 2),
		WithSleep(noSleep(nil)))
	require.Error(t, err)
	require.Equal(t, 3, attempts) // initial + 2 retries

	n, ok := RetryAttemptField().Get(err)
	require.True(t, ok)
	require.Equal(t, uint32(2), n)
}

func TestRetry_MaxRetriesHintCapsAttempts(t *testing.T) {
	t.Parallel()

	attempts := 0
	factory := func() Task[int] {
		return func(context.Context) (int, error) {
			attempts++
			hinted := Wrap(MarkTransient(errors.New("flaky")), MaxRetriesHintField().Context(1))
			return 0, hinted
		}
	}

	// Policy would allow many retries; the hint caps at 1.
	_, err := Retry(context.Background(), factory, backoff.NewConstantBackOff(time.Millisecond),
		WithSleep(noSleep(nil)))
	require.Error(t, err)
	require.Equal(t, 2, attempts) // initial + 1 retry
}

func TestRetry_RetryAfterHintExtendsDelay(t *testing.T) {
	t.Parallel()

	var delays []time.Duration
	attempts := 0
	factory := func() Task[int] {
		return func(context.Context) (int, error) {
			attempts++
			if attempts == 1 {
				return 0, RateLimited(50 * time.Millisecond)
			}
			return 1, nil
		}
	}

	v, err := Retry(context.Background(), factory, backoff.NewConstantBackOff(time.Millisecond),
		WithSleep(noSleep(&delays)))
	require.NoError(t, err)
	require.Equal(t, 1, v)
	require.Equal(t, []time.Duration{50 * time.Millisecond}, delays)
}

func TestRetry_CancelledContextGivesUp(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	factory := func() Task[int] {
		return func(context.Context) (int, error) {
			attempts++
			cancel()
			return 0, MarkTransient(errors.New("flaky"))
		}
	}

	_, err := Retry(ctx, factory, backoff.NewConstantBackOff(time.Millisecond),
		WithSleep(noSleep(nil)))
	require.Error(t, err)
	require.Equal(t, 1, attempts)
}

func TestRetry_CustomClassifier(t *testing.T) {
	t.Parallel()

	attempts := 0
	factory := func() Task[int] {
		return func(context.Context) (int, error) {
			attempts++
			if attempts < 2 {
				return 0, errors.New("retryable-by-name")
			}
			return 7, nil
		}
	}

	v, err := Retry(context.Background(), factory, backoff.NewConstantBackOff(time.Millisecond),
		WithSleep(noSleep(nil)),
		WithClassifier(func(err error) bool { return err.Error() == "retryable-by-name" }))
	require.NoError(t, err)
	require.Equal(t, 7, v)
	require.Equal(t, 2, attempts)
}

func TestRetryPipeline_FailureIsComposable(t *testing.T) {
	t.Parallel()

	factory := func() Task[int] {
		return func(context.Context) (int, error) { return 0, errors.New("permanent") }
	}
	_, err := RetryPipeline(context.Background(), factory, backoff.NewConstantBackOff(time.Millisecond),
		WithSleep(noSleep(nil)))
	_, ok := AsComposable(err)
	require.True(t, ok)
}
