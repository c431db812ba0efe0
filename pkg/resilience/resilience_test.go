package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnavailable = errors.New("service unavailable")

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		BackoffFactor:  2,
	}
}

func TestRetryExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := NewRetry("test", fastRetry(3)).Execute(ctx, func(context.Context) error {
			calls++
			if calls < 3 {
				return errUnavailable
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error", func(t *testing.T) {
		calls := 0
		err := NewRetry("test", fastRetry(2)).Execute(ctx, func(context.Context) error {
			calls++
			return errUnavailable
		})
		require.ErrorIs(t, err, errUnavailable)
		assert.Equal(t, 2, calls)
	})

	t.Run("non retryable error stops at once", func(t *testing.T) {
		cfg := fastRetry(5)
		cfg.ShouldRetry = func(err error) bool { return !errors.Is(err, errUnavailable) }

		calls := 0
		err := NewRetry("test", cfg).Execute(ctx, func(context.Context) error {
			calls++
			return errUnavailable
		})
		require.ErrorIs(t, err, errUnavailable)
		assert.Equal(t, 1, calls)
	})

	t.Run("zero attempts means one call", func(t *testing.T) {
		calls := 0
		_ = NewRetry("test", RetryConfig{}).Execute(ctx, func(context.Context) error {
			calls++
			return errUnavailable
		})
		assert.Equal(t, 1, calls)
	})

	t.Run("canceled while waiting", func(t *testing.T) {
		cfg := fastRetry(3)
		cfg.InitialBackoff = time.Hour

		cancelCtx, cancel := context.WithCancel(ctx)
		err := NewRetry("test", cfg).Execute(cancelCtx, func(context.Context) error {
			cancel()
			return errUnavailable
		})
		require.ErrorIs(t, err, ErrContextCanceled)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCircuitBreaker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	cb := NewCircuitBreaker("test", CircuitBreakerConfig{
		ErrorThreshold:   2,
		Timeout:          time.Minute,
		SuccessThreshold: 2,
	})
	cb.now = func() time.Time { return now }

	fail := func(context.Context) error { return errUnavailable }
	ok := func(context.Context) error { return nil }

	require.ErrorIs(t, cb.Execute(ctx, fail), errUnavailable)
	assert.Equal(t, StateClosed, cb.State())

	require.ErrorIs(t, cb.Execute(ctx, fail), errUnavailable)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)

	now = now.Add(2 * time.Minute)
	require.NoError(t, cb.Execute(ctx, ok))
	assert.Equal(t, StateHalfOpen, cb.State())

	require.NoError(t, cb.Execute(ctx, ok))
	assert.Equal(t, StateClosed, cb.State())

	t.Run("failed trial call reopens", func(t *testing.T) {
		require.Error(t, cb.Execute(ctx, fail))
		require.Error(t, cb.Execute(ctx, fail))
		require.Equal(t, StateOpen, cb.State())

		now = now.Add(2 * time.Minute)
		require.ErrorIs(t, cb.Execute(ctx, fail), errUnavailable)
		assert.Equal(t, StateOpen, cb.State())
		assert.ErrorIs(t, cb.Execute(ctx, ok), ErrCircuitOpen)
	})

	t.Run("success resets failure count", func(t *testing.T) {
		fresh := NewCircuitBreaker("fresh", CircuitBreakerConfig{ErrorThreshold: 2, Timeout: time.Minute})
		require.Error(t, fresh.Execute(ctx, fail))
		require.NoError(t, fresh.Execute(ctx, ok))
		require.Error(t, fresh.Execute(ctx, fail))
		assert.Equal(t, StateClosed, fresh.State())
	})
}
