package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfreiman/pagesmith/internal/storage"
)

func TestRetry(t *testing.T) {
	t.Run("stops on non-retryable error", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), fastRetry, func(int) error {
			calls++
			return &ValidationError{Reason: "bad"}
		})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries storage errors", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), fastRetry, func(int) error {
			calls++
			if calls < 2 {
				return &storage.StorageError{Operation: "write", Err: errors.New("busy")}
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("honours cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		slow := RetryConfig{MaxAttempts: 3, BaseDelay: time.Hour}

		err := Retry(ctx, slow, func(int) error {
			return &storage.StorageError{Operation: "write"}
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, func(attempt int) error {
		calls++
		assert.Equal(t, calls, attempt)
		return &storage.StorageError{Operation: "write", Err: errors.New("busy")}
	})

	var retryErr *RetryableError
	require.ErrorAs(t, err, &retryErr)
	assert.Equal(t, fastRetry.MaxAttempts, retryErr.Attempts)
	assert.Equal(t, fastRetry.MaxAttempts, calls)
}

func TestRetryConfig_Backoff(t *testing.T) {
	tests := []struct {
		name     string
		config   RetryConfig
		attempt  int
		expected time.Duration
	}{
		{name: "first attempt waits base delay", config: RetryConfig{BaseDelay: time.Second, MaxDelay: time.Minute}, attempt: 1, expected: time.Second},
		{name: "doubles per attempt", config: RetryConfig{BaseDelay: time.Second, MaxDelay: time.Minute}, attempt: 3, expected: 4 * time.Second},
		{name: "capped", config: RetryConfig{BaseDelay: time.Second, MaxDelay: 2 * time.Second}, attempt: 4, expected: 2 * time.Second},
		{name: "uncapped", config: RetryConfig{BaseDelay: time.Millisecond}, attempt: 11, expected: 1024 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.backoff(tt.attempt))
		})
	}

	t.Run("jitter stays within a quarter", func(t *testing.T) {
		config := RetryConfig{BaseDelay: time.Second, Jitter: true}
		for range 50 {
			d := config.backoff(1)
			assert.GreaterOrEqual(t, d, 750*time.Millisecond)
			assert.LessOrEqual(t, d, 1250*time.Millisecond)
		}
	})
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(&FileNotFoundError{Path: "x"}))
	assert.True(t, IsRetryable(&storage.StorageError{Operation: "save"}))
	assert.False(t, IsRetryable(&storage.StorageError{Operation: "find", Err: storage.ErrNotFound}))
}
