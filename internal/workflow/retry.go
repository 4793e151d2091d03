package workflow

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/kfreiman/pagesmith/internal/storage"
)

// RetryConfig controls exponential backoff for storage operations
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration // zero leaves the delay uncapped
	Jitter      bool          // spread each delay by up to ±25%
}

// DefaultRetryConfig is used for input reads and artifact saves
var DefaultRetryConfig = RetryConfig{
	MaxAttempts: 3,
	BaseDelay:   500 * time.Millisecond,
	MaxDelay:    5 * time.Second,
	Jitter:      true,
}

// backoff returns the wait after the given one-based attempt: BaseDelay doubled per attempt
func (c RetryConfig) backoff(attempt int) time.Duration {
	delay := c.BaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if c.MaxDelay > 0 && delay >= c.MaxDelay {
			break
		}
	}
	if c.MaxDelay > 0 && delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	if c.Jitter {
		delay = time.Duration(float64(delay) * (0.75 + rand.Float64()*0.5))
	}
	return delay
}

// RetryableFunc is a function that can be retried
type RetryableFunc func(attempt int) error

// Retry executes fn until it succeeds, fails with a non-retryable error,
// runs out of attempts or ctx is cancelled.
func Retry(ctx context.Context, config RetryConfig, fn RetryableFunc) error {
	attempts := max(config.MaxAttempts, 1)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}
		if !IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == attempts {
			break
		}

		timer := time.NewTimer(config.backoff(attempt))
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		}
	}

	return &RetryableError{Err: lastErr, Attempts: attempts}
}

// withStorageRetry retries fn, classifying untyped failures as retryable storage errors
func withStorageRetry(ctx context.Context, config RetryConfig, operation, path string, fn func() error) error {
	return Retry(ctx, config, func(attempt int) error {
		err := fn()
		if err == nil {
			return nil
		}

		var notFound *FileNotFoundError
		var storageErr *storage.StorageError
		if errors.As(err, &notFound) || errors.As(err, &storageErr) {
			return err
		}
		return &storage.StorageError{
			Operation: fmt.Sprintf("%s (attempt %d)", operation, attempt),
			Path:      path,
			Err:       err,
		}
	})
}
