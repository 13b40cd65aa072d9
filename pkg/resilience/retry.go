package resilience

import (
	"context"
	"time"

	"github.com/farepilot/farepilot/pkg/logger"
	"go.uber.org/zap"
)

// RetryableChecker decides whether an error is worth retrying.
type RetryableChecker func(err error) bool

// RetryConfig controls the retry loop.
type RetryConfig struct {
	MaxAttempts      int
	InitialBackoff   time.Duration
	MaxBackoff       time.Duration
	BackoffFactor    float64
	RetryableChecker RetryableChecker
}

// DefaultRetryConfig returns retry settings suitable for short upstream calls.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     1 * time.Second,
		BackoffFactor:  2.0,
	}
}

// Retry runs op until it succeeds, the attempts are exhausted, or the context
// is cancelled. The last error is returned when all attempts fail.
func Retry(ctx context.Context, cfg RetryConfig, op func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	backoff := cfg.InitialBackoff
	if backoff <= 0 {
		backoff = 100 * time.Millisecond
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if cfg.RetryableChecker != nil && !cfg.RetryableChecker(err) {
			return nil, err
		}

		if attempt == attempts {
			break
		}

		logger.Debug("retrying operation",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}

		backoff = time.Duration(float64(backoff) * cfg.BackoffFactor)
		if cfg.MaxBackoff > 0 && backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}

	return nil, lastErr
}
