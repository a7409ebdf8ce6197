package resilience

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"golang.org/x/time/rate"
)

// Retry calls fn until it succeeds, returns an error not matched by
// retryable, or MaxRetries retries are spent. The last error is returned.
func Retry(ctx context.Context, cfg RetryConfig, retryable func(error) bool, fn func(attempt int) error) error {
	cfg = NormalizeRetryConfig(cfg)

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}
		if retryable != nil && !retryable(lastErr) {
			return lastErr
		}
		if attempt == cfg.MaxRetries {
			break
		}
		if err := sleep(ctx, time.Duration(attempt+1)*cfg.BaseBackoff); err != nil {
			return err
		}
	}
	return lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NewLimiter returns nil when rate limiting is disabled; Wait accepts nil.
func NewLimiter(cfg RateLimitConfig) *rate.Limiter {
	cfg = NormalizeRateLimitConfig(cfg)
	if cfg.RPS == 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)
}

func Wait(ctx context.Context, limiter *rate.Limiter) error {
	if limiter == nil {
		return nil
	}
	if err := limiter.Wait(ctx); err != nil {
		return crerr.Wrap(err, "rate limiter wait")
	}
	return nil
}
