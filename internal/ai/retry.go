package ai

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/CodexForgeBR/flash-ui/internal/logging"
	"github.com/CodexForgeBR/flash-ui/internal/ratelimit"
)

// Retry defaults applied by DefaultRetryConfig.
const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 2 * time.Second
	DefaultMaxJitter  = time.Second
)

// maxBackoffShift bounds the exponent so BaseDelay*2^i cannot overflow.
const maxBackoffShift = 24

// RetryConfig configures exponential backoff for rate-limited calls.
type RetryConfig struct {
	// MaxRetries is the number of retries after the first attempt, so at
	// most MaxRetries+1 calls are made. Zero disables retrying.
	MaxRetries int

	// BaseDelay is the wait before the first retry (default 2s). The wait
	// before retry i+1 is BaseDelay*2^i plus jitter.
	BaseDelay time.Duration

	// MaxJitter bounds the uniform random delay added to each wait
	// (default 1s). A negative value disables jitter.
	MaxJitter time.Duration

	// OnRetry, if set, is called before each wait with the 1-based retry
	// number and the computed wait.
	OnRetry func(attempt int, wait time.Duration)

	// Sleep and Jitter replace the real timer and random source in tests.
	Sleep  func(ctx context.Context, d time.Duration) error
	Jitter func(max time.Duration) time.Duration
}

// DefaultRetryConfig returns the stock retry budget: 3 retries, 2s base
// delay, up to 1s jitter.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
		MaxJitter:  DefaultMaxJitter,
	}
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = DefaultBaseDelay
	}
	if c.MaxJitter == 0 {
		c.MaxJitter = DefaultMaxJitter
	}
	if c.Sleep == nil {
		c.Sleep = sleepContext
	}
	if c.Jitter == nil {
		c.Jitter = uniformJitter
	}
	return c
}

// Backoff returns the wait before retry attempt+1, excluding jitter.
func (c RetryConfig) Backoff(attempt int) time.Duration {
	shift := attempt
	if shift > maxBackoffShift {
		shift = maxBackoffShift
	}
	return c.BaseDelay << uint(shift)
}

// WithRetry calls fn until it succeeds, retrying only failures whose
// message carries a rate-limit signature (see ratelimit.IsRateLimit).
//
// Any other failure is returned immediately and unchanged. When the retry
// budget is exhausted the last failure is returned unchanged. If ctx is
// cancelled during a wait, ctx.Err() is returned. fn itself is never
// interrupted by WithRetry.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn func() (T, error)) (T, error) {
	cfg = cfg.withDefaults()

	var zero T
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		sig, limited := ratelimit.FindSignature(err.Error())
		if !limited || attempt == cfg.MaxRetries {
			return zero, err
		}

		wait := cfg.Backoff(attempt)
		if cfg.MaxJitter > 0 {
			wait += cfg.Jitter(cfg.MaxJitter)
		}

		logging.Warn(fmt.Sprintf("Rate limit hit (%s). Retrying in %dms... (Attempt %d/%d)",
			sig, wait.Milliseconds(), attempt+1, cfg.MaxRetries))
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt+1, wait)
		}

		if err := cfg.Sleep(ctx, wait); err != nil {
			return zero, err
		}
	}

	return zero, lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func uniformJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(max)))
}
