package summarize

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retrySummarizer is a decorator that retries transient failures with
// exponential backoff and jitter.
type retrySummarizer struct {
	inner  Summarizer
	config RetryConfig
}

// WithRetry wraps a Summarizer with retry logic.
func WithRetry(s Summarizer, cfg RetryConfig) Summarizer {
	return &retrySummarizer{inner: s, config: cfg}
}

func (r *retrySummarizer) Analyze(ctx context.Context, req Request) (*Analysis, error) {
	var lastErr error
	invalidRetried := false

	for attempt := range r.config.MaxAttempts {
		a, err := r.inner.Analyze(ctx, req)
		if err == nil {
			return a, nil
		}
		lastErr = err

		if !shouldRetry(err, &invalidRetried) {
			return nil, err
		}

		// Last attempt, return the error without sleeping.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.backoff(attempt, err)):
		}
	}

	return nil, lastErr
}

func (r *retrySummarizer) Name() string { return r.inner.Name() }

func shouldRetry(err error, invalidRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Bad input never gets better on retry.
	if errors.Is(err, ErrEmptyReflection) || errors.Is(err, ErrReflectionTooLong) {
		return false
	}

	// A malformed response gets exactly one retry.
	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	return true
}

func (r *retrySummarizer) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
