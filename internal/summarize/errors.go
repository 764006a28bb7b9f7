package summarize

import (
	"fmt"
	"time"
)

// ErrRateLimit indicates the backend returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the backend returned content that does
// not match the analysis contract.
type ErrInvalidResponse struct {
	Content []byte
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid summarizer response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrBackendUnavailable indicates the backend is down or unreachable.
type ErrBackendUnavailable struct {
	Err error
}

func (e *ErrBackendUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("summarizer backend unavailable: %v", e.Err)
	}
	return "summarizer backend unavailable"
}

func (e *ErrBackendUnavailable) Unwrap() error { return e.Err }
