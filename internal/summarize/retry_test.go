package summarize

import (
	"context"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func okAnalysis() *Analysis {
	return &Analysis{Summary: "ok", Emotion: EmotionNeutral, Keywords: []string{}}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	mock := NewMockSummarizer(MockResponse{Analysis: okAnalysis()})
	s := WithRetry(mock, retryConfig())

	a, err := s.Analyze(context.Background(), Request{Reflection: "fine"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Summary != "ok" {
		t.Fatalf("unexpected analysis: %+v", a)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockSummarizer(
		MockResponse{Err: &ErrBackendUnavailable{Err: errors.New("down")}},
		MockResponse{Analysis: okAnalysis()},
	)
	s := WithRetry(mock, retryConfig())

	if _, err := s.Analyze(context.Background(), Request{Reflection: "fine"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	mock := NewMockSummarizer(
		MockResponse{Err: &ErrBackendUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrBackendUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrBackendUnavailable{Err: errors.New("down")}},
	)
	s := WithRetry(mock, retryConfig())

	if _, err := s.Analyze(context.Background(), Request{Reflection: "fine"}); err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetry_BadInputNotRetried(t *testing.T) {
	mock := NewMockSummarizer(MockResponse{Err: ErrEmptyReflection})
	s := WithRetry(mock, retryConfig())

	_, err := s.Analyze(context.Background(), Request{})
	if !errors.Is(err, ErrEmptyReflection) {
		t.Fatalf("err = %v, want ErrEmptyReflection", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	mock := NewMockSummarizer(
		MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad json")}},
		MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad json")}},
		MockResponse{Analysis: okAnalysis()},
	)
	s := WithRetry(mock, retryConfig())

	if _, err := s.Analyze(context.Background(), Request{Reflection: "fine"}); err == nil {
		t.Fatal("expected error after second invalid response")
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := NewMockSummarizer(
		MockResponse{Err: &ErrBackendUnavailable{Err: errors.New("down")}},
		MockResponse{Analysis: okAnalysis()},
	)
	s := WithRetry(mock, retryConfig())

	_, err := s.Analyze(ctx, Request{Reflection: "fine"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
