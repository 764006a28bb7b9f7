package summarize

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// loggingSummarizer is a decorator that records every analysis call.
type loggingSummarizer struct {
	inner  Summarizer
	logger *zap.Logger
}

// WithLogging wraps a Summarizer with structured logging.
func WithLogging(s Summarizer, logger *zap.Logger) Summarizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &loggingSummarizer{inner: s, logger: logger}
}

func (l *loggingSummarizer) Analyze(ctx context.Context, req Request) (*Analysis, error) {
	start := time.Now()
	a, err := l.inner.Analyze(ctx, req)
	fields := []zap.Field{
		zap.String("backend", l.inner.Name()),
		zap.Duration("latency", time.Since(start)),
		zap.Int("reflection_len", len(req.Reflection)),
	}
	if err != nil {
		l.logger.Warn("summarize failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	l.logger.Info("summarize ok", append(fields,
		zap.String("emotion", a.Emotion),
		zap.Float64("polarity", a.Polarity))...)
	return a, nil
}

func (l *loggingSummarizer) Name() string { return l.inner.Name() }
