package summarize

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// New creates a Summarizer from configuration, wrapped with retry and
// logging middleware.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (Summarizer, error) {
	var base Summarizer
	var err error

	switch cfg.Backend {
	case "flask":
		base, err = NewFlaskSummarizer(cfg.Flask)
	case "anthropic":
		base, err = NewAnthropicSummarizer(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAISummarizer(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiSummarizer(ctx, cfg.Gemini)
	case "local":
		base = NewLocalSummarizer()
	case "mock":
		return NewMockSummarizer(), nil
	default:
		return nil, fmt.Errorf("unknown summarizer backend: %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s summarizer: %w", cfg.Backend, err)
	}

	// caller → retry → logging → base
	return WithRetry(WithLogging(base, logger), cfg.Retry), nil
}
