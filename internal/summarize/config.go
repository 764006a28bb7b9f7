package summarize

import (
	"fmt"
	"os"
	"time"
)

// Config holds summarizer backend configuration.
type Config struct {
	// Backend selects the summarizer implementation.
	// Values: "flask", "anthropic", "openai", "gemini", "local", "mock"
	Backend string

	Flask     FlaskConfig
	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout bounds a single analysis request including retries.
	Timeout time.Duration
}

// FlaskConfig points at the companion summarizer service.
type FlaskConfig struct {
	BaseURL string // Default: "http://localhost:8000"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults. The local
// backend needs no credentials and always works.
func DefaultConfig() Config {
	return Config{
		Backend: "local",
		Flask: FlaskConfig{
			BaseURL: "http://localhost:8000",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling
// back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if b := os.Getenv("LEVELUP_SUMMARIZER"); b != "" {
		cfg.Backend = b
	}
	if u := os.Getenv("LEVELUP_SUMMARIZER_URL"); u != "" {
		cfg.Flask.BaseURL = u
		if cfg.Backend == "local" {
			cfg.Backend = "flask"
		}
	}

	if k := os.Getenv("LEVELUP_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("LEVELUP_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("LEVELUP_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("LEVELUP_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("LEVELUP_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("LEVELUP_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("LEVELUP_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	return cfg
}

// DiscoverConfig probes the standard API key env vars in priority order
// (Gemini, OpenAI, Anthropic) and returns a Config for the first key
// found. Returns (Config{}, false) when none is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Backend = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Backend = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Backend = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected backend has what it needs.
func (c Config) Validate() error {
	switch c.Backend {
	case "flask":
		if c.Flask.BaseURL == "" {
			return fmt.Errorf("LEVELUP_SUMMARIZER_URL is required for the flask backend")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("LEVELUP_ANTHROPIC_API_KEY is required for the anthropic backend")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("LEVELUP_OPENAI_API_KEY is required for the openai backend")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("LEVELUP_GEMINI_API_KEY is required for the gemini backend")
		}
	case "local", "mock":
		// No credentials needed.
	default:
		return fmt.Errorf("unknown summarizer backend: %q", c.Backend)
	}
	return nil
}
