package summarize

import (
	"context"
	"testing"
)

func TestConfig_DefaultIsLocal(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Backend != "local" {
		t.Fatalf("default backend = %q", cfg.Backend)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfig_FromEnv(t *testing.T) {
	t.Setenv("LEVELUP_SUMMARIZER", "")
	t.Setenv("LEVELUP_SUMMARIZER_URL", "http://summarizer.internal:8000")

	cfg := ConfigFromEnv()
	if cfg.Backend != "flask" {
		t.Fatalf("backend = %q, want flask when a URL is set", cfg.Backend)
	}
	if cfg.Flask.BaseURL != "http://summarizer.internal:8000" {
		t.Fatalf("base URL = %q", cfg.Flask.BaseURL)
	}
}

func TestConfig_ExplicitBackendWins(t *testing.T) {
	t.Setenv("LEVELUP_SUMMARIZER", "openai")
	t.Setenv("LEVELUP_OPENAI_API_KEY", "sk-test")

	cfg := ConfigFromEnv()
	if cfg.Backend != "openai" {
		t.Fatalf("backend = %q", cfg.Backend)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config invalid: %v", err)
	}
}

func TestConfig_ValidateMissingKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "anthropic"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestConfig_ValidateUnknownBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "carrier-pigeon"
	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestNew_LocalNeedsNothing(t *testing.T) {
	s, err := New(context.Background(), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name() != "local" {
		t.Fatalf("name = %q", s.Name())
	}
}
