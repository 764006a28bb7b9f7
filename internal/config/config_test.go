package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".levelup.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RewardXP != 50 || cfg.JournalRecentDays != 7 {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := writeConfig(t, `
reward_xp: 25
journal:
  recent_days: 14
summarizer:
  backend: flask
  url: http://summarizer.internal:8000
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RewardXP != 25 {
		t.Fatalf("reward_xp = %d", cfg.RewardXP)
	}
	if cfg.JournalRecentDays != 14 {
		t.Fatalf("recent_days = %d", cfg.JournalRecentDays)
	}
	if cfg.Summarizer.Backend != "flask" || cfg.Summarizer.Flask.BaseURL != "http://summarizer.internal:8000" {
		t.Fatalf("summarizer = %+v", cfg.Summarizer)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := writeConfig(t, "reward_xp: 10\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RewardXP != 10 {
		t.Fatalf("reward_xp = %d", cfg.RewardXP)
	}
	if cfg.JournalRecentDays != 7 {
		t.Fatalf("recent_days = %d, want default", cfg.JournalRecentDays)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := writeConfig(t, "reward_xp: -5\n")

	if _, err := Load(dir); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	dir := writeConfig(t, "summarizer:\n  backend: smoke-signals\n")

	if _, err := Load(dir); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestFirstPathWins(t *testing.T) {
	first := writeConfig(t, "reward_xp: 10\n")
	second := writeConfig(t, "reward_xp: 99\n")

	cfg, err := Load(first, second)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RewardXP != 10 {
		t.Fatalf("reward_xp = %d, want value from first path", cfg.RewardXP)
	}
}
