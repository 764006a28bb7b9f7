// Package config loads the optional .levelup.yaml configuration file.
// Everything works with defaults; the file tunes reward size, the
// summarizer backend, and journal display.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Arnav-W-Coder/LevelUp/internal/summarize"
)

// Config is the merged application configuration.
type Config struct {
	// RewardXP is the XP granted per completed goal.
	RewardXP int

	// JournalRecentDays is how many recent journal dates to show.
	JournalRecentDays int

	// Summarizer selects and configures the reflection backend.
	Summarizer summarize.Config
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		RewardXP:          50,
		JournalRecentDays: 7,
		Summarizer:        summarize.ConfigFromEnv(),
	}
}

// Load reads .levelup.yaml from the given directories in order, first
// hit wins. A missing file returns defaults.
func Load(paths ...string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName(".levelup")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetDefault("reward_xp", cfg.RewardXP)
	v.SetDefault("journal.recent_days", cfg.JournalRecentDays)
	v.SetDefault("summarizer.backend", cfg.Summarizer.Backend)
	v.SetDefault("summarizer.url", cfg.Summarizer.Flask.BaseURL)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading .levelup.yaml: %w", err)
	}

	cfg.RewardXP = v.GetInt("reward_xp")
	cfg.JournalRecentDays = v.GetInt("journal.recent_days")
	cfg.Summarizer.Backend = v.GetString("summarizer.backend")
	if u := v.GetString("summarizer.url"); u != "" {
		cfg.Summarizer.Flask.BaseURL = u
	}
	if m := v.GetString("summarizer.model"); m != "" {
		cfg.Summarizer.Anthropic.Model = m
		cfg.Summarizer.OpenAI.Model = m
		cfg.Summarizer.Gemini.Model = m
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	var errs []string

	if c.RewardXP <= 0 {
		errs = append(errs, fmt.Sprintf("reward_xp must be positive, got %d", c.RewardXP))
	}
	if c.JournalRecentDays <= 0 {
		errs = append(errs, fmt.Sprintf("journal.recent_days must be positive, got %d", c.JournalRecentDays))
	}
	if err := c.Summarizer.Validate(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
