package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Arnav-W-Coder/LevelUp/internal/app"
	"github.com/Arnav-W-Coder/LevelUp/internal/clock"
	"github.com/Arnav-W-Coder/LevelUp/internal/config"
	"github.com/Arnav-W-Coder/LevelUp/internal/journal"
	"github.com/Arnav-W-Coder/LevelUp/internal/progression"
	"github.com/Arnav-W-Coder/LevelUp/internal/store"
	"github.com/Arnav-W-Coder/LevelUp/internal/summarize"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(dbPath)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	summarizer, err := summarize.New(ctx, cfg.Summarizer, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Summarizer not configured:", err)
		fmt.Fprintln(os.Stderr, "Journal insights will use the built-in analyzer.")
		summarizer, err = summarize.New(ctx, summarize.DefaultConfig(), logger)
		if err != nil {
			return fmt.Errorf("init summarizer: %w", err)
		}
	}

	facade := progression.New(st, clock.System(), logger)
	facade.SetCompletionXP(cfg.RewardXP)
	facade.Load(ctx)
	defer facade.Close()

	book := journal.NewBook(st, clock.System(), summarizer, logger)

	return app.Run(facade, book)
}

// loadConfig reads .levelup.yaml from the --config directory when set,
// otherwise from the working directory and home directory.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if dir, _ := cmd.Flags().GetString("config"); dir != "" {
		return config.Load(dir)
	}
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home)
	}
	return config.Load(paths...)
}

// newLogger writes structured logs next to the database when
// LEVELUP_DEBUG is set. The TUI owns the terminal, so logs never go to
// stderr while it runs.
func newLogger(dbPath string) (*zap.Logger, error) {
	if os.Getenv("LEVELUP_DEBUG") == "" {
		return zap.NewNop(), nil
	}
	logPath := filepath.Join(filepath.Dir(dbPath), "levelup.log")
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{logPath}
	zcfg.ErrorOutputPaths = []string{logPath}
	return zcfg.Build()
}
