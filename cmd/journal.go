package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Arnav-W-Coder/LevelUp/internal/clock"
	"github.com/Arnav-W-Coder/LevelUp/internal/journal"
	"github.com/Arnav-W-Coder/LevelUp/internal/store"
	"github.com/Arnav-W-Coder/LevelUp/internal/summarize"
)

var journalCmd = &cobra.Command{
	Use:   "journal [reflection]",
	Short: "Save a reflection or list recent entries",
	Long:  "With an argument, analyzes and saves the reflection. Without arguments, lists recent journal entries.",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		summarizer, err := summarize.New(cmd.Context(), cfg.Summarizer, logger)
		if err != nil {
			return fmt.Errorf("init summarizer: %w", err)
		}
		book := journal.NewBook(st, clock.System(), summarizer, logger)

		if len(args) > 0 {
			entry, err := book.AnalyzeAndSave(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("[%s] %s\n", entry.Emotion, entry.Summary)
			return nil
		}

		dates, err := book.RecentDates(cmd.Context(), cfg.JournalRecentDays)
		if err != nil {
			return fmt.Errorf("read journal index: %w", err)
		}
		if len(dates) == 0 {
			fmt.Println("No journal entries yet.")
			return nil
		}
		for _, ymd := range dates {
			entries, err := book.Entries(cmd.Context(), ymd)
			if err != nil {
				return fmt.Errorf("read entries for %s: %w", ymd, err)
			}
			fmt.Println(ymd)
			for _, e := range entries {
				t := time.UnixMilli(e.CreatedAt).Format("3:04 PM")
				fmt.Printf("  %s [%s] %s\n", t, e.Emotion, e.Summary)
			}
		}
		return nil
	},
}
