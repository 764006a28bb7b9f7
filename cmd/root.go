package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Arnav-W-Coder/LevelUp/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "levelup",
	Short: "Gamified habit tracker",
	Long:  "LevelUp is a terminal habit tracker that turns daily goals into XP, streaks, and a 50-stage dungeon climb.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEVELUP_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Directory to search for .levelup.yaml")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LEVELUP_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
