package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Arnav-W-Coder/LevelUp/internal/clock"
	"github.com/Arnav-W-Coder/LevelUp/internal/dungeon"
	"github.com/Arnav-W-Coder/LevelUp/internal/progress"
	"github.com/Arnav-W-Coder/LevelUp/internal/progression"
	"github.com/Arnav-W-Coder/LevelUp/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progression statistics",
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

		facade := progression.New(st, clock.System(), zap.NewNop())
		facade.Load(cmd.Context())
		defer facade.Close()
		snap := facade.Snapshot()

		fmt.Printf("Date:   %s\n", snap.Date)
		fmt.Printf("Streak: %d day(s)\n\n", snap.Streak)

		for _, c := range progress.AllCategories() {
			fmt.Printf("%-15s Lv %-3d %d/%d XP\n",
				c.String(), snap.Level[c], snap.XP[c], progress.RequiredXP(snap.Level[c]))
		}

		fmt.Println()
		if snap.DungeonCursor >= dungeon.NumStages {
			fmt.Printf("Dungeon: all %d stages cleared\n", dungeon.NumStages)
		} else {
			fmt.Printf("Dungeon: stage %d of %d (gate level %d)\n",
				snap.DungeonCursor+1, dungeon.NumStages, dungeon.RequiredLevel(snap.DungeonCursor))
		}
		fmt.Printf("Goals saved today: %d\n", len(snap.SavedGoals))
		return nil
	},
}
