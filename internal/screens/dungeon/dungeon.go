// Package dungeonscreen shows the 50-stage tower and the level gate for
// the next stage.
package dungeonscreen

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Arnav-W-Coder/LevelUp/internal/dungeon"
	"github.com/Arnav-W-Coder/LevelUp/internal/progress"
	"github.com/Arnav-W-Coder/LevelUp/internal/progression"
	"github.com/Arnav-W-Coder/LevelUp/internal/screen"
	"github.com/Arnav-W-Coder/LevelUp/internal/ui/layout"
	"github.com/Arnav-W-Coder/LevelUp/internal/ui/theme"
)

// Screen is the dungeon progress screen.
type Screen struct {
	facade *progression.Facade
}

var _ screen.Screen = (*Screen)(nil)

// New creates the dungeon screen.
func New(f *progression.Facade) *Screen {
	return &Screen{facade: f}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		s.facade.AdvanceDungeon(context.Background())
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	snap := s.facade.Snapshot()

	var b strings.Builder

	if snap.DungeonCursor >= dungeon.NumStages {
		b.WriteString(theme.Positive.Render("All 50 stages cleared!") + "\n\n")
	} else {
		gate := dungeon.RequiredLevel(snap.DungeonCursor)
		b.WriteString(theme.Body.Render(fmt.Sprintf("Stage %d of %d", snap.DungeonCursor+1, dungeon.NumStages)) + "\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Every category must reach level %d", gate)) + "\n\n")

		for c := range progress.NumCategories {
			cat := progress.Category(c)
			mark := theme.Negative.Render("✗")
			if snap.Level[c] >= gate {
				mark = theme.Positive.Render("✓")
			}
			b.WriteString(fmt.Sprintf("  %s %-14s Lv %d / %d\n", mark, cat, snap.Level[c], gate))
		}
		b.WriteString("\n")
		if snap.CanAdvance {
			b.WriteString(theme.Positive.Render("  The gate is open. Press Enter to clear the stage.") + "\n")
		} else {
			b.WriteString(theme.Hint.Render("  The gate is closed. Level up every category to proceed.") + "\n")
		}
	}

	b.WriteString("\n" + renderTower(snap.DungeonRoster, snap.DungeonCursor, width))
	return b.String()
}

// renderTower draws the stage roster as rows of cells, cleared stages
// filled in.
func renderTower(roster []dungeon.Stage, cursor, width int) string {
	perRow := 10
	var rows []string
	var row strings.Builder
	for i, st := range roster {
		cell := "░░"
		if st.Completed {
			cell = "██"
		} else if i == cursor {
			cell = "▒▒"
		}
		style := theme.Unselected
		if st.Completed {
			style = theme.Positive
		} else if i == cursor {
			style = theme.Selected
		}
		row.WriteString(style.Render(cell) + " ")
		if (i+1)%perRow == 0 {
			rows = append(rows, row.String())
			row.Reset()
		}
	}
	if row.Len() > 0 {
		rows = append(rows, row.String())
	}
	tower := strings.Join(rows, "\n")
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(tower)
}

func (s *Screen) Title() string {
	return "Dungeon"
}

// KeyHints lists the dungeon key bindings.
func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Advance"},
		{Key: "Esc", Description: "Back"},
	}
}
