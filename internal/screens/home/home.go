// Package home is the landing screen: streak, per-category levels, and
// navigation into the rest of the app.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Arnav-W-Coder/LevelUp/internal/dungeon"
	"github.com/Arnav-W-Coder/LevelUp/internal/journal"
	"github.com/Arnav-W-Coder/LevelUp/internal/progress"
	"github.com/Arnav-W-Coder/LevelUp/internal/progression"
	"github.com/Arnav-W-Coder/LevelUp/internal/router"
	"github.com/Arnav-W-Coder/LevelUp/internal/screen"
	calendarscreen "github.com/Arnav-W-Coder/LevelUp/internal/screens/calendar"
	dungeonscreen "github.com/Arnav-W-Coder/LevelUp/internal/screens/dungeon"
	goalsscreen "github.com/Arnav-W-Coder/LevelUp/internal/screens/goals"
	journalscreen "github.com/Arnav-W-Coder/LevelUp/internal/screens/journal"
	"github.com/Arnav-W-Coder/LevelUp/internal/ui/components"
	"github.com/Arnav-W-Coder/LevelUp/internal/ui/theme"
)

// HomeScreen is the main screen of the application.
type HomeScreen struct {
	facade *progression.Facade
	book   *journal.Book
	menu   components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen over the progression facade.
func New(f *progression.Facade, book *journal.Book) *HomeScreen {
	items := []components.MenuItem{
		{Label: "GOALS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: goalsscreen.New(f)}
			}
		}},
		{Label: "DUNGEON", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: dungeonscreen.New(f)}
			}
		}},
		{Label: "CALENDAR", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: calendarscreen.New(f)}
			}
		}},
		{Label: "JOURNAL", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: journalscreen.New(f, book)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		facade: f,
		book:   book,
		menu:   components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	snap := h.facade.Snapshot()

	var sections []string

	title := theme.Title.Width(width).Render("LEVEL UP")
	subtitle := theme.Subtitle.Width(width).Render(snap.Date)
	sections = append(sections, title+"\n"+subtitle)

	sections = append(sections, renderStats(snap, width))
	sections = append(sections, renderMenu(h.menu, width))

	return strings.Join(sections, "\n\n")
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func renderStats(snap progression.Snapshot, width int) string {
	var rows []string
	rows = append(rows, theme.Body.Render(fmt.Sprintf("★ Streak: %d day(s)", snap.Streak)))
	for c := range progress.NumCategories {
		cat := progress.Category(c)
		need := progress.RequiredXP(snap.Level[c])
		bar := components.NewProgressBar(
			fmt.Sprintf("%-14s Lv %2d", cat, snap.Level[c]),
			float64(snap.XP[c])/float64(need),
			false,
			min(width-8, 48),
		)
		rows = append(rows, bar.View())
	}
	if snap.DungeonCursor >= dungeon.NumStages {
		rows = append(rows, theme.Hint.Render("Dungeon complete"))
	} else {
		rows = append(rows, theme.Hint.Render(fmt.Sprintf("Dungeon stage %d of %d", snap.DungeonCursor+1, dungeon.NumStages)))
	}

	card := theme.Card.Width(min(width-4, 60)).Render(strings.Join(rows, "\n"))
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(card)
}

func renderMenu(m components.Menu, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(m.View())
}
