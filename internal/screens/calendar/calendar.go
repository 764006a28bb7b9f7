// Package calendarscreen renders the month view with activity dots and
// the goal history for a selected day.
package calendarscreen

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Arnav-W-Coder/LevelUp/internal/calendar"
	"github.com/Arnav-W-Coder/LevelUp/internal/clock"
	"github.com/Arnav-W-Coder/LevelUp/internal/progression"
	"github.com/Arnav-W-Coder/LevelUp/internal/screen"
	"github.com/Arnav-W-Coder/LevelUp/internal/ui/layout"
	"github.com/Arnav-W-Coder/LevelUp/internal/ui/theme"
)

// Screen is the calendar screen.
type Screen struct {
	facade   *progression.Facade
	selected time.Time
}

var _ screen.Screen = (*Screen)(nil)

// New creates the calendar screen anchored on today.
func New(f *progression.Facade) *Screen {
	day, err := time.ParseInLocation(clock.DateKeyFormat, f.Snapshot().Date, time.Local)
	if err != nil {
		day = time.Now()
	}
	return &Screen{facade: f, selected: day}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "h":
		s.selected = s.selected.AddDate(0, 0, -1)
	case "right", "l":
		s.selected = s.selected.AddDate(0, 0, 1)
	case "up", "k":
		s.selected = s.selected.AddDate(0, 0, -7)
	case "down", "j":
		s.selected = s.selected.AddDate(0, 0, 7)
	case "pgup", "[":
		s.selected = s.selected.AddDate(0, -1, 0)
	case "pgdown", "]":
		s.selected = s.selected.AddDate(0, 1, 0)
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	marks := s.facade.Marks()

	var b strings.Builder
	b.WriteString(theme.Subtitle.Width(width).Render(s.selected.Format("January 2006")) + "\n\n")
	b.WriteString(renderMonth(marks, s.selected, width) + "\n\n")
	b.WriteString(s.renderDayDetail(marks, width))
	return b.String()
}

// renderMonth draws the selected month as a week grid. A day with any
// recorded activity gets a dot row under its number.
func renderMonth(marks *calendar.Marks, selected time.Time, width int) string {
	first := time.Date(selected.Year(), selected.Month(), 1, 0, 0, 0, 0, selected.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var b strings.Builder
	b.WriteString(theme.Hint.Render(" Su  Mo  Tu  We  Th  Fr  Sa") + "\n")

	col := int(first.Weekday())
	b.WriteString(strings.Repeat("    ", col))

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(selected.Year(), selected.Month(), day, 0, 0, 0, 0, selected.Location())
		key := date.Format(clock.DateKeyFormat)

		cell := fmt.Sprintf("%3d", day)
		style := theme.Unselected
		if mark := marks.Marked(key); mark.Marked {
			style = lipgloss.NewStyle().Foreground(theme.Accent)
		}
		if day == selected.Day() {
			style = theme.Selected
		}
		b.WriteString(style.Render(cell) + " ")

		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}

	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(b.String())
}

func (s *Screen) renderDayDetail(marks *calendar.Marks, width int) string {
	key := s.selected.Format(clock.DateKeyFormat)
	mark := marks.Marked(key)

	var b strings.Builder
	b.WriteString(theme.Body.Render(key) + "\n")

	if !mark.Marked {
		b.WriteString(theme.Hint.Render("  Nothing recorded.") + "\n")
		return b.String()
	}

	for _, d := range mark.Dots {
		label := d.Key
		switch d.Key {
		case calendar.DotPlanned:
			label = "goals planned"
		case calendar.DotAction:
			label = "streak action"
		case calendar.DotJournal:
			label = "journal entry"
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(d.Color)).Render("  ● ") +
			theme.Body.Render(label) + "\n")
	}

	if titles := marks.Titles(key); len(titles) > 0 {
		b.WriteString("\n" + theme.Hint.Render("  Goals:") + "\n")
		for _, t := range titles {
			b.WriteString(theme.Body.Render("  - "+t) + "\n")
		}
	}
	return b.String()
}

func (s *Screen) Title() string {
	return "Calendar"
}

// KeyHints lists the calendar key bindings.
func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→↑↓", Description: "Move"},
		{Key: "[ ]", Description: "Month"},
		{Key: "Esc", Description: "Back"},
	}
}
