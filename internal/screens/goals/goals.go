// Package goalsscreen is the planning screen: draft goals for today or
// tomorrow, commit them, and tick them off.
package goalsscreen

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Arnav-W-Coder/LevelUp/internal/goals"
	"github.com/Arnav-W-Coder/LevelUp/internal/progress"
	"github.com/Arnav-W-Coder/LevelUp/internal/progression"
	"github.com/Arnav-W-Coder/LevelUp/internal/screen"
	"github.com/Arnav-W-Coder/LevelUp/internal/ui/components"
	"github.com/Arnav-W-Coder/LevelUp/internal/ui/layout"
	"github.com/Arnav-W-Coder/LevelUp/internal/ui/theme"
)

// step is the add-flow state machine position.
type step int

const (
	stepList step = iota
	stepCategory
	stepTemplate
	stepTime
)

// Screen is the goal planning screen.
type Screen struct {
	facade *progression.Facade

	step     step
	cursor   int
	category progress.Category
	template int
	timeIn   components.TextInput
	errMsg   string
}

var _ screen.Screen = (*Screen)(nil)

// New creates the goals screen.
func New(f *progression.Facade) *Screen {
	return &Screen{facade: f}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch s.step {
	case stepList:
		return s.updateList(msg)
	case stepCategory:
		return s.updateCategory(msg)
	case stepTemplate:
		return s.updateTemplate(msg)
	case stepTime:
		return s.updateTime(msg)
	}
	return s, nil
}

// visibleGoals is the combined list the cursor walks: committed goals
// first, then drafts.
func (s *Screen) visibleGoals() ([]goals.Goal, int) {
	snap := s.facade.Snapshot()
	committed := snap.SavedGoals
	return append(append([]goals.Goal(nil), committed...), snap.Drafts...), len(committed)
}

func (s *Screen) updateList(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	list, committed := s.visibleGoals()
	s.errMsg = ""

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(list)-1 {
			s.cursor++
		}
	case "a":
		s.step = stepCategory
		s.cursor = 0
	case "t":
		snap := s.facade.Snapshot()
		s.facade.SetTodayMode(context.Background(), !snap.TodayMode)
	case "s":
		s.facade.SaveGoals(context.Background())
	case "d":
		if s.cursor >= committed && s.cursor < len(list) {
			s.facade.RemoveGoal(context.Background(), list[s.cursor].ID)
			if s.cursor > 0 {
				s.cursor--
			}
		}
	case "enter", " ":
		if s.cursor >= 0 && s.cursor < len(list) {
			s.facade.ToggleComplete(context.Background(), list[s.cursor].ID)
		}
	}
	return s, nil
}

func (s *Screen) updateCategory(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < progress.NumCategories-1 {
			s.cursor++
		}
	case "enter":
		s.category = progress.Category(s.cursor)
		s.step = stepTemplate
		s.cursor = 0
	case "esc", "q":
		s.step = stepList
		s.cursor = 0
	}
	return s, nil
}

func (s *Screen) updateTemplate(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	templates := goals.Templates[s.category]
	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(templates)-1 {
			s.cursor++
		}
	case "enter":
		s.template = s.cursor
		s.step = stepTime
		s.timeIn = components.NewTextInput("e.g. 9:30 AM (blank for none)", false, 8)
		return s, s.timeIn.Init()
	case "esc":
		s.step = stepCategory
		s.cursor = int(s.category)
	}
	return s, nil
}

func (s *Screen) updateTime(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			in := goals.AddInput{
				Category: s.category,
				Template: goals.Templates[s.category][s.template],
			}
			var perr error
			in.Hour, in.Minute, in.Meridiem, perr = splitTime(s.timeIn.Value())
			if perr != nil {
				s.errMsg = perr.Error()
				return s, nil
			}
			if _, err := s.facade.AddGoal(context.Background(), in); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			s.step = stepList
			s.cursor = 0
			return s, nil
		case "esc":
			s.step = stepTemplate
			s.cursor = s.template
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.timeIn, cmd = s.timeIn.Update(msg)
	return s, cmd
}

// splitTime parses "9:30 AM" into its parts. Blank input means no
// scheduled time.
func splitTime(v string) (hour, minute, meridiem string, err error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", "", "", nil
	}
	fields := strings.Fields(strings.ToUpper(v))
	if len(fields) != 2 {
		return "", "", "", fmt.Errorf("time must look like 9:30 AM")
	}
	parts := strings.Split(fields[0], ":")
	if len(parts) != 2 {
		return "", "", "", fmt.Errorf("time must look like 9:30 AM")
	}
	return parts[0], parts[1], fields[1], nil
}

func (s *Screen) View(width, height int) string {
	switch s.step {
	case stepCategory:
		return s.viewCategory(width)
	case stepTemplate:
		return s.viewTemplate(width)
	case stepTime:
		return s.viewTime(width)
	default:
		return s.viewList(width)
	}
}

func (s *Screen) viewList(width int) string {
	snap := s.facade.Snapshot()
	list, committed := s.visibleGoals()

	mode := "Planning: today"
	if !snap.TodayMode {
		mode = "Planning: tomorrow"
		if snap.TomorrowSaved {
			mode += " (saved)"
		}
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Width(width).Render(mode) + "\n\n")

	if len(list) == 0 {
		b.WriteString(theme.Hint.Render("  No goals yet. Press a to add one."))
	}
	for i, g := range list {
		line := renderGoalLine(g, i < committed)
		if i == s.cursor {
			line = theme.Selected.Render("▸ " + line)
		} else {
			line = theme.Unselected.Render("  " + line)
		}
		b.WriteString(line + "\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n" + theme.Negative.Render(s.errMsg))
	}
	return b.String()
}

func renderGoalLine(g goals.Goal, isCommitted bool) string {
	check := "[ ]"
	if g.IsCompleted {
		check = "[x]"
	}
	line := fmt.Sprintf("%s %s  (%s)", check, g.Title, g.Category)
	if g.Time != "" {
		line += " @ " + g.Time
	}
	if !isCommitted {
		line += "  draft"
	}
	return line
}

func (s *Screen) viewCategory(width int) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Width(width).Render("Pick a category") + "\n\n")
	for c := range progress.NumCategories {
		label := progress.Category(c).String()
		if c == s.cursor {
			b.WriteString(theme.Selected.Render("▸ "+label) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("  "+label) + "\n")
		}
	}
	return b.String()
}

func (s *Screen) viewTemplate(width int) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf("Pick a %s goal", s.category)) + "\n\n")
	for i, tpl := range goals.Templates[s.category] {
		if i == s.cursor {
			b.WriteString(theme.Selected.Render("▸ "+tpl) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("  "+tpl) + "\n")
		}
	}
	return b.String()
}

func (s *Screen) viewTime(width int) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Width(width).Render("Schedule a time (optional)") + "\n\n")
	b.WriteString("  " + s.timeIn.View() + "\n")
	if s.errMsg != "" {
		b.WriteString("\n" + theme.Negative.Render("  "+s.errMsg))
	}
	b.WriteString("\n" + theme.Hint.Render("  Enter to add, Esc to go back"))
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (s *Screen) Title() string {
	return "Goals"
}

// KeyHints lists the list-view key bindings in the footer.
func (s *Screen) KeyHints() []layout.KeyHint {
	if s.step != stepList {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "a", Description: "Add"},
		{Key: "d", Description: "Delete"},
		{Key: "Space", Description: "Complete"},
		{Key: "s", Description: "Save"},
		{Key: "t", Description: "Today/Tomorrow"},
		{Key: "Esc", Description: "Back"},
	}
}
