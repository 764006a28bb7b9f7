// Package journalscreen is the daily reflection screen: write a note,
// analyze it, and browse today's insights.
package journalscreen

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Arnav-W-Coder/LevelUp/internal/journal"
	"github.com/Arnav-W-Coder/LevelUp/internal/progression"
	"github.com/Arnav-W-Coder/LevelUp/internal/screen"
	"github.com/Arnav-W-Coder/LevelUp/internal/ui/components"
	"github.com/Arnav-W-Coder/LevelUp/internal/ui/layout"
	"github.com/Arnav-W-Coder/LevelUp/internal/ui/theme"
)

// showLastN caps how many of today's entries are listed.
const showLastN = 3

// savedMsg reports an AnalyzeAndSave result back to the screen.
type savedMsg struct {
	entry *journal.Entry
	err   error
}

// Screen is the journal screen.
type Screen struct {
	facade *progression.Facade
	book   *journal.Book

	input   components.TextInput
	busy    bool
	errMsg  string
	entries []journal.Entry
}

var _ screen.Screen = (*Screen)(nil)

// New creates the journal screen.
func New(f *progression.Facade, book *journal.Book) *Screen {
	s := &Screen{
		facade: f,
		book:   book,
		input:  components.NewTextInput("How did today's goals make you feel?", false, 0),
	}
	s.reload()
	return s
}

func (s *Screen) reload() {
	entries, err := s.book.Today(context.Background())
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.entries = entries
}

func (s *Screen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.busy = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.facade.RecordJournal(context.Background())
		s.reload()
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "enter" && !s.busy {
			text := s.input.Value()
			if strings.TrimSpace(text) == "" {
				s.errMsg = "Write a short reflection before saving."
				return s, nil
			}
			s.busy = true
			s.errMsg = ""
			s.input = components.NewTextInput("How did today's goals make you feel?", false, 0)
			book := s.book
			return s, func() tea.Msg {
				entry, err := book.AnalyzeAndSave(context.Background(), text)
				return savedMsg{entry: entry, err: err}
			}
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Subtitle.Width(width).Render("Daily Reflection") + "\n\n")
	b.WriteString("  " + s.input.View() + "\n")

	if s.busy {
		b.WriteString("\n" + theme.Hint.Render("  Analyzing...") + "\n")
	}
	if s.errMsg != "" {
		b.WriteString("\n" + theme.Negative.Render("  "+s.errMsg) + "\n")
	}

	if len(s.entries) > 0 {
		b.WriteString("\n" + theme.Body.Render("  Today's Insights") + "\n")
		shown := s.entries
		if len(shown) > showLastN {
			shown = shown[:showLastN]
		}
		for _, e := range shown {
			b.WriteString(renderEntry(e, width) + "\n")
		}
	}

	return b.String()
}

func renderEntry(e journal.Entry, width int) string {
	t := time.UnixMilli(e.CreatedAt).Format("3:04 PM")
	card := lipgloss.NewStyle().Foreground(theme.Secondary).Render(e.Emotion) + "\n" +
		theme.Body.Render("✨ "+e.Summary) + "\n" +
		theme.Hint.Render(t)
	return theme.Card.Width(min(width-6, 60)).Render(card)
}

func (s *Screen) Title() string {
	return "Journal"
}

// KeyHints lists the journal key bindings.
func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Analyze & Save"},
		{Key: "Esc", Description: "Back"},
	}
}
