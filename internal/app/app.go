package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Arnav-W-Coder/LevelUp/internal/journal"
	"github.com/Arnav-W-Coder/LevelUp/internal/progression"
	"github.com/Arnav-W-Coder/LevelUp/internal/router"
	"github.com/Arnav-W-Coder/LevelUp/internal/screen"
	"github.com/Arnav-W-Coder/LevelUp/internal/screens/home"
	"github.com/Arnav-W-Coder/LevelUp/internal/ui/layout"
)

// snapshotMsg carries a fresh progression snapshot into the UI loop.
type snapshotMsg struct {
	snap progression.Snapshot
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	snap   progression.Snapshot
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(f *progression.Facade, book *journal.Book) AppModel {
	homeScreen := home.New(f, book)
	return AppModel{
		router: router.New(homeScreen),
		snap:   f.Snapshot(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = msg.snap
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	level := 0
	for _, lv := range m.snap.Level {
		level += lv
	}
	header := layout.RenderHeader(title, level, m.snap.Streak, m.width)

	var footerHints []layout.KeyHint
	if hinter, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hinter.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program. Snapshots published by the facade
// are forwarded into the program so the header stays current across
// midnight rollovers and background updates.
func Run(f *progression.Facade, book *journal.Book) error {
	p := tea.NewProgram(newAppModel(f, book))

	f.Subscribe(func(snap progression.Snapshot) {
		p.Send(snapshotMsg{snap: snap})
	})

	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
