// Package calendar maintains the derived date-keyed display marks: one
// dot per kind of activity, plus a titles-by-date map for the history
// list. Marks are rebuilt from planner and progress events and are
// never a source of truth.
package calendar

import (
	"context"

	"go.uber.org/zap"

	"github.com/Arnav-W-Coder/LevelUp/internal/goals"
	"github.com/Arnav-W-Coder/LevelUp/internal/store"
)

// Storage keys owned by this package.
const (
	keyMarked      = "markedDates"
	keyGoalsByDate = "goalsByDate"
)

// Dot keys.
const (
	DotPlanned = "planned"
	DotAction  = "action"
	DotJournal = "journal"
)

// Dot is one calendar indicator.
type Dot struct {
	Key   string `json:"key"`
	Color string `json:"color"`
}

// DayMark is the set of dots shown on one date.
type DayMark struct {
	Marked bool  `json:"marked"`
	Dots   []Dot `json:"dots,omitempty"`
}

var dotColors = map[string]string{
	DotPlanned: "#2563EB",
	DotAction:  "#22C55E",
	DotJournal: "#F97316",
}

// Marks maintains the persisted mark and titles maps.
type Marks struct {
	kv     store.KV
	logger *zap.Logger

	marked      map[string]DayMark
	goalsByDate map[string][]string
}

// NewMarks creates an unloaded Marks. Call Load before use.
func NewMarks(kv store.KV, logger *zap.Logger) *Marks {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Marks{
		kv:          kv,
		logger:      logger,
		marked:      make(map[string]DayMark),
		goalsByDate: make(map[string][]string),
	}
}

// Load reads both maps, defaulting to empty on absent or corrupt keys.
func (m *Marks) Load(ctx context.Context) {
	if _, err := store.GetJSON(ctx, m.kv, keyMarked, &m.marked); err != nil {
		m.logger.Warn("discarding unreadable value", zap.String("key", keyMarked), zap.Error(err))
		m.marked = make(map[string]DayMark)
	}
	if _, err := store.GetJSON(ctx, m.kv, keyGoalsByDate, &m.goalsByDate); err != nil {
		m.logger.Warn("discarding unreadable value", zap.String("key", keyGoalsByDate), zap.Error(err))
		m.goalsByDate = make(map[string][]string)
	}
	if m.marked == nil {
		m.marked = make(map[string]DayMark)
	}
	if m.goalsByDate == nil {
		m.goalsByDate = make(map[string][]string)
	}
}

// MergeDot adds one dot to a date, deduplicating by key, and persists
// when the map changed.
func (m *Marks) MergeDot(ctx context.Context, date, key string) {
	mark := m.marked[date]
	for _, d := range mark.Dots {
		if d.Key == key {
			return
		}
	}
	mark.Marked = true
	mark.Dots = append(mark.Dots, Dot{Key: key, Color: dotColors[key]})
	m.marked[date] = mark
	m.persist(ctx, keyMarked, m.marked)
}

// RecordPlanned marks a date as planned and merges the goal titles into
// its history list, deduplicated, preserving order.
func (m *Marks) RecordPlanned(ctx context.Context, date string, gs []goals.Goal) {
	if len(gs) == 0 {
		return
	}
	m.MergeDot(ctx, date, DotPlanned)

	seen := make(map[string]bool)
	titles := m.goalsByDate[date]
	for _, t := range titles {
		seen[t] = true
	}
	changed := false
	for _, g := range gs {
		if !seen[g.Title] {
			seen[g.Title] = true
			titles = append(titles, g.Title)
			changed = true
		}
	}
	if changed {
		m.goalsByDate[date] = titles
		m.persist(ctx, keyGoalsByDate, m.goalsByDate)
	}
}

// RecordAction marks a date with the streak-action dot.
func (m *Marks) RecordAction(ctx context.Context, date string) {
	m.MergeDot(ctx, date, DotAction)
}

// RecordJournal marks a date with the journal dot.
func (m *Marks) RecordJournal(ctx context.Context, date string) {
	m.MergeDot(ctx, date, DotJournal)
}

func (m *Marks) persist(ctx context.Context, key string, v any) {
	if err := store.SetJSON(ctx, m.kv, key, v); err != nil {
		m.logger.Warn("persist failed", zap.String("key", key), zap.Error(err))
	}
}

// Marked returns the mark for a date; the zero DayMark when unmarked.
func (m *Marks) Marked(date string) DayMark {
	return m.marked[date]
}

// Titles returns the recorded goal titles for a date.
func (m *Marks) Titles(date string) []string {
	return append([]string(nil), m.goalsByDate[date]...)
}

// Dates returns every marked date, unordered.
func (m *Marks) Dates() []string {
	out := make([]string, 0, len(m.marked))
	for d := range m.marked {
		out = append(out, d)
	}
	return out
}
