// Package progression wires the state machine together: one facade over
// progress, goal planning, dungeon gating, and calendar marks, with a
// midnight rollover timer. The TUI talks to this package only.
package progression

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Arnav-W-Coder/LevelUp/internal/calendar"
	"github.com/Arnav-W-Coder/LevelUp/internal/clock"
	"github.com/Arnav-W-Coder/LevelUp/internal/dungeon"
	"github.com/Arnav-W-Coder/LevelUp/internal/goals"
	"github.com/Arnav-W-Coder/LevelUp/internal/progress"
	"github.com/Arnav-W-Coder/LevelUp/internal/store"
)

// Snapshot is an immutable view of the whole progression state.
type Snapshot struct {
	Date          string
	XP            [progress.NumCategories]int
	Level         [progress.NumCategories]int
	Streak        int
	Drafts        []goals.Goal
	SavedGoals    []goals.Goal
	TomorrowGoals []goals.Goal
	TodayMode     bool
	TomorrowSaved bool
	DungeonCursor int
	DungeonRoster []dungeon.Stage
	CanAdvance    bool
}

// Facade owns the domain stores and serializes access to them. All
// methods are safe for concurrent use; the midnight timer fires on its
// own goroutine.
type Facade struct {
	mu sync.Mutex

	clock   *clock.Clock
	progres *progress.Store
	planner *goals.Planner
	dungeon *dungeon.Progress
	marks   *calendar.Marks
	timer   *clock.MidnightTimer
	logger  *zap.Logger

	subs []func(Snapshot)
}

// New builds an unloaded facade over kv. Call Load before use.
func New(kv store.KV, c *clock.Clock, logger *zap.Logger) *Facade {
	if logger == nil {
		logger = zap.NewNop()
	}
	ps := progress.NewStore(kv, c, logger)
	return &Facade{
		clock:   c,
		progres: ps,
		planner: goals.NewPlanner(kv, c, ps, logger),
		dungeon: dungeon.NewProgress(kv, ps, logger),
		marks:   calendar.NewMarks(kv, logger),
		timer:   clock.NewMidnightTimer(c),
		logger:  logger,
	}
}

// SetCompletionXP overrides the per-goal reward. Call before Load.
func (f *Facade) SetCompletionXP(xp int) {
	f.planner.CompletionXP = xp
}

// Load hydrates every store and arms the midnight timer.
func (f *Facade) Load(ctx context.Context) {
	f.mu.Lock()
	f.progres.Load(ctx)
	f.planner.Load(ctx)
	f.dungeon.Load(ctx)
	f.marks.Load(ctx)
	f.mu.Unlock()
	f.timer.Arm(f.onMidnight)
}

// Close stops the midnight timer.
func (f *Facade) Close() {
	f.timer.Stop()
}

// Subscribe registers a listener invoked after every state change. The
// listener runs on the mutating goroutine and must not call back into
// the facade.
func (f *Facade) Subscribe(fn func(Snapshot)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
}

// Snapshot returns the current state.
func (f *Facade) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Facade) snapshotLocked() Snapshot {
	return Snapshot{
		Date:          f.clock.Today(),
		XP:            f.progres.XP(),
		Level:         f.progres.Level(),
		Streak:        f.progres.Streak(),
		Drafts:        f.planner.Drafts(),
		SavedGoals:    f.planner.Saved(),
		TomorrowGoals: f.planner.TomorrowGoals(),
		TodayMode:     f.planner.TodayMode(),
		TomorrowSaved: f.planner.TomorrowSaved(),
		DungeonCursor: f.dungeon.Cursor(),
		DungeonRoster: f.dungeon.Roster(),
		CanAdvance:    f.dungeon.CanAdvance(),
	}
}

func (f *Facade) notifyLocked() {
	snap := f.snapshotLocked()
	for _, fn := range f.subs {
		fn(snap)
	}
}

// AddGoal validates and appends a draft. A validation failure is
// returned to the caller and changes nothing.
func (f *Facade) AddGoal(ctx context.Context, in goals.AddInput) (*goals.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, err := f.planner.Add(ctx, in)
	if err != nil {
		return nil, err
	}
	f.marks.RecordAction(ctx, f.clock.Today())
	f.notifyLocked()
	return g, nil
}

// RemoveGoal deletes a draft by id.
func (f *Facade) RemoveGoal(ctx context.Context, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.planner.Remove(ctx, id)
	f.notifyLocked()
}

// ToggleComplete marks a goal done, awarding XP on the first
// completion only.
func (f *Facade) ToggleComplete(ctx context.Context, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.planner.ToggleComplete(ctx, id)
	f.notifyLocked()
}

// SaveGoals commits the drafts under the active mode's date key and
// marks the planned date on the calendar.
func (f *Facade) SaveGoals(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	drafts := f.planner.Drafts()
	f.planner.Commit(ctx)
	date := f.clock.Today()
	if !f.planner.TodayMode() {
		date = f.clock.Tomorrow()
	}
	f.marks.RecordPlanned(ctx, date, drafts)
	f.notifyLocked()
}

// SetTodayMode switches the planning target between today and tomorrow.
func (f *Facade) SetTodayMode(ctx context.Context, v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.planner.SetTodayMode(ctx, v)
	f.notifyLocked()
}

// ClearDrafts empties the working list without committing.
func (f *Facade) ClearDrafts(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.planner.ClearDrafts(ctx)
	f.notifyLocked()
}

// AdvanceDungeon attempts to clear the current stage. Below the gate it
// is a no-op.
func (f *Facade) AdvanceDungeon(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dungeon.Advance(ctx)
	f.notifyLocked()
}

// RecordJournal marks today on the calendar with the journal dot.
func (f *Facade) RecordJournal(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marks.RecordJournal(ctx, f.clock.Today())
	f.notifyLocked()
}

// Marks exposes the calendar view for read-only rendering.
func (f *Facade) Marks() *calendar.Marks {
	return f.marks
}

// onMidnight advances the day: streak state is reconciled against the
// new date, drafts are discarded, and the saved list rebinds to what
// was committed for the day that just started.
func (f *Facade) onMidnight() {
	ctx := context.Background()
	f.mu.Lock()
	f.logger.Info("midnight rollover", zap.String("date", f.clock.Today()))
	f.progres.Load(ctx)
	f.planner.RolloverMidnight(ctx)
	f.notifyLocked()
	f.mu.Unlock()
	f.timer.Arm(f.onMidnight)
}
