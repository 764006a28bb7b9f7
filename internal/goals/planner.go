package goals

import (
	"context"

	"go.uber.org/zap"

	"github.com/Arnav-W-Coder/LevelUp/internal/clock"
	"github.com/Arnav-W-Coder/LevelUp/internal/progress"
	"github.com/Arnav-W-Coder/LevelUp/internal/store"
)

// Storage keys owned by this package. Committed snapshots additionally
// use one dynamic date key (YYYY-MM-DD) per calendar day ever saved.
const (
	keyDrafts        = "levelup_goals"
	keyTodayMode     = "levelup_todaymode"
	keyTomorrowSaved = "levelup_tomorrowSaved"
	keyTomorrowGoals = "levelup_tomorrowGoals"
)

// DefaultCompletionXP is the reward for completing one goal.
const DefaultCompletionXP = 50

// Planner owns the mutable draft list for the current planning session
// and the committed snapshot the execution view acts on. The actionable
// list for "today" is whatever was committed under yesterday's date key:
// plans are made one day ahead of execution.
type Planner struct {
	kv       store.KV
	clock    *clock.Clock
	progress *progress.Store
	logger   *zap.Logger

	// CompletionXP is awarded once per goal, on the false->true
	// completion transition only.
	CompletionXP int

	drafts        []Goal
	saved         []Goal // committed snapshot from yesterday's key
	tomorrowGoals []Goal
	todayMode     bool
	tomorrowSaved bool
}

// NewPlanner creates an unloaded Planner. Call Load before use.
func NewPlanner(kv store.KV, c *clock.Clock, p *progress.Store, logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{
		kv:           kv,
		clock:        c,
		progress:     p,
		logger:       logger,
		CompletionXP: DefaultCompletionXP,
	}
}

// Load reads drafts, the actionable snapshot, and planning flags.
// Absent or corrupt keys fall back to empty lists and false flags.
func (p *Planner) Load(ctx context.Context) {
	p.drafts = nil
	p.saved = nil
	p.tomorrowGoals = nil

	p.loadJSON(ctx, keyDrafts, &p.drafts)
	p.loadJSON(ctx, p.clock.Yesterday(), &p.saved)
	p.loadJSON(ctx, keyTomorrowGoals, &p.tomorrowGoals)
	p.loadJSON(ctx, keyTodayMode, &p.todayMode)
	p.loadJSON(ctx, keyTomorrowSaved, &p.tomorrowSaved)
}

func (p *Planner) loadJSON(ctx context.Context, key string, dst any) {
	if _, err := store.GetJSON(ctx, p.kv, key, dst); err != nil {
		p.logger.Warn("discarding unreadable value", zap.String("key", key), zap.Error(err))
	}
}

// Add validates the input and appends a new goal to the draft list.
// A rejected add returns the validation error and changes nothing.
// A successful add counts as a streak-qualifying action.
func (p *Planner) Add(ctx context.Context, in AddInput) (*Goal, error) {
	if verr := validate(in); verr != nil {
		return nil, verr
	}

	g := Goal{
		ID:          newGoalID(),
		Title:       in.Template,
		Category:    in.Category,
		Description: in.Description,
		Time:        timeLabel(in),
	}
	p.drafts = append(p.drafts, g)
	p.persist(ctx, keyDrafts, p.drafts)

	p.progress.RegisterStreakAction(ctx)
	return &g, nil
}

// Remove filters the goal out of the draft list and re-persists the
// mode-appropriate date snapshot: today-mode edits land on today's key,
// tomorrow-mode edits on yesterday's (the key the execution view reads).
func (p *Planner) Remove(ctx context.Context, id string) {
	kept := p.drafts[:0:0]
	for _, g := range p.drafts {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(p.drafts) {
		return
	}
	p.drafts = kept
	p.persist(ctx, keyDrafts, p.drafts)

	if p.todayMode {
		p.persist(ctx, p.clock.Today(), p.drafts)
	} else {
		p.persist(ctx, p.clock.Yesterday(), p.drafts)
	}
}

// ToggleComplete marks the goal completed and awards the completion XP.
// Completion is a one-way ratchet: a goal already completed is left
// alone, so each goal instance rewards at most once.
func (p *Planner) ToggleComplete(ctx context.Context, id string) {
	if p.complete(ctx, p.saved, id, p.clock.Yesterday()) {
		return
	}
	p.complete(ctx, p.drafts, id, keyDrafts)
}

func (p *Planner) complete(ctx context.Context, list []Goal, id, key string) bool {
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if !list[i].IsCompleted {
			list[i].IsCompleted = true
			p.persist(ctx, key, list)
			p.progress.AwardXP(ctx, list[i].Category, p.CompletionXP)
		}
		return true
	}
	return false
}

// Commit snapshots the draft list under today's date key ("Save
// Goals"). In tomorrow mode it also locks planning in: the drafts are
// mirrored to the tomorrow-goals key and the saved flag is raised.
func (p *Planner) Commit(ctx context.Context) {
	p.persist(ctx, p.clock.Today(), p.drafts)

	if !p.todayMode {
		p.tomorrowGoals = append([]Goal(nil), p.drafts...)
		p.persist(ctx, keyTomorrowGoals, p.tomorrowGoals)
		p.SetTomorrowSaved(ctx, true)
	}
}

// SetTodayMode switches between planning for today and for tomorrow.
func (p *Planner) SetTodayMode(ctx context.Context, v bool) {
	p.todayMode = v
	p.persist(ctx, keyTodayMode, v)
}

// SetTomorrowSaved records whether tomorrow's plan is locked in.
func (p *Planner) SetTomorrowSaved(ctx context.Context, v bool) {
	p.tomorrowSaved = v
	p.persist(ctx, keyTomorrowSaved, v)
}

// ClearDrafts empties the draft list at the midnight boundary so stale
// drafts do not leak into the next day's planning session.
func (p *Planner) ClearDrafts(ctx context.Context) {
	p.drafts = nil
	p.persist(ctx, keyDrafts, p.drafts)
}

// RolloverMidnight refreshes day-relative state after the date cursor
// advances: drafts clear, tomorrow's plan unlocks, and the actionable
// snapshot is re-read from the new "yesterday".
func (p *Planner) RolloverMidnight(ctx context.Context) {
	p.ClearDrafts(ctx)
	p.SetTomorrowSaved(ctx, false)

	p.saved = nil
	p.loadJSON(ctx, p.clock.Yesterday(), &p.saved)
}

func (p *Planner) persist(ctx context.Context, key string, v any) {
	// A nil slice would serialize as JSON null; store an empty list.
	if gs, ok := v.([]Goal); ok && gs == nil {
		v = []Goal{}
	}
	if err := store.SetJSON(ctx, p.kv, key, v); err != nil {
		p.logger.Warn("persist failed", zap.String("key", key), zap.Error(err))
	}
}

// Drafts returns a copy of the in-progress draft list.
func (p *Planner) Drafts() []Goal { return append([]Goal(nil), p.drafts...) }

// Saved returns a copy of the actionable committed snapshot.
func (p *Planner) Saved() []Goal { return append([]Goal(nil), p.saved...) }

// TomorrowGoals returns a copy of the locked-in tomorrow plan.
func (p *Planner) TomorrowGoals() []Goal { return append([]Goal(nil), p.tomorrowGoals...) }

// TodayMode reports whether the planning session targets today.
func (p *Planner) TodayMode() bool { return p.todayMode }

// TomorrowSaved reports whether tomorrow's plan is locked in.
func (p *Planner) TomorrowSaved() bool { return p.tomorrowSaved }
