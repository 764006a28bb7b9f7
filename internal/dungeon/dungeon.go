// Package dungeon tracks the sequential 50-stage progression and its
// conjunctive level gate.
package dungeon

import (
	"context"

	"go.uber.org/zap"

	"github.com/Arnav-W-Coder/LevelUp/internal/progress"
	"github.com/Arnav-W-Coder/LevelUp/internal/store"
)

// Storage keys owned by this package.
const (
	keyCursor = "levelup_dungeon"
	keyRoster = "levelup_dungeonLevels"
)

// NumStages is the fixed roster size.
const NumStages = 50

// Stage is one progression checkpoint.
type Stage struct {
	ID        int  `json:"id"`
	Completed bool `json:"completed"`
}

// RequiredLevel returns the category level every category must reach to
// enter the stage at the given cursor position.
func RequiredLevel(cursor int) int {
	return 2 * (cursor + 1)
}

// Progress owns the stage roster and the player's cursor. The cursor is
// the current stage; stages below it carry their completion flag, stages
// above are locked.
type Progress struct {
	kv       store.KV
	progress *progress.Store
	logger   *zap.Logger

	cursor int
	roster []Stage
}

// NewProgress creates an unloaded Progress. Call Load before use.
func NewProgress(kv store.KV, p *progress.Store, logger *zap.Logger) *Progress {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Progress{kv: kv, progress: p, logger: logger}
}

// Load reads the cursor and roster, generating and persisting the fixed
// roster on first run. A corrupt roster is regenerated rather than
// trusted.
func (d *Progress) Load(ctx context.Context) {
	if _, err := store.GetJSON(ctx, d.kv, keyCursor, &d.cursor); err != nil {
		d.logger.Warn("discarding unreadable value", zap.String("key", keyCursor), zap.Error(err))
		d.cursor = 0
	}

	var roster []Stage
	ok, err := store.GetJSON(ctx, d.kv, keyRoster, &roster)
	if err != nil {
		d.logger.Warn("discarding unreadable value", zap.String("key", keyRoster), zap.Error(err))
		ok = false
	}
	if ok && len(roster) == NumStages {
		d.roster = roster
		return
	}

	d.roster = make([]Stage, NumStages)
	for i := range d.roster {
		d.roster[i] = Stage{ID: i}
	}
	d.persist(ctx, keyRoster, d.roster)
}

// CanAdvance reports whether every category level clears the current
// stage's gate. The gate is conjunctive: all four must qualify. A
// player who has cleared the whole roster cannot advance further.
func (d *Progress) CanAdvance() bool {
	if d.cursor >= NumStages {
		return false
	}
	required := RequiredLevel(d.cursor)
	for _, lvl := range d.progress.Level() {
		if lvl < required {
			return false
		}
	}
	return true
}

// Advance completes the current stage and moves the cursor forward.
// Silent no-op when the gate fails or the roster is exhausted.
func (d *Progress) Advance(ctx context.Context) {
	if !d.CanAdvance() {
		return
	}
	d.roster[d.cursor].Completed = true
	d.cursor++

	d.persist(ctx, keyRoster, d.roster)
	d.persist(ctx, keyCursor, d.cursor)
}

func (d *Progress) persist(ctx context.Context, key string, v any) {
	if err := store.SetJSON(ctx, d.kv, key, v); err != nil {
		d.logger.Warn("persist failed", zap.String("key", key), zap.Error(err))
	}
}

// Cursor returns the current stage position, 0..NumStages.
func (d *Progress) Cursor() int { return d.cursor }

// Roster returns a copy of the 50-stage table.
func (d *Progress) Roster() []Stage { return append([]Stage(nil), d.roster...) }
