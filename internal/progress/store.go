// Package progress owns per-category XP and levels, the daily streak,
// and the leveling curve.
package progress

import (
	"context"

	"go.uber.org/zap"

	"github.com/Arnav-W-Coder/LevelUp/internal/clock"
	"github.com/Arnav-W-Coder/LevelUp/internal/store"
)

// Storage keys owned by this package.
const (
	keyXP         = "levelup_xp"
	keyLevel      = "levelup_level"
	keyStreak     = "levelup_streak"
	keyAction     = "levelup_action"
	keyLastActive = "levelup_lastActiveDate"
)

// RequiredXP returns how much XP is needed to advance from the given
// level. Fast early game, slower mid game, flattened late game.
func RequiredXP(level int) int {
	switch {
	case level <= 25:
		return 10 + level*2
	case level <= 50:
		return 60 + (level-25)*4
	default:
		return 160 + (level-50)*5
	}
}

// Store holds XP, level, and streak state in memory and persists every
// mutation. In-memory state is the source of truth for the session;
// storage exists for the next one.
type Store struct {
	kv     store.KV
	clock  *clock.Clock
	logger *zap.Logger

	xp         [NumCategories]int
	level      [NumCategories]int
	streak     int
	action     bool
	lastActive string // date key of the last streak action, "" if none
}

// NewStore creates an unloaded Store. Call Load before use.
func NewStore(kv store.KV, c *clock.Clock, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, clock: c, logger: logger}
}

// Load reads persisted state, falling back to zero values for absent or
// corrupt keys, then reconciles the streak against the calendar.
func (s *Store) Load(ctx context.Context) {
	var xp, level []int
	if ok := s.loadJSON(ctx, keyXP, &xp); ok && len(xp) == NumCategories {
		copy(s.xp[:], xp)
	}
	if ok := s.loadJSON(ctx, keyLevel, &level); ok && len(level) == NumCategories {
		copy(s.level[:], level)
	}
	s.loadJSON(ctx, keyStreak, &s.streak)
	s.loadJSON(ctx, keyAction, &s.action)
	s.loadJSON(ctx, keyLastActive, &s.lastActive)

	s.reconcileStreak(ctx)
}

// loadJSON reads one key, logging and defaulting on failure.
func (s *Store) loadJSON(ctx context.Context, key string, dst any) bool {
	ok, err := store.GetJSON(ctx, s.kv, key, dst)
	if err != nil {
		s.logger.Warn("discarding unreadable value", zap.String("key", key), zap.Error(err))
		return false
	}
	return ok
}

// reconcileStreak bridges multi-day absences. The action flag refers to
// the day it was set on: once the calendar has moved past that day it is
// stale and must clear, and if the last active day is older than
// yesterday the chain of consecutive days is broken.
func (s *Store) reconcileStreak(ctx context.Context) {
	if s.lastActive == "" {
		// A streak or action flag without a recorded date is stale state.
		if s.streak != 0 {
			s.streak = 0
			s.persist(ctx, keyStreak, s.streak)
		}
		if s.action {
			s.action = false
			s.persist(ctx, keyAction, s.action)
		}
		return
	}

	today := s.clock.Today()
	if s.lastActive == today {
		return
	}

	// The flag belongs to lastActive's day; past that day it is stale.
	if s.lastActive != s.clock.Yesterday() {
		s.streak = 0
		s.persist(ctx, keyStreak, s.streak)
	}
	if s.action {
		s.action = false
		s.persist(ctx, keyAction, s.action)
	}
}

// AwardXP adds amount to the category's XP and rolls any excess into
// levels, supporting multi-level jumps in a single call. XP never goes
// negative. Persists xp and level once the rollover loop settles.
func (s *Store) AwardXP(ctx context.Context, c Category, amount int) {
	if !c.Valid() {
		s.logger.Warn("award to invalid category dropped", zap.Int("category", int(c)))
		return
	}

	s.xp[c] += amount
	if s.xp[c] < 0 {
		s.xp[c] = 0
	}
	for s.xp[c] >= RequiredXP(s.level[c]) {
		s.xp[c] -= RequiredXP(s.level[c])
		s.level[c]++
	}

	s.persist(ctx, keyXP, s.xp[:])
	s.persist(ctx, keyLevel, s.level[:])
}

// RegisterStreakAction counts today's first qualifying action: the
// streak grows by one and the action flag latches until the next day.
// Every further call today is a no-op.
func (s *Store) RegisterStreakAction(ctx context.Context) {
	if s.action {
		return
	}
	s.streak++
	s.persist(ctx, keyStreak, s.streak)

	s.action = true
	s.lastActive = s.clock.Today()
	s.persist(ctx, keyAction, s.action)
	s.persist(ctx, keyLastActive, s.lastActive)
}

// persist writes one key best-effort. A failed write is only logged:
// the next successful mutation re-persists current state.
func (s *Store) persist(ctx context.Context, key string, v any) {
	if err := store.SetJSON(ctx, s.kv, key, v); err != nil {
		s.logger.Warn("persist failed", zap.String("key", key), zap.Error(err))
	}
}

// XP returns a copy of the per-category XP array.
func (s *Store) XP() [NumCategories]int { return s.xp }

// Level returns a copy of the per-category level array.
func (s *Store) Level() [NumCategories]int { return s.level }

// Streak returns the count of consecutive qualifying days.
func (s *Store) Streak() int { return s.streak }

// ActionTakenToday reports whether a streak action already happened today.
func (s *Store) ActionTakenToday() bool { return s.action }

// LastActiveDate returns the date key of the last streak action, or ""
// if none was ever taken.
func (s *Store) LastActiveDate() string { return s.lastActive }
