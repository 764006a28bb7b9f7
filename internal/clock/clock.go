// Package clock provides local calendar-date keys and the one-shot
// midnight boundary timer that drives daily rollover.
package clock

import (
	"sync"
	"time"
)

// DateKeyFormat is the layout of every per-day storage key.
const DateKeyFormat = "2006-01-02"

// MidnightBuffer is added to the wait so the timer never fires on the
// wrong side of the boundary due to timer drift.
const MidnightBuffer = time.Second

// Clock resolves calendar dates in local time. The zero value uses
// time.Now; tests inject a fixed Now.
type Clock struct {
	Now func() time.Time
}

// System returns a Clock backed by time.Now.
func System() *Clock {
	return &Clock{Now: time.Now}
}

func (c *Clock) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Time returns the current instant from the injected source.
func (c *Clock) Time() time.Time { return c.now() }

// DateKey returns the local calendar date offset days from now,
// formatted YYYY-MM-DD.
func (c *Clock) DateKey(offset int) string {
	return c.now().AddDate(0, 0, offset).Format(DateKeyFormat)
}

// Today returns today's local date key.
func (c *Clock) Today() string { return c.DateKey(0) }

// Yesterday returns yesterday's local date key.
func (c *Clock) Yesterday() string { return c.DateKey(-1) }

// Tomorrow returns tomorrow's local date key.
func (c *Clock) Tomorrow() string { return c.DateKey(1) }

// UntilMidnight returns the duration until the next local midnight,
// plus the drift buffer.
func (c *Clock) UntilMidnight() time.Duration {
	now := c.now()
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return next.Sub(now) + MidnightBuffer
}

// MidnightTimer fires a callback once at the next local midnight.
// It is not repeating: the owner re-arms it from the callback (or on
// reinitialization) and must Stop it on teardown.
type MidnightTimer struct {
	clock *Clock

	mu    sync.Mutex
	timer *time.Timer
}

// NewMidnightTimer creates an unarmed timer bound to the given clock.
func NewMidnightTimer(c *Clock) *MidnightTimer {
	return &MidnightTimer{clock: c}
}

// Arm schedules fn to run once at the next local midnight. Arming an
// already-armed timer cancels the pending fire first, so at most one
// callback is outstanding.
func (m *MidnightTimer) Arm(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(m.clock.UntilMidnight(), fn)
}

// Stop cancels any pending fire. Safe to call on an unarmed timer.
func (m *MidnightTimer) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
