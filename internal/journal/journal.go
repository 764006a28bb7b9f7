// Package journal stores daily reflection entries. Each day's entries
// live under their own date key, newest first, with a separate index of
// days that have entries.
package journal

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Arnav-W-Coder/LevelUp/internal/clock"
	"github.com/Arnav-W-Coder/LevelUp/internal/store"
	"github.com/Arnav-W-Coder/LevelUp/internal/summarize"
)

const keyIndex = "levelup_journal_index"

func keyFor(ymd string) string {
	return "levelup_journal:" + ymd
}

// Entry is one saved reflection.
type Entry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Summary   string `json:"summary"`
	Emotion   string `json:"emotion"`
	CreatedAt int64  `json:"createdAt"`
}

// dayEntries is the persisted envelope for one date key.
type dayEntries struct {
	Entries []Entry `json:"entries"`
}

// Book reads and writes journal entries.
type Book struct {
	kv         store.KV
	clock      *clock.Clock
	summarizer summarize.Summarizer
	logger     *zap.Logger
}

// NewBook creates a journal over kv. The summarizer may be nil, in
// which case every entry gets the fallback summary.
func NewBook(kv store.KV, c *clock.Clock, s summarize.Summarizer, logger *zap.Logger) *Book {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Book{kv: kv, clock: c, summarizer: s, logger: logger}
}

// AnalyzeAndSave summarizes a reflection and stores it under today's
// key. A summarizer failure still saves the entry with a plain
// fallback summary; only empty input is an error.
func (b *Book) AnalyzeAndSave(ctx context.Context, reflection string) (*Entry, error) {
	reflection = strings.TrimSpace(reflection)
	if reflection == "" {
		return nil, summarize.ErrEmptyReflection
	}

	summary := "Saved your note."
	emotion := summarize.EmotionNeutral
	if b.summarizer != nil {
		a, err := b.summarizer.Analyze(ctx, summarize.Request{Reflection: reflection})
		if err != nil {
			b.logger.Warn("summarizer failed, saving without analysis", zap.Error(err))
		} else {
			summary = a.Summary
			emotion = a.Emotion
		}
	}

	now := b.clock.Time()
	entry := Entry{
		ID:        newEntryID(now),
		Text:      reflection,
		Summary:   summary,
		Emotion:   emotion,
		CreatedAt: now.UnixMilli(),
	}
	if err := b.save(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (b *Book) save(ctx context.Context, entry Entry) error {
	today := b.clock.Today()
	key := keyFor(today)

	var day dayEntries
	if _, err := store.GetJSON(ctx, b.kv, key, &day); err != nil {
		b.logger.Warn("discarding unreadable value", zap.String("key", key), zap.Error(err))
		day = dayEntries{}
	}
	day.Entries = append([]Entry{entry}, day.Entries...)
	if err := store.SetJSON(ctx, b.kv, key, day); err != nil {
		return fmt.Errorf("save journal entry: %w", err)
	}

	var index []string
	if _, err := store.GetJSON(ctx, b.kv, keyIndex, &index); err != nil {
		b.logger.Warn("discarding unreadable value", zap.String("key", keyIndex), zap.Error(err))
		index = nil
	}
	for _, d := range index {
		if d == today {
			return nil
		}
	}
	index = append(index, today)
	if err := store.SetJSON(ctx, b.kv, keyIndex, index); err != nil {
		return fmt.Errorf("save journal index: %w", err)
	}
	return nil
}

// Today returns today's entries, newest first.
func (b *Book) Today(ctx context.Context) ([]Entry, error) {
	return b.Entries(ctx, b.clock.Today())
}

// Entries returns the entries for one date, newest first.
func (b *Book) Entries(ctx context.Context, ymd string) ([]Entry, error) {
	var day dayEntries
	if _, err := store.GetJSON(ctx, b.kv, keyFor(ymd), &day); err != nil {
		return nil, err
	}
	return day.Entries, nil
}

// RecentDates returns up to n most recent dates that have entries,
// oldest first.
func (b *Book) RecentDates(ctx context.Context, n int) ([]string, error) {
	var index []string
	if _, err := store.GetJSON(ctx, b.kv, keyIndex, &index); err != nil {
		return nil, err
	}
	if len(index) > n {
		index = index[len(index)-n:]
	}
	return index, nil
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func newEntryID(now time.Time) string {
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return fmt.Sprintf("%d:%s", now.UnixMilli(), suffix)
}
