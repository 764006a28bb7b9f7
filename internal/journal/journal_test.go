package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Arnav-W-Coder/LevelUp/internal/clock"
	"github.com/Arnav-W-Coder/LevelUp/internal/summarize"
)

type memKV struct {
	data map[string]string
}

func newMemKV() *memKV { return &memKV{data: make(map[string]string)} }

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func clockAt(t time.Time) (*clock.Clock, *time.Time) {
	now := t
	return &clock.Clock{Now: func() time.Time { return now }}, &now
}

func newTestBook(s summarize.Summarizer) (*Book, *memKV, *time.Time) {
	kv := newMemKV()
	c, now := clockAt(time.Date(2024, 6, 15, 20, 0, 0, 0, time.UTC))
	return NewBook(kv, c, s, nil), kv, now
}

func TestAnalyzeAndSave(t *testing.T) {
	mock := summarize.NewMockSummarizer(summarize.MockResponse{
		Analysis: &summarize.Analysis{
			Summary: "Momentum is building.",
			Emotion: summarize.EmotionMotivated,
		},
	})
	b, kv, _ := newTestBook(mock)

	entry, err := b.AnalyzeAndSave(context.Background(), "  felt proud of my workout  ")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Text != "felt proud of my workout" {
		t.Fatalf("text = %q, want trimmed", entry.Text)
	}
	if entry.Summary != "Momentum is building." || entry.Emotion != summarize.EmotionMotivated {
		t.Fatalf("entry = %+v", entry)
	}
	if entry.ID == "" || entry.CreatedAt == 0 {
		t.Fatalf("entry id/timestamp missing: %+v", entry)
	}
	if _, ok := kv.data["levelup_journal:2024-06-15"]; !ok {
		t.Fatalf("day key missing, got keys %v", kv.data)
	}
	if mock.Calls[0].Reflection != "felt proud of my workout" {
		t.Fatalf("summarizer saw %q", mock.Calls[0].Reflection)
	}
}

func TestAnalyzeAndSaveEmptyRejected(t *testing.T) {
	b, kv, _ := newTestBook(nil)

	_, err := b.AnalyzeAndSave(context.Background(), "   ")
	if !errors.Is(err, summarize.ErrEmptyReflection) {
		t.Fatalf("err = %v", err)
	}
	if len(kv.data) != 0 {
		t.Fatalf("rejected entry wrote keys: %v", kv.data)
	}
}

func TestSummarizerFailureSavesFallback(t *testing.T) {
	mock := summarize.NewMockSummarizer(summarize.MockResponse{
		Err: &summarize.ErrBackendUnavailable{Err: errors.New("down")},
	})
	b, _, _ := newTestBook(mock)

	entry, err := b.AnalyzeAndSave(context.Background(), "rough day")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Summary != "Saved your note." || entry.Emotion != summarize.EmotionNeutral {
		t.Fatalf("fallback entry = %+v", entry)
	}

	got, err := b.Today(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Text != "rough day" {
		t.Fatalf("entries = %+v", got)
	}
}

func TestEntriesNewestFirst(t *testing.T) {
	b, _, now := newTestBook(nil)

	if _, err := b.AnalyzeAndSave(context.Background(), "first"); err != nil {
		t.Fatal(err)
	}
	*now = now.Add(time.Minute)
	if _, err := b.AnalyzeAndSave(context.Background(), "second"); err != nil {
		t.Fatal(err)
	}

	got, err := b.Today(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Text != "second" || got[1].Text != "first" {
		t.Fatalf("entries = %+v", got)
	}
}

func TestIndexTracksDatesOnce(t *testing.T) {
	b, _, now := newTestBook(nil)

	for range 2 {
		if _, err := b.AnalyzeAndSave(context.Background(), "note"); err != nil {
			t.Fatal(err)
		}
	}
	*now = now.Add(24 * time.Hour)
	if _, err := b.AnalyzeAndSave(context.Background(), "next day"); err != nil {
		t.Fatal(err)
	}

	dates, err := b.RecentDates(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 2 || dates[0] != "2024-06-15" || dates[1] != "2024-06-16" {
		t.Fatalf("dates = %v", dates)
	}

	capped, err := b.RecentDates(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(capped) != 1 || capped[0] != "2024-06-16" {
		t.Fatalf("capped dates = %v", capped)
	}
}

func TestEntriesSurviveReload(t *testing.T) {
	mock := summarize.NewMockSummarizer(summarize.MockResponse{
		Analysis: &summarize.Analysis{Summary: "ok", Emotion: summarize.EmotionNeutral},
	})
	b, kv, _ := newTestBook(mock)
	if _, err := b.AnalyzeAndSave(context.Background(), "note"); err != nil {
		t.Fatal(err)
	}

	c, _ := clockAt(time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC))
	reloaded := NewBook(kv, c, nil, nil)
	got, err := reloaded.Entries(context.Background(), "2024-06-15")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Summary != "ok" {
		t.Fatalf("entries = %+v", got)
	}
}
