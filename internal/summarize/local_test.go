package summarize

import (
	"context"
	"strings"
	"testing"
	"time"
)

func localAt(hour int) *LocalSummarizer {
	s := NewLocalSummarizer()
	s.now = func() time.Time {
		return time.Date(2024, 6, 15, hour, 0, 0, 0, time.UTC)
	}
	return s
}

func TestLocal_PositiveReflection(t *testing.T) {
	a, err := localAt(9).Analyze(context.Background(), Request{
		Reflection: "I finished my workout and felt proud and strong afterwards",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Emotion != EmotionMotivated {
		t.Fatalf("emotion = %q, want %q (polarity %v)", a.Emotion, EmotionMotivated, a.Polarity)
	}
	if a.Polarity <= 0.35 {
		t.Fatalf("polarity = %v, want > 0.35", a.Polarity)
	}
	if a.Summary == "" {
		t.Fatal("empty summary")
	}
}

func TestLocal_NegativeReflection(t *testing.T) {
	a, err := localAt(9).Analyze(context.Background(), Request{
		Reflection: "today was awful, I skipped everything and felt stressed and exhausted",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Emotion != EmotionStressed {
		t.Fatalf("emotion = %q, want %q (polarity %v)", a.Emotion, EmotionStressed, a.Polarity)
	}
}

func TestLocal_NeutralReflection(t *testing.T) {
	a, err := localAt(9).Analyze(context.Background(), Request{
		Reflection: "wrote some notes about the reading plan",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Emotion != EmotionNeutral {
		t.Fatalf("emotion = %q, want %q", a.Emotion, EmotionNeutral)
	}
	if a.Polarity != 0 || a.Subjectivity != 0 {
		t.Fatalf("scores = %v/%v, want 0/0", a.Polarity, a.Subjectivity)
	}
}

func TestLocal_KeywordsOrderedByFrequency(t *testing.T) {
	a, err := localAt(9).Analyze(context.Background(), Request{
		Reflection: "workout notes and workout plan and reading notes and workout",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Keywords) == 0 || a.Keywords[0] != "workout" {
		t.Fatalf("keywords = %v, want workout first", a.Keywords)
	}
	if len(a.Keywords) > 5 {
		t.Fatalf("keywords = %v, want at most 5", a.Keywords)
	}
}

func TestLocal_EmptyReflectionRejected(t *testing.T) {
	_, err := localAt(9).Analyze(context.Background(), Request{Reflection: "   "})
	if err != ErrEmptyReflection {
		t.Fatalf("err = %v, want ErrEmptyReflection", err)
	}
}

func TestLocal_LongReflectionRejected(t *testing.T) {
	_, err := localAt(9).Analyze(context.Background(), Request{
		Reflection: strings.Repeat("a", MaxReflectionLen+1),
	})
	if err != ErrReflectionTooLong {
		t.Fatalf("err = %v, want ErrReflectionTooLong", err)
	}
}

func TestLocal_GreetingFollowsClock(t *testing.T) {
	if g := greeting(time.Date(2024, 6, 15, 7, 0, 0, 0, time.UTC)); g != "Morning" {
		t.Fatalf("7h greeting = %q", g)
	}
	if g := greeting(time.Date(2024, 6, 15, 13, 0, 0, 0, time.UTC)); g != "Afternoon" {
		t.Fatalf("13h greeting = %q", g)
	}
	if g := greeting(time.Date(2024, 6, 15, 22, 0, 0, 0, time.UTC)); g != "Evening" {
		t.Fatalf("22h greeting = %q", g)
	}
}

func TestEmotionFor_Bands(t *testing.T) {
	cases := []struct {
		polarity float64
		want     string
	}{
		{0.5, EmotionMotivated},
		{0.36, EmotionMotivated},
		{0.35, EmotionNeutral},
		{0, EmotionNeutral},
		{-0.35, EmotionNeutral},
		{-0.36, EmotionStressed},
		{-1, EmotionStressed},
	}
	for _, c := range cases {
		if got := EmotionFor(c.polarity); got != c.want {
			t.Errorf("EmotionFor(%v) = %q, want %q", c.polarity, got, c.want)
		}
	}
}
