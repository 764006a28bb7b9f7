// Package summarize turns a journal reflection into a short summary
// with a sentiment read. Several backends implement the same contract:
// a companion HTTP service, hosted LLM providers, and a local lexicon
// fallback that needs no network at all.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// MaxReflectionLen is the longest reflection a backend will accept.
const MaxReflectionLen = 1000

// Emotion labels, derived from polarity bands.
const (
	EmotionMotivated = "Motivated"
	EmotionNeutral   = "Neutral"
	EmotionStressed  = "Stressed"
)

// Coaching styles accepted by the backends.
const (
	StyleCoach  = "coach"
	StyleFriend = "friend"
	StyleZen    = "zen"
)

var (
	// ErrEmptyReflection is returned for blank input.
	ErrEmptyReflection = errors.New("empty reflection")

	// ErrReflectionTooLong is returned when input exceeds MaxReflectionLen.
	ErrReflectionTooLong = fmt.Errorf("reflection too long (max %d)", MaxReflectionLen)
)

// Analysis is the result of summarizing one reflection.
type Analysis struct {
	Summary      string   `json:"summary"`
	Emotion      string   `json:"emotion"`
	Polarity     float64  `json:"polarity"`
	Subjectivity float64  `json:"subjectivity"`
	Keywords     []string `json:"keywords"`
}

// Request carries one reflection to a backend.
type Request struct {
	Reflection string
	// Name optionally personalizes the summary. Truncated to 24 runes.
	Name string
	// Style selects the summary voice. Unknown styles fall back to coach.
	Style string
}

// Summarizer analyzes a reflection. Implementations must be safe for
// concurrent use.
type Summarizer interface {
	Analyze(ctx context.Context, req Request) (*Analysis, error)

	// Name identifies the backend for logging.
	Name() string
}

// EmotionFor maps a polarity score to its display label.
func EmotionFor(polarity float64) string {
	switch {
	case polarity > 0.35:
		return EmotionMotivated
	case polarity < -0.35:
		return EmotionStressed
	default:
		return EmotionNeutral
	}
}

// normalizeRequest trims and bounds the request fields, returning an
// error for input no backend should see.
func normalizeRequest(req Request) (Request, error) {
	req.Reflection = strings.TrimSpace(req.Reflection)
	if req.Reflection == "" {
		return req, ErrEmptyReflection
	}
	if len(req.Reflection) > MaxReflectionLen {
		return req, ErrReflectionTooLong
	}
	if name := []rune(strings.TrimSpace(req.Name)); len(name) > 24 {
		req.Name = string(name[:24])
	} else {
		req.Name = string(name)
	}
	switch req.Style {
	case StyleCoach, StyleFriend, StyleZen:
	default:
		req.Style = StyleCoach
	}
	return req, nil
}
