package summarize

import (
	"context"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
)

// LocalSummarizer is an offline lexicon-based fallback. It scores
// sentiment from small positive and negative word lists, extracts
// keywords by frequency, and fills a canned template in the requested
// voice. No network, no credentials.
type LocalSummarizer struct {
	// now is swappable for tests; the greeting depends on it.
	now func() time.Time
}

// NewLocalSummarizer creates the offline backend.
func NewLocalSummarizer() *LocalSummarizer {
	return &LocalSummarizer{now: time.Now}
}

var positiveWords = map[string]bool{
	"accomplished": true, "awesome": true, "best": true, "better": true,
	"calm": true, "confident": true, "energized": true, "enjoyed": true,
	"excited": true, "finished": true, "focused": true, "glad": true,
	"good": true, "grateful": true, "great": true, "happy": true,
	"improved": true, "love": true, "loved": true, "motivated": true,
	"proud": true, "strong": true, "win": true, "won": true,
}

var negativeWords = map[string]bool{
	"anxious": true, "awful": true, "bad": true, "behind": true,
	"depressed": true, "difficult": true, "exhausted": true, "failed": true,
	"frustrated": true, "hard": true, "hate": true, "hopeless": true,
	"lazy": true, "lost": true, "overwhelmed": true, "sad": true,
	"skipped": true, "stressed": true, "stuck": true, "terrible": true,
	"tired": true, "worried": true, "worse": true, "worst": true,
}

var stopwords = map[string]bool{
	"a": true, "about": true, "after": true, "all": true, "an": true,
	"and": true, "are": true, "as": true, "at": true, "be": true,
	"been": true, "but": true, "by": true, "did": true, "do": true,
	"for": true, "from": true, "had": true, "have": true, "i": true,
	"in": true, "is": true, "it": true, "just": true, "me": true,
	"my": true, "not": true, "of": true, "on": true, "so": true,
	"that": true, "the": true, "this": true, "to": true, "today": true,
	"very": true, "was": true, "were": true, "with": true, "you": true,
}

var wordRe = regexp.MustCompile(`[a-z0-9][a-z0-9'-]*`)

var localTemplates = map[string]map[string][]string{
	"positive": {
		StyleCoach: {
			"{greeting}, {name}! Momentum is building. That {topic} win keeps stacking.",
			"You showed up and it shows. Bank that confidence and take the next tiny step.",
		},
		StyleFriend: {
			"That felt good, huh? Proud of you for sticking with {topic}.",
			"You did the thing. That glow you feel? You earned it.",
		},
		StyleZen: {
			"Notice the lightness after {topic}. Keep choosing the small kind action.",
			"Momentum is quiet but real. Return to this feeling when it gets noisy.",
		},
	},
	"neutral": {
		StyleCoach: {
			"Logged it. Steady reps matter. One tiny nudge on {topic} next.",
			"Not every day is fireworks. Keep the base strong and progress follows.",
		},
		StyleFriend: {
			"Okay, noted. Even writing this down helps future you.",
			"Sometimes fine is a win. Tomorrow we add one percent.",
		},
		StyleZen: {
			"You observed without judgment. That is practice.",
			"Quiet progress is still progress.",
		},
	},
	"negative": {
		StyleCoach: {
			"Tough reps count double. One ultra-small next step on {topic}, right now.",
			"Shrink the target: two minutes on {topic}. Start there.",
		},
		StyleFriend: {
			"That was rough. Proud of you for being real about it.",
			"You are not alone in this. Small is still forward.",
		},
		StyleZen: {
			"Name the weight, breathe once, take the smallest step.",
			"Storms pass. Anchor in a single simple act.",
		},
	},
}

func (s *LocalSummarizer) Analyze(_ context.Context, req Request) (*Analysis, error) {
	req, err := normalizeRequest(req)
	if err != nil {
		return nil, err
	}

	words := wordRe.FindAllString(strings.ToLower(req.Reflection), -1)
	polarity, subjectivity := scoreSentiment(words)
	keywords := topKeywords(words, 5)

	band := "neutral"
	switch {
	case polarity > 0.35:
		band = "positive"
	case polarity < -0.35:
		band = "negative"
	}

	templates := localTemplates[band][req.Style]
	summary := fillTemplate(templates[rand.IntN(len(templates))], req.Name, keywords, s.now())

	return &Analysis{
		Summary:      summary,
		Emotion:      EmotionFor(polarity),
		Polarity:     polarity,
		Subjectivity: subjectivity,
		Keywords:     keywords,
	}, nil
}

func (s *LocalSummarizer) Name() string { return "local" }

// scoreSentiment returns polarity in [-1,1] and subjectivity in [0,1]
// from the fraction of sentiment-bearing words.
func scoreSentiment(words []string) (float64, float64) {
	if len(words) == 0 {
		return 0, 0
	}
	var pos, neg int
	for _, w := range words {
		if positiveWords[w] {
			pos++
		} else if negativeWords[w] {
			neg++
		}
	}
	charged := pos + neg
	if charged == 0 {
		return 0, 0
	}
	polarity := float64(pos-neg) / float64(charged)
	subjectivity := float64(charged) / float64(len(words))
	if subjectivity > 1 {
		subjectivity = 1
	}
	return polarity, subjectivity
}

// topKeywords returns up to n distinct content words ordered by
// frequency, ties broken by first appearance.
func topKeywords(words []string, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, w := range words {
		if stopwords[w] || len(w) < 2 {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	out := append([]string(nil), order...)
	// Stable selection sort keeps first-appearance order among ties.
	for i := 0; i < len(out); i++ {
		best := i
		for j := i + 1; j < len(out); j++ {
			if counts[out[j]] > counts[out[best]] {
				best = j
			}
		}
		if best != i {
			w := out[best]
			copy(out[i+1:best+1], out[i:best])
			out[i] = w
		}
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func fillTemplate(t, name string, keywords []string, now time.Time) string {
	topic := "this"
	if len(keywords) > 0 {
		topic = keywords[0]
	}
	if name == "" {
		name = "friend"
	}
	r := strings.NewReplacer(
		"{greeting}", greeting(now),
		"{name}", name,
		"{topic}", topic,
	)
	return r.Replace(t)
}

func greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h >= 5 && h < 12:
		return "Morning"
	case h >= 12 && h < 18:
		return "Afternoon"
	default:
		return "Evening"
	}
}
