package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func flaskOK(t *testing.T, handler http.HandlerFunc) *FlaskSummarizer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	s, err := NewFlaskSummarizer(FlaskConfig{BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestFlask_Analyze(t *testing.T) {
	var gotBody flaskRequest
	s := flaskOK(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/summarize" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Error(err)
		}
		json.NewEncoder(w).Encode(Analysis{
			Summary:      "Momentum is building.",
			Emotion:      EmotionMotivated,
			Polarity:     0.6,
			Subjectivity: 0.4,
			Keywords:     []string{"workout"},
		})
	})

	a, err := s.Analyze(context.Background(), Request{
		Reflection: "great workout today",
		Name:       "Sam",
		Style:      StyleZen,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Emotion != EmotionMotivated || a.Polarity != 0.6 {
		t.Fatalf("analysis = %+v", a)
	}
	if gotBody.Reflection != "great workout today" || gotBody.Name != "Sam" || gotBody.Style != StyleZen {
		t.Fatalf("request body = %+v", gotBody)
	}
}

func TestFlask_UnknownStyleFallsBackToCoach(t *testing.T) {
	var gotStyle string
	s := flaskOK(t, func(w http.ResponseWriter, r *http.Request) {
		var body flaskRequest
		json.NewDecoder(r.Body).Decode(&body)
		gotStyle = body.Style
		json.NewEncoder(w).Encode(Analysis{Emotion: EmotionNeutral, Keywords: []string{}, Summary: "ok"})
	})

	if _, err := s.Analyze(context.Background(), Request{
		Reflection: "fine",
		Style:      "pirate",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotStyle != StyleCoach {
		t.Fatalf("style = %q, want %q", gotStyle, StyleCoach)
	}
}

func TestFlask_RateLimited(t *testing.T) {
	s := flaskOK(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "2")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(flaskError{Error: "Too many requests"})
	})

	_, err := s.Analyze(context.Background(), Request{Reflection: "hello"})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("err = %v, want ErrRateLimit", err)
	}
	if rl.RetryAfter.Seconds() != 2 {
		t.Fatalf("retry after = %v", rl.RetryAfter)
	}
}

func TestFlask_ServerError(t *testing.T) {
	s := flaskOK(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := s.Analyze(context.Background(), Request{Reflection: "hello"})
	var unavail *ErrBackendUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestFlask_ClientErrorSurfacesMessage(t *testing.T) {
	s := flaskOK(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		json.NewEncoder(w).Encode(flaskError{Error: "Reflection too long (max 1000)"})
	})

	_, err := s.Analyze(context.Background(), Request{Reflection: "hello"})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestFlask_MalformedResponseRejected(t *testing.T) {
	s := flaskOK(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"summary":"hi"}`))
	})

	_, err := s.Analyze(context.Background(), Request{Reflection: "hello"})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestFlask_Health(t *testing.T) {
	s := flaskOK(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"ok":true}`))
	})

	if err := s.Health(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
