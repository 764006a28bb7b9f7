package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FlaskSummarizer talks to the companion summarizer service over HTTP.
// The service exposes POST /summarize taking {reflection, name, style}
// and GET /health.
type FlaskSummarizer struct {
	baseURL string
	client  *http.Client
}

// NewFlaskSummarizer creates a summarizer against the given base URL.
func NewFlaskSummarizer(cfg FlaskConfig) (*FlaskSummarizer, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("flask summarizer base URL is required")
	}
	return &FlaskSummarizer{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type flaskRequest struct {
	Reflection string `json:"reflection"`
	Name       string `json:"name,omitempty"`
	Style      string `json:"style,omitempty"`
}

type flaskError struct {
	Error string `json:"error"`
}

func (s *FlaskSummarizer) Analyze(ctx context.Context, req Request) (*Analysis, error) {
	req, err := normalizeRequest(req)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(flaskRequest{
		Reflection: req.Reflection,
		Name:       req.Name,
		Style:      req.Style,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/summarize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, &ErrBackendUnavailable{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &ErrBackendUnavailable{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &ErrRateLimit{
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("summarizer service: %s", strings.TrimSpace(string(raw))),
		}
	case resp.StatusCode >= 500:
		return nil, &ErrBackendUnavailable{Err: fmt.Errorf("summarizer service returned %d", resp.StatusCode)}
	default:
		var fe flaskError
		if json.Unmarshal(raw, &fe) == nil && fe.Error != "" {
			return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("summarizer service: %s", fe.Error)}
		}
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("summarizer service returned %d", resp.StatusCode)}
	}

	return parseAnalysis(raw)
}

func (s *FlaskSummarizer) Name() string { return "flask" }

// Health pings the service's health endpoint.
func (s *FlaskSummarizer) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(httpReq)
	if err != nil {
		return &ErrBackendUnavailable{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &ErrBackendUnavailable{Err: fmt.Errorf("health returned %d", resp.StatusCode)}
	}
	return nil
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	var secs int
	if _, err := fmt.Sscanf(v, "%d", &secs); err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
