package summarize

import (
	"context"
	"sync"
)

// MockResponse is a canned result for the MockSummarizer.
type MockResponse struct {
	Analysis *Analysis
	Err      error
}

// MockSummarizer is a deterministic Summarizer for testing. It returns
// canned responses in FIFO order and records every request.
type MockSummarizer struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockSummarizer creates a MockSummarizer with the given canned
// responses.
func NewMockSummarizer(responses ...MockResponse) *MockSummarizer {
	return &MockSummarizer{responses: responses}
}

// Analyze returns the next canned response, or ErrBackendUnavailable
// when the queue is empty.
func (m *MockSummarizer) Analyze(_ context.Context, req Request) (*Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrBackendUnavailable{}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}
	return resp.Analysis, nil
}

func (m *MockSummarizer) Name() string { return "mock" }

// AddResponse appends a canned response to the queue.
func (m *MockSummarizer) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Analyze calls made.
func (m *MockSummarizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
