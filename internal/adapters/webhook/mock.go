package webhook

import (
	"context"
	"encoding/json"
	"sync"
)

// MockPoster is an in-memory Poster for testing. It records every payload
// and answers with Result or Err.
type MockPoster struct {
	mu       sync.Mutex
	payloads [][]byte

	Result *Result
	Err    error
}

// NewMockPoster creates a MockPoster answering 200 with body
func NewMockPoster(body string) *MockPoster {
	return &MockPoster{
		Result: &Result{StatusCode: 200, Body: body},
	}
}

// Post implements Poster.Post
func (m *MockPoster) Post(ctx context.Context, payload interface{}) (*Result, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, NewWebhookError("Post", ErrInvalidPayload)
	}

	m.mu.Lock()
	m.payloads = append(m.payloads, data)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	result := *m.Result
	return &result, nil
}

// Calls returns how many times Post was invoked
func (m *MockPoster) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payloads)
}

// LastPayload decodes the most recent payload into a generic map
func (m *MockPoster) LastPayload() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.payloads) == 0 {
		return nil
	}
	var out map[string]interface{}
	_ = json.Unmarshal(m.payloads[len(m.payloads)-1], &out)
	return out
}
