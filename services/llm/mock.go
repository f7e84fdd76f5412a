// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llm

import (
	"context"
	"sync"
)

// MockClient is a scriptable Client for tests.
//
// Queued responses are returned in order; once drained, the default
// response is returned. A non-nil GenerateFunc overrides everything.
//
// Thread Safety: MockClient is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	responses       []string
	defaultResponse string
	errs            []error
	calls           []string

	// GenerateFunc, when set, handles calls directly.
	GenerateFunc func(ctx context.Context, prompt string, params GenerationParams) (string, error)
}

// NewMockClient creates a mock with a bland default response.
func NewMockClient() *MockClient {
	return &MockClient{defaultResponse: "mock response"}
}

// QueueResponse appends a response to return on a future call.
func (m *MockClient) QueueResponse(text string) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, text)
	return m
}

// QueueError appends an error to return on a future call. Errors are
// consumed before queued responses.
func (m *MockClient) QueueError(err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, err)
	return m
}

// WithDefaultResponse sets the response used once the queue is drained.
func (m *MockClient) WithDefaultResponse(text string) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultResponse = text
	return m
}

// Calls returns the prompts passed to Generate so far.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// Generate implements the Client interface.
func (m *MockClient) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, params)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, prompt)

	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		return "", err
	}
	if len(m.responses) > 0 {
		resp := m.responses[0]
		m.responses = m.responses[1:]
		return resp, nil
	}
	return m.defaultResponse, nil
}
