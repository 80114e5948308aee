package testutil

import (
	"context"
	"sync"

	"github.com/gh0stintheshe11/Web-Client/domain/ports"
)

// Call records one request made through MockHTTPClient.
type Call struct {
	Headers map[string]string
	Method  string
	URL     string
	Body    []byte
}

// MockHTTPClient is a recording ports.HTTPClient with func-field overrides.
// Without overrides every call returns 200 with Body.
type MockHTTPClient struct {
	GetFunc  func(ctx context.Context, url string) (*ports.HTTPResponse, error)
	PostFunc func(ctx context.Context, url string, headers map[string]string, body []byte) (*ports.HTTPResponse, error)

	// Body is the default response body.
	Body string

	mu    sync.Mutex
	calls []Call
}

// Compile-time interface check
var _ ports.HTTPClient = (*MockHTTPClient)(nil)

// Get implements ports.HTTPClient.
func (m *MockHTTPClient) Get(ctx context.Context, url string) (*ports.HTTPResponse, error) {
	m.record(Call{Method: "GET", URL: url})
	if m.GetFunc != nil {
		return m.GetFunc(ctx, url)
	}
	return &ports.HTTPResponse{StatusCode: 200, Body: []byte(m.Body)}, nil
}

// Post implements ports.HTTPClient.
func (m *MockHTTPClient) Post(ctx context.Context, url string, headers map[string]string, body []byte) (*ports.HTTPResponse, error) {
	m.record(Call{Method: "POST", URL: url, Headers: headers, Body: body})
	if m.PostFunc != nil {
		return m.PostFunc(ctx, url, headers, body)
	}
	return &ports.HTTPResponse{StatusCode: 200, Body: []byte(m.Body)}, nil
}

// Calls returns a copy of the recorded calls.
func (m *MockHTTPClient) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

func (m *MockHTTPClient) record(c Call) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}
