// Package testutil provides testing utilities for the shop-reports pipeline.
package testutil

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// PageResponse defines the behavior of a mock orders page.
type PageResponse struct {
	// StatusCode defaults to 200.
	StatusCode int

	// Body is the response payload, typically an {"orders": [...]} envelope.
	Body string

	// NextPath, when set, is rendered as a Link rel="next" header pointing
	// back at the mock server.
	NextPath string

	// RetryAfter is sent with scripted 429 responses.
	RetryAfter string

	// Delay is applied before responding.
	Delay time.Duration
}

// MockShop is a configurable mock admin API server.
type MockShop struct {
	server *httptest.Server

	mu        sync.Mutex
	pages     map[string]*pageState
	requests  int
	lastToken string
}

type pageState struct {
	resp PageResponse
	// rateLimits is the number of 429 responses to serve before succeeding.
	rateLimits int
}

// NewMockShop creates and starts a mock admin API server.
func NewMockShop() *MockShop {
	m := &MockShop{
		pages: make(map[string]*pageState),
	}
	m.server = httptest.NewServer(http.HandlerFunc(m.handle))
	return m
}

// SetPage configures the response for a path.
func (m *MockShop) SetPage(path string, resp PageResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := m.pages[path]
	if state == nil {
		state = &pageState{}
		m.pages[path] = state
	}
	state.resp = resp
}

// RateLimit makes the next n requests to path respond with 429.
func (m *MockShop) RateLimit(path string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := m.pages[path]
	if state == nil {
		state = &pageState{}
		m.pages[path] = state
	}
	state.rateLimits = n
}

// URL returns the mock server's base URL.
func (m *MockShop) URL() string {
	return m.server.URL
}

// Close shuts the server down.
func (m *MockShop) Close() {
	m.server.Close()
}

// Requests returns the number of requests received.
func (m *MockShop) Requests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests
}

// LastToken returns the access token header of the most recent request.
func (m *MockShop) LastToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastToken
}

func (m *MockShop) handle(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.requests++
	m.lastToken = r.Header.Get("X-Shopify-Access-Token")

	state := m.pages[r.URL.Path]
	var resp PageResponse
	rateLimited := false
	if state != nil {
		resp = state.resp
		if state.rateLimits > 0 {
			state.rateLimits--
			rateLimited = true
		}
	}
	m.mu.Unlock()

	if state == nil {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"errors":"Not Found"}`)
		return
	}

	if rateLimited {
		if resp.RetryAfter != "" {
			w.Header().Set("Retry-After", resp.RetryAfter)
		}
		w.WriteHeader(http.StatusTooManyRequests)
		return
	}

	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}

	if resp.NextPath != "" {
		w.Header().Set("Link", fmt.Sprintf("<%s%s>; rel=\"next\"", m.server.URL, resp.NextPath))
	}
	w.Header().Set("Content-Type", "application/json")

	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	io.WriteString(w, resp.Body)
}
