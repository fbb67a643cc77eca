package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"
)

// Capture is one recorded gateway request.
type Capture struct {
	Method    string
	Path      string
	Query     url.Values
	Body      []byte
	Timestamp time.Time
}

// Form parses the captured body as an application/x-www-form-urlencoded
// payload. Returns an empty Values on parse failure.
func (c *Capture) Form() url.Values {
	form, err := url.ParseQuery(string(c.Body))
	if err != nil {
		return url.Values{}
	}
	return form
}

// MockGateway is a mock BulkSMSBD API server for testing.
type MockGateway struct {
	*httptest.Server
	t        *testing.T
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	captures []Capture
}

// NewMockGateway creates a mock gateway server. The server is
// automatically closed when the test completes.
func NewMockGateway(t *testing.T) *MockGateway {
	t.Helper()

	m := &MockGateway{
		t:        t,
		handlers: make(map[string]http.HandlerFunc),
		captures: make([]Capture, 0),
	}

	m.Server = httptest.NewServer(http.HandlerFunc(m.handle))
	t.Cleanup(m.Server.Close)
	return m
}

func (m *MockGateway) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body.Close()

	m.mu.Lock()
	m.captures = append(m.captures, Capture{
		Method:    r.Method,
		Path:      r.URL.Path,
		Query:     r.URL.Query(),
		Body:      body,
		Timestamp: time.Now(),
	})
	handler, exists := m.handlers[r.URL.Path]
	m.mu.Unlock()

	if exists {
		handler(w, r)
		return
	}

	ReplySuccess(w)
}

// On registers a handler for a gateway endpoint path.
//
// Example:
//
//	server.On("/smsapi", func(w http.ResponseWriter, r *http.Request) {
//	    testutil.ReplyCode(w, 1007)
//	})
func (m *MockGateway) On(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// Captures returns all captured requests.
func (m *MockGateway) Captures() []Capture {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Capture{}, m.captures...)
}

// LastCapture returns the most recent captured request.
func (m *MockGateway) LastCapture() *Capture {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.captures) == 0 {
		return nil
	}
	return &m.captures[len(m.captures)-1]
}

// CaptureCount returns the total number of captured requests.
func (m *MockGateway) CaptureCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.captures)
}

// Reset clears all captures and handlers.
func (m *MockGateway) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.captures = m.captures[:0]
	m.handlers = make(map[string]http.HandlerFunc)
}

// TimeBetweenCaptures returns the duration between two captures.
func (m *MockGateway) TimeBetweenCaptures(i, j int) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || j < 0 || i >= len(m.captures) || j >= len(m.captures) {
		return 0
	}
	return m.captures[j].Timestamp.Sub(m.captures[i].Timestamp)
}

// BaseURL returns the server's base URL.
// Use this as the gateway base URL when creating clients.
func (m *MockGateway) BaseURL() string {
	return m.Server.URL
}
