package test_helpers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// APIPrefix is the path under which the mock serves endpoints; URL includes it.
const APIPrefix = "/api/"

// MockServer provides a configurable mock chat API server for testing
type MockServer struct {
	server *httptest.Server

	mutex       sync.RWMutex
	responses   map[string]*MockResponse
	responders  map[string]Responder
	defaultResp *MockResponse
	delay       time.Duration

	logMutex   sync.Mutex
	requestLog []RequestEntry
	callCount  map[string]int
}

// RequestEntry logs incoming requests for assertions
type RequestEntry struct {
	Method       string
	Endpoint     string
	Query        url.Values
	Headers      http.Header
	Body         string
	Timestamp    time.Time
	ResponseCode int
}

// JSONBody decodes the logged body as a JSON object.
func (e RequestEntry) JSONBody() (map[string]any, error) {
	var body map[string]any
	if err := json.Unmarshal([]byte(e.Body), &body); err != nil {
		return nil, err
	}
	return body, nil
}

// MockResponse defines a mock API response
type MockResponse struct {
	Status  int
	Body    string
	Headers map[string]string
	Delay   time.Duration
	// Hijack closes the connection without writing a response, which the
	// client sees as a transport failure.
	Hijack bool
}

// Responder builds a response from the request it answers.
type Responder func(entry RequestEntry) *MockResponse

// NewMockServer creates a new mock server instance whose endpoints all
// answer {"ok": true} until configured otherwise
func NewMockServer() *MockServer {
	ms := &MockServer{
		responses:  make(map[string]*MockResponse),
		responders: make(map[string]Responder),
		callCount:  make(map[string]int),
		defaultResp: &MockResponse{
			Status: http.StatusOK,
			Body:   `{"ok":true}`,
		},
	}
	ms.server = httptest.NewServer(ms)
	return ms
}

// URL returns the base URL clients should be configured with
func (ms *MockServer) URL() string {
	return ms.server.URL + APIPrefix
}

// Client returns an HTTP client wired to the server
func (ms *MockServer) Client() *http.Client {
	return ms.server.Client()
}

// Close shuts down the mock server
func (ms *MockServer) Close() {
	ms.server.Close()
}

// SetResponse configures a fixed response for an endpoint such as "message.post"
func (ms *MockServer) SetResponse(endpoint string, response *MockResponse) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.responses[endpoint] = response
}

// SetResponder configures a dynamic response for an endpoint. It takes
// precedence over SetResponse.
func (ms *MockServer) SetResponder(endpoint string, responder Responder) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.responders[endpoint] = responder
}

// SetDefaultResponse configures the response for unconfigured endpoints
func (ms *MockServer) SetDefaultResponse(response *MockResponse) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.defaultResp = response
}

// SetDelay adds delay to all responses
func (ms *MockServer) SetDelay(delay time.Duration) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.delay = delay
}

// SetupError makes every unconfigured endpoint answer with statusCode
func (ms *MockServer) SetupError(statusCode int, message string) {
	ms.SetDefaultResponse(&MockResponse{
		Status:  statusCode,
		Body:    fmt.Sprintf(`{"ok":false,"error":%q}`, message),
		Headers: map[string]string{"Content-Type": "application/json"},
	})
}

// GetRequestLog returns the request log
func (ms *MockServer) GetRequestLog() []RequestEntry {
	ms.logMutex.Lock()
	defer ms.logMutex.Unlock()
	return append([]RequestEntry{}, ms.requestLog...)
}

// GetCallCount returns the call count for an endpoint
func (ms *MockServer) GetCallCount(endpoint string) int {
	ms.logMutex.Lock()
	defer ms.logMutex.Unlock()
	return ms.callCount[endpoint]
}

// TotalCalls returns the number of requests served across all endpoints
func (ms *MockServer) TotalCalls() int {
	ms.logMutex.Lock()
	defer ms.logMutex.Unlock()
	return len(ms.requestLog)
}

// ClearLog clears the request log
func (ms *MockServer) ClearLog() {
	ms.logMutex.Lock()
	defer ms.logMutex.Unlock()
	ms.requestLog = ms.requestLog[:0]
	ms.callCount = make(map[string]int)
}

// AssertRequestCount asserts that a specific number of requests were made to an endpoint
func (ms *MockServer) AssertRequestCount(endpoint string, expectedCount int) error {
	actualCount := ms.GetCallCount(endpoint)
	if actualCount != expectedCount {
		return fmt.Errorf("expected %d requests to %s, got %d", expectedCount, endpoint, actualCount)
	}
	return nil
}

// GetLastRequest returns the last request made to a specific endpoint
func (ms *MockServer) GetLastRequest(endpoint string) (*RequestEntry, error) {
	ms.logMutex.Lock()
	defer ms.logMutex.Unlock()

	for i := len(ms.requestLog) - 1; i >= 0; i-- {
		if ms.requestLog[i].Endpoint == endpoint {
			entry := ms.requestLog[i]
			return &entry, nil
		}
	}

	return nil, fmt.Errorf("no requests found for endpoint: %s", endpoint)
}

// WaitForRequests waits for a specific number of requests to be made
func (ms *MockServer) WaitForRequests(count int, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		if ms.TotalCalls() >= count {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for %d requests", count)
		case <-ticker.C:
		}
	}
}

// ServeHTTP implements http.Handler
func (ms *MockServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	entry := RequestEntry{
		Method:    r.Method,
		Endpoint:  strings.TrimPrefix(r.URL.Path, APIPrefix),
		Query:     r.URL.Query(),
		Headers:   r.Header.Clone(),
		Timestamp: time.Now(),
	}
	if r.Body != nil {
		body, _ := io.ReadAll(r.Body)
		entry.Body = string(body)
	}

	ms.mutex.RLock()
	responder, hasResponder := ms.responders[entry.Endpoint]
	response, exists := ms.responses[entry.Endpoint]
	if !exists {
		response = ms.defaultResp
	}
	delay := ms.delay
	ms.mutex.RUnlock()

	if hasResponder {
		response = responder(entry)
	}

	if totalDelay := delay + response.Delay; totalDelay > 0 {
		time.Sleep(totalDelay)
	}

	if response.Hijack {
		ms.record(entry)
		if hj, ok := w.(http.Hijacker); ok {
			if conn, _, err := hj.Hijack(); err == nil {
				conn.Close()
				return
			}
		}
		panic(http.ErrAbortHandler)
	}

	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}

	status := response.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(response.Body))

	entry.ResponseCode = status
	ms.record(entry)
}

func (ms *MockServer) record(entry RequestEntry) {
	ms.logMutex.Lock()
	defer ms.logMutex.Unlock()
	ms.requestLog = append(ms.requestLog, entry)
	ms.callCount[entry.Endpoint]++
}

// ChatMockServer answers each wrapped endpoint the way the real API does
// for a successful call, echoing identifiers from the request
type ChatMockServer struct {
	*MockServer
	tsCounter int64
}

// NewChatMockServer creates a mock server pre-configured with chat API responses
func NewChatMockServer() *ChatMockServer {
	server := &ChatMockServer{
		MockServer: NewMockServer(),
		tsCounter:  1700000000,
	}
	server.setupDefaultResponses()
	return server
}

// setupDefaultResponses configures the wrapped endpoints
func (cms *ChatMockServer) setupDefaultResponses() {
	cms.SetResponder("message.post", func(e RequestEntry) *MockResponse {
		body, _ := e.JSONBody()
		return okJSON(map[string]any{
			"channel": body["channel"],
			"ts":      cms.nextTS(),
			"message": map[string]any{"type": "message", "text": body["text"]},
		})
	})

	cms.SetResponder("message.update", func(e RequestEntry) *MockResponse {
		body, _ := e.JSONBody()
		return okJSON(map[string]any{
			"channel": body["channel"],
			"ts":      body["ts"],
			"text":    body["text"],
		})
	})

	cms.SetResponder("message.delete", func(e RequestEntry) *MockResponse {
		body, _ := e.JSONBody()
		return okJSON(map[string]any{"channel": body["channel"], "ts": body["ts"]})
	})

	cms.SetResponder("message.post-ephemeral", func(e RequestEntry) *MockResponse {
		return okJSON(map[string]any{"message_ts": cms.nextTS()})
	})

	cms.SetResponder("message.schedule", func(e RequestEntry) *MockResponse {
		body, _ := e.JSONBody()
		return okJSON(map[string]any{
			"channel":              body["channel"],
			"scheduled_message_id": "Q" + strconv.FormatInt(atomic.AddInt64(&cms.tsCounter, 1), 10),
			"post_at":              body["post_at"],
		})
	})

	cms.SetResponder("message.scheduled.list", func(e RequestEntry) *MockResponse {
		return okJSON(map[string]any{
			"scheduled_messages": []any{
				map[string]any{"id": "Q1", "channel_id": e.Query.Get("channel"), "post_at": 1700003600, "text": "later"},
			},
			"response_metadata": map[string]any{"next_cursor": ""},
		})
	})

	cms.SetResponder("message.scheduled.delete", func(e RequestEntry) *MockResponse {
		return okJSON(nil)
	})

	cms.SetResponder("reaction.add", func(e RequestEntry) *MockResponse {
		return okJSON(nil)
	})

	cms.SetResponder("reaction.remove", func(e RequestEntry) *MockResponse {
		return okJSON(nil)
	})

	cms.SetResponder("reaction.get", func(e RequestEntry) *MockResponse {
		return okJSON(map[string]any{
			"type":    "message",
			"channel": e.Query.Get("channel"),
			"message": map[string]any{
				"ts": e.Query.Get("timestamp"),
				"reactions": []any{
					map[string]any{"name": "tada", "users": []any{"U1", "U2"}, "count": 2},
				},
			},
		})
	})
}

// RejectChannel makes every endpoint answer {"ok":false,"error":code} for channel
func (cms *ChatMockServer) RejectChannel(endpoint, channel, code string) {
	cms.mutex.RLock()
	next := cms.responders[endpoint]
	cms.mutex.RUnlock()

	cms.SetResponder(endpoint, func(e RequestEntry) *MockResponse {
		body, _ := e.JSONBody()
		if body["channel"] == channel || e.Query.Get("channel") == channel {
			return &MockResponse{
				Status:  http.StatusOK,
				Body:    fmt.Sprintf(`{"ok":false,"error":%q}`, code),
				Headers: map[string]string{"Content-Type": "application/json"},
			}
		}
		if next != nil {
			return next(e)
		}
		return okJSON(nil)
	})
}

func (cms *ChatMockServer) nextTS() string {
	n := atomic.AddInt64(&cms.tsCounter, 1)
	return strconv.FormatInt(n, 10) + ".000100"
}

func okJSON(fields map[string]any) *MockResponse {
	body := map[string]any{"ok": true}
	for k, v := range fields {
		body[k] = v
	}
	raw, _ := json.Marshal(body)
	return &MockResponse{
		Status:  http.StatusOK,
		Body:    string(raw),
		Headers: map[string]string{"Content-Type": "application/json"},
	}
}
