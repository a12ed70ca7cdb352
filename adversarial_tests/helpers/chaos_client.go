package helpers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ChaosMode defines the type of chaos to inject
type ChaosMode int

const (
	// ChaosNone forwards requests untouched
	ChaosNone ChaosMode = iota

	// ChaosTimeout forwards the request with an already expired deadline
	ChaosTimeout

	// ChaosConnectionReset fails before any response arrives
	ChaosConnectionReset

	// ChaosPartialRead returns a body that fails mid-read
	ChaosPartialRead

	// ChaosServerError answers 500 with an HTML page
	ChaosServerError

	// ChaosRateLimited answers 429 with a Retry-After header and a JSON error body
	ChaosRateLimited

	// ChaosEmptyBody answers 200 with no body
	ChaosEmptyBody

	// ChaosOversizedBody answers 200 with a body larger than any client limit
	ChaosOversizedBody

	// ChaosTruncatedJSON answers 200 with a JSON object cut short
	ChaosTruncatedJSON

	// ChaosNonObjectJSON answers 200 with valid JSON that is not an object
	ChaosNonObjectJSON

	// ChaosIntermittent randomly applies one of the failure modes
	ChaosIntermittent
)

// OversizedBodyBytes is the size of the ChaosOversizedBody payload.
const OversizedBodyBytes = 12 << 20

// Doer matches the transport interface accepted by the chat client.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// ChaosConfig configures the chaos client behavior
type ChaosConfig struct {
	// Mode determines which type of chaos to inject
	Mode ChaosMode

	// FailureRate determines probability of failure (0.0 to 1.0)
	// Only used for ChaosIntermittent mode
	FailureRate float64

	// PartialReadBytes specifies how many bytes to read before failing
	// Only used for ChaosPartialRead mode
	PartialReadBytes int

	// Seed makes ChaosIntermittent reproducible; zero uses the clock
	Seed int64
}

// ChaosClient wraps a Doer and injects transport and response failures
type ChaosClient struct {
	next     Doer
	config   ChaosConfig
	requests atomic.Int64

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewChaosClient creates a chaos client forwarding healthy requests to next.
// A nil next answers every forwarded request with {"ok":true}.
func NewChaosClient(next Doer, config ChaosConfig) *ChaosClient {
	if next == nil {
		next = okDoer{}
	}
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &ChaosClient{
		next:   next,
		config: config,
		rnd:    rand.New(rand.NewSource(seed)),
	}
}

// Requests returns how many requests reached the chaos client
func (c *ChaosClient) Requests() int64 {
	return c.requests.Load()
}

// Do executes an HTTP request with chaos injection
func (c *ChaosClient) Do(req *http.Request) (*http.Response, error) {
	c.requests.Add(1)

	switch c.pickMode() {
	case ChaosTimeout:
		ctx, cancel := context.WithTimeout(req.Context(), time.Nanosecond)
		defer cancel()
		<-ctx.Done()
		return c.next.Do(req.WithContext(ctx))

	case ChaosConnectionReset:
		return nil, errors.New("read tcp: connection reset by peer")

	case ChaosPartialRead:
		resp, err := c.next.Do(req)
		if err != nil {
			return nil, err
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		n := c.config.PartialReadBytes
		if n <= 0 || n >= len(body) {
			n = len(body) / 2
		}
		resp.Body = &partialReadCloser{reader: bytes.NewReader(body[:n]), failAfter: n}
		return resp, nil

	case ChaosServerError:
		return newResponse(req, http.StatusInternalServerError, "<html><body>Internal Server Error</body></html>", nil), nil

	case ChaosRateLimited:
		return newResponse(req, http.StatusTooManyRequests, `{"ok":false,"error":"ratelimited"}`,
			map[string]string{"Retry-After": "30"}), nil

	case ChaosEmptyBody:
		return newResponse(req, http.StatusOK, "", nil), nil

	case ChaosOversizedBody:
		padding := strings.Repeat("A", OversizedBodyBytes)
		return newResponse(req, http.StatusOK, `{"ok":true,"padding":"`+padding+`"}`, nil), nil

	case ChaosTruncatedJSON:
		return newResponse(req, http.StatusOK, `{"ok":true,"channel":"C1`, nil), nil

	case ChaosNonObjectJSON:
		return newResponse(req, http.StatusOK, `["ok",true]`, nil), nil

	default:
		return c.next.Do(req)
	}
}

func (c *ChaosClient) pickMode() ChaosMode {
	if c.config.Mode != ChaosIntermittent {
		return c.config.Mode
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rnd.Float64() >= c.config.FailureRate {
		return ChaosNone
	}
	modes := []ChaosMode{
		ChaosConnectionReset,
		ChaosPartialRead,
		ChaosServerError,
		ChaosRateLimited,
		ChaosEmptyBody,
		ChaosTruncatedJSON,
		ChaosNonObjectJSON,
	}
	return modes[c.rnd.Intn(len(modes))]
}

func newResponse(req *http.Request, status int, body string, headers map[string]string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	for k, v := range headers {
		header.Set(k, v)
	}
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
		Header:        header,
	}
}

// okDoer answers every request with {"ok":true} unless its context is done
type okDoer struct{}

func (okDoer) Do(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	return newResponse(req, http.StatusOK, `{"ok":true}`, nil), nil
}

// partialReadCloser is an io.ReadCloser that fails after reading a certain amount
type partialReadCloser struct {
	reader    io.Reader
	failAfter int
	totalRead int
}

func (p *partialReadCloser) Read(buf []byte) (int, error) {
	if p.totalRead >= p.failAfter {
		return 0, errors.New("connection reset during read")
	}

	n, err := p.reader.Read(buf)
	p.totalRead += n

	if p.totalRead >= p.failAfter {
		return n, errors.New("connection reset during read")
	}

	return n, err
}

func (p *partialReadCloser) Close() error {
	return nil
}
