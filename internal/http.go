package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrs "github.com/jamesprial/go-slack-messages/pkg/errors"
	"github.com/jamesprial/go-slack-messages/pkg/types"
)

const (
	// MaxResponseBytes bounds how much of a response body is read.
	MaxResponseBytes = 8 << 20
	// errorBodyPreview is how much of an error-status body is kept in a DecodeError message.
	errorBodyPreview = 300

	contentTypeJSON = "application/json"
)

// Doer sends a prepared HTTP request and returns the response.
// *http.Client satisfies it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Dispatcher builds, sends and decodes every call to the chat API.
// It holds no mutable state; it is safe for concurrent use if its Doer is.
type Dispatcher struct {
	doer    Doer
	BaseURL *url.URL
	token   string
	logger  *slog.Logger
}

// NewDispatcher returns a dispatcher that resolves endpoints against baseURL
// and authenticates with token. If doer is nil, http.DefaultClient is used;
// if logger is nil, log records are discarded.
func NewDispatcher(doer Doer, token, baseURL string, logger *slog.Logger) (*Dispatcher, error) {
	if doer == nil {
		doer = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, &pkgerrs.ConfigError{Field: "BaseURL", Message: err.Error()}
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &pkgerrs.ConfigError{Field: "BaseURL", Message: fmt.Sprintf("base URL %q must be absolute", baseURL)}
	}
	if !strings.HasSuffix(parsedURL.Path, "/") {
		parsedURL.Path += "/"
	}

	return &Dispatcher{
		doer:    doer,
		BaseURL: parsedURL,
		token:   token,
		logger:  logger,
	}, nil
}

// NewRequest creates an API request for endpoint, which is resolved relative
// to BaseURL. POST payloads become the JSON body; GET requests must carry
// their parameters in endpoint (see EncodeQuery) and have no body.
func (d *Dispatcher) NewRequest(ctx context.Context, method, endpoint string, payload types.Payload) (*http.Request, error) {
	if endpoint == "" {
		return nil, &pkgerrs.ConfigError{Field: "endpoint", Message: "endpoint cannot be empty"}
	}

	u, err := d.BaseURL.Parse(endpoint)
	if err != nil {
		return nil, &pkgerrs.ConfigError{Field: "endpoint", Message: err.Error()}
	}
	// Never send the token anywhere but the configured API host.
	if u.Scheme != d.BaseURL.Scheme || u.Host != d.BaseURL.Host || !strings.HasPrefix(u.Path, d.BaseURL.Path) {
		return nil, &pkgerrs.ConfigError{Field: "endpoint", Message: fmt.Sprintf("endpoint %q resolves outside %s", endpoint, d.BaseURL)}
	}

	var body io.Reader
	switch method {
	case types.MethodPost:
		if payload == nil {
			payload = types.Payload{}
		}
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, &pkgerrs.ConfigError{Field: "payload", Message: err.Error()}
		}
		body = bytes.NewReader(encoded)
	case types.MethodGet:
		if len(payload) > 0 {
			return nil, &pkgerrs.ConfigError{Field: "payload", Message: "GET parameters must be encoded into the endpoint"}
		}
	default:
		return nil, &pkgerrs.ConfigError{Field: "method", Message: fmt.Sprintf("unsupported method %q", method)}
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, &pkgerrs.ConfigError{Field: "endpoint", Message: err.Error()}
	}

	req.Header.Set("Authorization", "Bearer "+d.token)
	req.Header.Set("Content-Type", contentTypeJSON)

	return req, nil
}

// Do sends req exactly once and decodes the response body into an Envelope,
// whatever the HTTP status. Only a failed send or body read is a
// *errors.TransportError; a body that is not a JSON object is a
// *errors.DecodeError carrying the status. The envelope's own "ok"/"error"
// fields are not inspected.
func (d *Dispatcher) Do(req *http.Request) (types.Envelope, error) {
	endpoint := d.endpointName(req.URL)
	start := time.Now()

	d.logger.DebugContext(req.Context(), "chat api request", "method", req.Method, "endpoint", endpoint)

	resp, err := d.doer.Do(req)
	if err != nil {
		d.logger.DebugContext(req.Context(), "chat api transport failure", "endpoint", endpoint, "error", err, "duration", time.Since(start))
		return nil, &pkgerrs.TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return nil, &pkgerrs.TransportError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: "failed to read response body: " + err.Error(), Err: err}
	}
	if len(raw) > MaxResponseBytes {
		return nil, &pkgerrs.TransportError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: fmt.Sprintf("response body exceeds %d bytes", MaxResponseBytes)}
	}

	d.logger.DebugContext(req.Context(), "chat api response",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"duration", time.Since(start),
	)

	env, err := DecodeEnvelope(endpoint, raw)
	if err != nil {
		var decodeErr *pkgerrs.DecodeError
		if errors.As(err, &decodeErr) {
			decodeErr.StatusCode = resp.StatusCode
			if resp.StatusCode >= 300 || (resp.StatusCode > 0 && resp.StatusCode < 200) {
				decodeErr.Message = describeFailure(decodeErr, resp.StatusCode, raw)
			}
		}
		return nil, err
	}
	return env, nil
}

// Execute builds a request for endpoint, sends it and returns the decoded
// envelope. It is the single path every operation goes through.
func (d *Dispatcher) Execute(ctx context.Context, method, endpoint string, payload types.Payload) (types.Envelope, error) {
	req, err := d.NewRequest(ctx, method, endpoint, payload)
	if err != nil {
		return nil, err
	}
	return d.Do(req)
}

// EncodeQuery appends params to endpoint as a URL-encoded query string,
// for use with GET requests.
func EncodeQuery(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + params.Encode()
}

// endpointName returns the request path relative to BaseURL, without the query.
func (d *Dispatcher) endpointName(u *url.URL) string {
	if u == nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, d.BaseURL.Path)
}

// describeFailure keeps an error status's reason and body preview in a
// DecodeError message, so a proxy's HTML error page is still readable.
func describeFailure(decodeErr *pkgerrs.DecodeError, status int, raw []byte) string {
	msg := decodeErr.Message
	if msg == "" && decodeErr.Err != nil {
		msg = decodeErr.Err.Error()
	}
	reason := http.StatusText(status)
	if reason == "" {
		reason = "unknown status"
	}
	if body := preview(raw); body != "" {
		return fmt.Sprintf("%s (%s): %s", msg, reason, body)
	}
	return fmt.Sprintf("%s (%s)", msg, reason)
}

func preview(raw []byte) string {
	msg := strings.TrimSpace(string(raw))
	if len(msg) > errorBodyPreview {
		msg = msg[:errorBodyPreview] + "..."
	}
	return msg
}
