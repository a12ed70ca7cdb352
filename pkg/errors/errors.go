// Package errors defines the error types returned by the Slack messages client.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ConfigError indicates a problem with the client configuration or with a
// parameter passed to an operation. No request is sent when it is returned.
type ConfigError struct {
	// Field contains the name of the configuration field or parameter that caused the error
	Field string
	// Message contains the detailed error message
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// TransportError indicates the request never produced a usable response:
// the transport failed, or the body could not be read in full. The HTTP
// status alone never produces one; error statuses with a JSON body are
// returned as data.
type TransportError struct {
	// Endpoint is the remote operation that was being called
	Endpoint string
	// StatusCode is the HTTP status code, or 0 if no response was received
	StatusCode int
	// Message contains the detailed error message
	Message string
	// Err contains the underlying transport error if available
	Err error
}

func (e *TransportError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	var parts []string
	if e.Endpoint != "" {
		parts = append(parts, "during "+e.Endpoint)
	}
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status %d", e.StatusCode))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("transport error: %s", msg)
	}
	return fmt.Sprintf("transport error %s: %s", strings.Join(parts, ", "), msg)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError indicates a response was received but its body was not a
// JSON object.
type DecodeError struct {
	// Endpoint is the remote operation whose response failed to decode
	Endpoint string
	// StatusCode is the HTTP status of the response, or 0 if unknown
	StatusCode int
	// Message contains the detailed error message
	Message string
	// Err contains the underlying parser error if available
	Err error
}

func (e *DecodeError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	var parts []string
	if e.Endpoint != "" {
		parts = append(parts, "during "+e.Endpoint)
	}
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status %d", e.StatusCode))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("decode error: %s", msg)
	}
	return fmt.Sprintf("decode error %s: %s", strings.Join(parts, ", "), msg)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// APIError represents a failure reported by the remote API inside an
// otherwise well-formed response ("ok": false). The client never returns it
// on its own; it is produced by types.Envelope.Err for callers that want to
// treat a rejected operation as an error.
type APIError struct {
	// Code is the value of the envelope's "error" field (e.g. "channel_not_found")
	Code string
	// Warning is the value of the envelope's "warning" field, if any
	Warning string
}

func (e *APIError) Error() string {
	code := e.Code
	if code == "" {
		code = "unknown_error"
	}
	if e.Warning != "" {
		return fmt.Sprintf("api error: %s (warning: %s)", code, e.Warning)
	}
	return fmt.Sprintf("api error: %s", code)
}

// IsTransport reports whether err is, or wraps, a *TransportError.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return stderrors.As(err, &transportErr)
}

// IsDecode reports whether err is, or wraps, a *DecodeError.
func IsDecode(err error) bool {
	var decodeErr *DecodeError
	return stderrors.As(err, &decodeErr)
}

// IsAPIError reports whether err is a *APIError with the given code. An
// empty code matches any API error.
func IsAPIError(err error, code string) bool {
	var apiErr *APIError
	if !stderrors.As(err, &apiErr) {
		return false
	}
	return code == "" || apiErr.Code == code
}
