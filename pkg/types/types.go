package types

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	pkgerrs "github.com/jamesprial/go-slack-messages/pkg/errors"
)

// HTTP methods accepted by the dispatcher.
const (
	MethodGet  = http.MethodGet
	MethodPost = http.MethodPost
)

// Payload is the set of fields sent with one call: the JSON body of a POST,
// or the query parameters of a GET. Values must be JSON-serializable.
type Payload map[string]any

// Envelope is the decoded JSON object returned by the API for any call.
//
// Its values are always one of the JSON variants produced by encoding/json:
// nil, bool, float64, string, []any or map[string]any. No schema is imposed;
// the conventional "ok", "error" and "warning" fields have typed accessors,
// anything endpoint-specific is read with String, Bool, Number, Map or Slice.
type Envelope map[string]any

// summaryKeys are the identifier fields reported by Summary, in order.
var summaryKeys = []string{"channel", "ts", "message_ts", "scheduled_message_id", "post_at"}

// OK reports whether the envelope's "ok" field is the boolean true.
func (e Envelope) OK() bool {
	return e.Bool("ok")
}

// ErrorCode returns the envelope's "error" field, or "" if absent.
func (e Envelope) ErrorCode() string {
	return e.String("error")
}

// Warning returns the envelope's "warning" field, or "" if absent.
func (e Envelope) Warning() string {
	return e.String("warning")
}

// String returns the string value at key, or "" if the key is missing or
// holds another type.
func (e Envelope) String(key string) string {
	s, _ := e[key].(string)
	return s
}

// Bool returns the boolean value at key, or false if the key is missing or
// holds another type.
func (e Envelope) Bool(key string) bool {
	b, _ := e[key].(bool)
	return b
}

// Number returns the numeric value at key. The second result is false if
// the key is missing or does not hold a number.
func (e Envelope) Number(key string) (float64, bool) {
	n, ok := e[key].(float64)
	return n, ok
}

// Map returns the nested object at key as an Envelope, or nil if the key is
// missing or does not hold an object.
func (e Envelope) Map(key string) Envelope {
	m, ok := e[key].(map[string]any)
	if !ok {
		return nil
	}
	return Envelope(m)
}

// Slice returns the array at key, or nil if the key is missing or does not
// hold an array.
func (e Envelope) Slice(key string) []any {
	s, _ := e[key].([]any)
	return s
}

// Err converts a rejected call into an error. It returns a *errors.APIError
// when "ok" is not true and nil otherwise.
func (e Envelope) Err() error {
	if e.OK() {
		return nil
	}
	return &pkgerrs.APIError{Code: e.ErrorCode(), Warning: e.Warning()}
}

// Summary renders the envelope as a single human-readable line, e.g.
// "ok channel=C123 ts=1700000000.000100" or "error: channel_not_found".
func (e Envelope) Summary() string {
	if !e.OK() {
		code := e.ErrorCode()
		if code == "" {
			code = "unknown_error"
		}
		if w := e.Warning(); w != "" {
			return fmt.Sprintf("error: %s (warning: %s)", code, w)
		}
		return "error: " + code
	}

	parts := []string{"ok"}
	for _, key := range summaryKeys {
		v, exists := e[key]
		if !exists || v == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", key, formatValue(v)))
	}
	if w := e.Warning(); w != "" {
		parts = append(parts, "warning="+w)
	}
	return strings.Join(parts, " ")
}

// Keys returns the envelope's top-level keys in sorted order.
func (e Envelope) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatValue(v any) string {
	switch val := v.(type) {
	case float64:
		// post_at and friends are whole unix seconds; avoid 1.7e+09.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
