package internal

import (
	"bytes"
	"encoding/json"

	pkgerrs "github.com/jamesprial/go-slack-messages/pkg/errors"
	"github.com/jamesprial/go-slack-messages/pkg/types"
)

// DecodeEnvelope parses a response body into an Envelope. Anything other
// than a single JSON object (arrays, scalars, null, trailing data, an empty
// body) is a *errors.DecodeError and no partial value is returned.
func DecodeEnvelope(endpoint string, raw []byte) (types.Envelope, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, &pkgerrs.DecodeError{Endpoint: endpoint, Message: "empty response body"}
	}
	if trimmed[0] != '{' {
		// Still run the parser so syntax errors carry its message.
		if !json.Valid(trimmed) {
			var v any
			err := json.Unmarshal(trimmed, &v)
			return nil, &pkgerrs.DecodeError{Endpoint: endpoint, Err: err}
		}
		return nil, &pkgerrs.DecodeError{Endpoint: endpoint, Message: "response is not a JSON object"}
	}

	var env types.Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, &pkgerrs.DecodeError{Endpoint: endpoint, Err: err}
	}
	return env, nil
}
