package internal

import (
	"strconv"
	"strings"

	pkgerrs "github.com/jamesprial/go-slack-messages/pkg/errors"
	"github.com/jamesprial/go-slack-messages/pkg/validation"
)

// Validator checks operation parameters before a request is built.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRequired returns a ConfigError naming field if value is empty or
// only whitespace.
func (v *Validator) ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &pkgerrs.ConfigError{Field: field, Message: field + " cannot be empty"}
	}
	return nil
}

// ValidateText checks message text. Whitespace is content, so only the
// empty string is rejected.
func (v *Validator) ValidateText(text string) error {
	if text == "" {
		return &pkgerrs.ConfigError{Field: "text", Message: "text cannot be empty"}
	}
	return nil
}

// ValidateChannel checks the channel parameter.
func (v *Validator) ValidateChannel(channel string) error {
	return v.ValidateRequired("channel", channel)
}

// ValidateTimestamp checks a message timestamp parameter. field is the
// payload key it will be sent under ("ts" or "timestamp").
func (v *Validator) ValidateTimestamp(field, ts string) error {
	if err := v.ValidateRequired(field, ts); err != nil {
		return err
	}
	if !validation.IsValidTimestamp(ts) {
		return &pkgerrs.ConfigError{Field: field, Message: "invalid message timestamp " + strconv.Quote(ts) + ", expected <seconds>.<fraction>"}
	}
	return nil
}

// ValidateEmojiName checks the emoji name of a reaction.
func (v *Validator) ValidateEmojiName(name string) error {
	if err := v.ValidateRequired("name", name); err != nil {
		return err
	}
	if !validation.IsValidEmojiName(name) {
		return &pkgerrs.ConfigError{Field: "name", Message: "invalid emoji name " + strconv.Quote(name) + ", omit surrounding colons and whitespace"}
	}
	return nil
}

// ValidatePostAt checks the scheduled posting time.
func (v *Validator) ValidatePostAt(postAt int64) error {
	if !validation.IsValidPostAt(postAt) {
		return &pkgerrs.ConfigError{Field: "post_at", Message: "post_at must be a positive unix time in seconds"}
	}
	return nil
}

// ValidateToken checks the bearer token used for every request.
func (v *Validator) ValidateToken(token string) error {
	if token == "" {
		return &pkgerrs.ConfigError{Field: "Token", Message: "token is required"}
	}
	if !validation.IsValidToken(token) {
		return &pkgerrs.ConfigError{Field: "Token", Message: "token cannot contain whitespace or control characters"}
	}
	return nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
