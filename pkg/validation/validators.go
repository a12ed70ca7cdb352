package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// Regular expressions for validating chat API identifier formats
var (
	// timestampRegex matches message timestamps ("1700000000.000100"), which
	// double as message IDs within a channel
	timestampRegex = regexp.MustCompile(`^[0-9]+\.[0-9]+$`)

	// emojiRegex matches emoji names as the API expects them: no colons around
	// the name, but skin-tone modifiers ("thumbsup::skin-tone-2") are allowed
	emojiRegex = regexp.MustCompile(`^[^\s:]+(::[^\s:]+)*$`)
)

// IsValidTimestamp checks if a string is a valid message timestamp
func IsValidTimestamp(s string) bool {
	return timestampRegex.MatchString(s)
}

// IsValidEmojiName checks if a string is a valid emoji name for a reaction
func IsValidEmojiName(s string) bool {
	return emojiRegex.MatchString(s)
}

// IsValidToken checks that a token is non-empty and safe to place in an
// Authorization header: no whitespace and no control characters.
func IsValidToken(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) < 0
}

// IsValidPostAt checks if a unix time in seconds can be used to schedule a message
func IsValidPostAt(unix int64) bool {
	return unix > 0
}
