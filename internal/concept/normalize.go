package concept

import (
	"regexp"
	"strings"
)

const (
	EmptyWordID    = "empty_word"
	InvalidInputID = "invalid_input"
)

var (
	whitespaceRun = regexp.MustCompile(`[\s\v\x1c-\x1f\x85\p{Z}]+`)
	disallowed    = regexp.MustCompile(`[^a-z0-9_]`)
)

// Normalize maps a free-text concept to its storage key. Case and whitespace
// variants of the same concept collide into one key.
func Normalize(word string) string {
	id := strings.ToLower(word)
	id = whitespaceRun.ReplaceAllString(id, "_")
	id = disallowed.ReplaceAllString(id, "")
	if id == "" {
		return EmptyWordID
	}
	return id
}

// NormalizeValue is Normalize for untyped input, e.g. a decoded JSON field.
func NormalizeValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return InvalidInputID
	}
	return Normalize(s)
}
