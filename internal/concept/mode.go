package concept

import (
	"fmt"
	"strings"

	"github.com/brainboyai/tiny-tutor-api/internal/apperr"
)

// Mode is a kind of generated content for a concept.
type Mode uint8

const (
	ModeExplain Mode = iota
	ModeQuiz
	ModeGame

	modeCount
)

var modeNames = [...]string{
	ModeExplain: "explain",
	ModeQuiz:    "quiz",
	ModeGame:    "game",
}

// policy decides how a mode interacts with the per-concept cache.
type policy struct {
	// cacheable payloads are persisted under the mode key of generated_content_cache.
	cacheable bool
	// contextual modes are generated relative to the streak path when one is
	// supplied, and such results bypass the cache in both directions.
	contextual bool
	// inline modes are resolved within the request; the rest go through jobs.
	inline bool
}

var policies = [...]policy{
	ModeExplain: {cacheable: true, contextual: true, inline: true},
	ModeQuiz:    {inline: true},
	ModeGame:    {cacheable: true},
}

// Adding a mode without a name and a policy fails to compile.
func _() {
	var x [1]struct{}
	_ = x[len(modeNames)-int(modeCount)]
	_ = x[len(policies)-int(modeCount)]
}

func AllModes() []Mode {
	out := make([]Mode, 0, modeCount)
	for m := Mode(0); m < modeCount; m++ {
		out = append(out, m)
	}
	return out
}

func (m Mode) String() string {
	if m >= modeCount {
		return fmt.Sprintf("mode(%d)", m)
	}
	return modeNames[m]
}

func (m Mode) Cacheable() bool  { return m < modeCount && policies[m].cacheable }
func (m Mode) Contextual() bool { return m < modeCount && policies[m].contextual }
func (m Mode) Inline() bool     { return m < modeCount && policies[m].inline }

func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeExplain, nil
	}
	for m := Mode(0); m < modeCount; m++ {
		if modeNames[m] == s {
			return m, nil
		}
	}
	return 0, apperr.BadRequest("invalid content type %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if m >= modeCount {
		return nil, fmt.Errorf("unknown mode %d", m)
	}
	return []byte(modeNames[m]), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
