package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/brainboyai/tiny-tutor-api/internal/config"
)

// FromSettings builds the configured generator. It returns nil, nil when no
// API key is set for the selected provider; callers treat that as the
// generation dependency being unavailable.
func FromSettings(ctx context.Context, s *config.Settings) (*Generator, error) {
	switch strings.ToLower(s.GeneratorProvider) {
	case "", "gemini":
		if s.GeminiAPIKey == "" {
			return nil, nil
		}
		p, err := NewGeminiProvider(ctx, s.GeminiAPIKey, s.GeminiModel)
		if err != nil {
			return nil, err
		}
		return New(p), nil
	case "openai":
		if s.OpenAIAPIKey == "" {
			return nil, nil
		}
		return New(NewOpenAIProvider(s.OpenAIAPIKey, s.OpenAIModel)), nil
	default:
		return nil, fmt.Errorf("unknown generator provider %q", s.GeneratorProvider)
	}
}
