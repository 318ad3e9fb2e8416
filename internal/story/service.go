package story

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/brainboyai/tiny-tutor-api/internal/apperr"
	"github.com/brainboyai/tiny-tutor-api/internal/config"
	"github.com/brainboyai/tiny-tutor-api/internal/generator"
)

// StructuredGenerator returns schema-valid JSON. *generator.Generator
// satisfies it.
type StructuredGenerator interface {
	Structured(ctx context.Context, req generator.Request, schema *generator.Schema) (json.RawMessage, error)
}

type Service interface {
	NextNode(ctx context.Context, req NodeRequest) (*Node, error)
}

type service struct {
	gen StructuredGenerator
}

// NewService builds the story service. gen may be nil when no generation
// backend is configured.
func NewService(gen StructuredGenerator) Service {
	return &service{gen: gen}
}

// NextNode generates the next lesson turn. Nodes depend on the whole path so
// they are never cached.
func (s *service) NextNode(ctx context.Context, req NodeRequest) (*Node, error) {
	if s.gen == nil {
		return nil, apperr.DependencyUnavailable("content generation is not configured")
	}
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		return nil, apperr.BadRequest("topic is required")
	}
	turn, err := TurnFor(strings.TrimSpace(req.LastChoiceLeadsTo))
	if err != nil {
		return nil, err
	}

	prompt, err := BuildUserPrompt(req, turn)
	if err != nil {
		return nil, apperr.BadRequest("invalid history")
	}
	raw, err := s.gen.Structured(ctx, generator.Request{System: systemPrompt, Prompt: prompt}, nodeSchema)
	if err != nil {
		return nil, err
	}

	var node Node
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, apperr.GenerationFailed("the AI service returned unreadable data", err)
	}
	node.Dialogue = strings.TrimSpace(node.Dialogue)
	if node.FeedbackOnPreviousAnswer == "N/A" {
		node.FeedbackOnPreviousAnswer = ""
	}

	config.WithContext(ctx).WithField("turn", turn).Debug("Story node generated")
	return &node, nil
}
