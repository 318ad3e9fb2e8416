package generator

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/brainboyai/tiny-tutor-api/internal/apperr"
	"github.com/brainboyai/tiny-tutor-api/internal/config"
)

const DefaultLanguage = "en"

type ExplainInput struct {
	Word          string
	StreakContext []string
	Language      string
}

type QuizInput struct {
	Word          string
	SourceText    string
	StreakContext []string
	Language      string
}

// Generator turns domain requests into provider calls and parses the results.
// Every failure is reported as apperr.KindGenerationFailed.
type Generator struct {
	provider Provider
}

func New(provider Provider) *Generator {
	return &Generator{provider: provider}
}

func (g *Generator) Provider() Provider { return g.provider }

func (g *Generator) Explain(ctx context.Context, in ExplainInput) (string, error) {
	lang := languageOrDefault(in.Language)
	prompt := coldExplainPrompt(in.Word, lang)
	if len(in.StreakContext) > 0 {
		prompt = contextualExplainPrompt(in.Word, in.StreakContext, lang)
	}
	text, err := g.provider.Generate(ctx, Request{Prompt: prompt})
	if err != nil {
		return "", apperr.GenerationFailed("failed to generate explanation", err)
	}
	return text, nil
}

// Quiz returns one or more question blocks derived from the source text. An
// empty list means the model judged the text unsuitable for a question.
func (g *Generator) Quiz(ctx context.Context, in QuizInput) ([]string, error) {
	prompt := quizPrompt(in.Word, in.SourceText, in.StreakContext, languageOrDefault(in.Language))
	text, err := g.provider.Generate(ctx, Request{Prompt: prompt})
	if err != nil {
		return nil, apperr.GenerationFailed("failed to generate quiz", err)
	}
	return SplitQuiz(text), nil
}

// Game returns a standalone HTML document for topic.
func (g *Generator) Game(ctx context.Context, topic string) (string, error) {
	text, err := g.provider.Generate(ctx, Request{Prompt: gamePrompt(topic)})
	if err != nil {
		return "", apperr.GenerationFailed("the AI service could not build a game for this topic", err)
	}
	html, err := ExtractHTML(text)
	if err != nil {
		config.WithContext(ctx).WithField("topic", topic).Warnf("Model returned no HTML (%d bytes)", len(text))
		return "", apperr.GenerationFailed("the AI service did not return a playable game", err)
	}
	return html, nil
}

// Structured asks for JSON matching schema. Output that cannot be parsed or
// validated gets exactly one repair round trip; a second failure is final.
func (g *Generator) Structured(ctx context.Context, req Request, schema *Schema) (json.RawMessage, error) {
	log := config.WithContext(ctx).WithField("provider", g.provider.Name())

	req.JSON = true
	text, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, apperr.GenerationFailed("failed to generate content", err)
	}
	doc, parseErr := schema.parseAndValidate(text)
	if parseErr == nil {
		return doc, nil
	}

	log.WithError(parseErr).Warn("Structured output invalid, attempting one repair")
	repaired, err := g.provider.Generate(ctx, Request{
		System: repairSystemPrompt,
		Prompt: repairPrompt(text, schema.raw, parseErr),
		JSON:   true,
	})
	if err != nil {
		return nil, apperr.GenerationFailed("the AI service returned unreadable data", err)
	}
	doc, err = schema.parseAndValidate(repaired)
	if err != nil {
		return nil, apperr.GenerationFailed("the AI service returned unreadable data", err)
	}
	return doc, nil
}

func languageOrDefault(lang string) string {
	if lang = strings.TrimSpace(lang); lang == "" {
		return DefaultLanguage
	}
	return lang
}
