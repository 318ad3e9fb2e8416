package concept

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/brainboyai/tiny-tutor-api/internal/apperr"
	"github.com/brainboyai/tiny-tutor-api/internal/config"
	"github.com/brainboyai/tiny-tutor-api/internal/generator"
	"github.com/brainboyai/tiny-tutor-api/internal/stats"
)

// ContentGenerator produces inline content. *generator.Generator satisfies it.
type ContentGenerator interface {
	Explain(ctx context.Context, in generator.ExplainInput) (string, error)
	Quiz(ctx context.Context, in generator.QuizInput) ([]string, error)
}

type ConceptService interface {
	Resolve(ctx context.Context, userID uuid.UUID, req GenerateRequest) (*GenerateResponse, error)
	ToggleFavorite(ctx context.Context, userID uuid.UUID, word string) (*Entry, error)
	SetFavorite(ctx context.Context, userID uuid.UUID, word string, value bool) (*Entry, error)
	RecordQuizAttempt(ctx context.Context, userID uuid.UUID, req QuizAttemptRequest) (*stats.UserStats, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Entry, error)

	CachedGame(ctx context.Context, userID uuid.UUID, conceptID string) (string, bool, error)
	StoreGame(ctx context.Context, userID uuid.UUID, conceptID, topic, html string) error
}

type conceptService struct {
	repo  Repository
	stats stats.Repository
	gen   ContentGenerator
}

// NewService wires the resolver. gen may be nil when no generation backend is
// configured; Resolve then fails with DependencyUnavailable.
func NewService(repo Repository, statsRepo stats.Repository, gen ContentGenerator) ConceptService {
	return &conceptService{repo: repo, stats: statsRepo, gen: gen}
}

func (s *conceptService) Resolve(ctx context.Context, userID uuid.UUID, req GenerateRequest) (*GenerateResponse, error) {
	if s.gen == nil {
		return nil, apperr.DependencyUnavailable("content generation is not configured")
	}

	word := strings.TrimSpace(req.Word)
	if word == "" {
		return nil, apperr.BadRequest("word is required")
	}
	if !req.Mode.Inline() {
		return nil, apperr.BadRequest("mode %q is generated asynchronously, submit it to /games", req.Mode)
	}
	if req.Mode == ModeQuiz && strings.TrimSpace(req.SourceText) == "" {
		return nil, apperr.BadRequest("explanation_text is required for quiz mode")
	}

	conceptID := Normalize(word)
	streak := cleanStreak(req.StreakContext)
	contextual := req.Mode.Contextual() && len(streak) > 0
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"concept_id": conceptID,
		"mode":       req.Mode.String(),
		"contextual": contextual,
	})

	entry, err := s.repo.Get(ctx, userID, conceptID)
	if err != nil {
		return nil, apperr.Internal("failed to load concept", err)
	}

	if req.Mode.Cacheable() && !contextual && !req.ForceRefresh {
		if payload, ok := entry.Cached(req.Mode); ok {
			touched, err := s.repo.Upsert(ctx, userID, conceptID, Patch{Word: word})
			if err != nil {
				return nil, apperr.Internal("failed to update concept", err)
			}
			log.Debug("Serving cached content")
			return newGenerateResponse(touched, req.Mode, payload, SourceCache), nil
		}
	}

	content, err := s.generate(ctx, req.Mode, word, streak, req)
	if err != nil {
		log.WithError(err).Error("Content generation failed")
		return nil, err
	}

	patch := Patch{Word: word, Modes: []Mode{req.Mode}}
	if req.Mode.Cacheable() && !contextual {
		patch.Content = map[Mode]any{req.Mode: content}
	}
	updated, err := s.repo.Upsert(ctx, userID, conceptID, patch)
	if err != nil {
		return nil, apperr.Internal("failed to save concept", err)
	}

	log.Info("Generated content")
	return newGenerateResponse(updated, req.Mode, content, SourceGenerated), nil
}

func (s *conceptService) generate(ctx context.Context, mode Mode, word string, streak []string, req GenerateRequest) (any, error) {
	switch mode {
	case ModeQuiz:
		return s.gen.Quiz(ctx, generator.QuizInput{
			Word:          word,
			SourceText:    req.SourceText,
			StreakContext: streak,
			Language:      req.Language,
		})
	default:
		return s.gen.Explain(ctx, generator.ExplainInput{
			Word:          word,
			StreakContext: streak,
			Language:      req.Language,
		})
	}
}

func (s *conceptService) ToggleFavorite(ctx context.Context, userID uuid.UUID, word string) (*Entry, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, apperr.BadRequest("word is required")
	}
	e, err := s.repo.ToggleFavorite(ctx, userID, Normalize(word), word)
	if err != nil {
		return nil, apperr.Internal("failed to toggle favorite", err)
	}
	return e, nil
}

func (s *conceptService) SetFavorite(ctx context.Context, userID uuid.UUID, word string, value bool) (*Entry, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, apperr.BadRequest("word is required")
	}
	e, err := s.repo.SetFavorite(ctx, userID, Normalize(word), word, value)
	if err != nil {
		return nil, apperr.Internal("failed to set favorite", err)
	}
	return e, nil
}

// RecordQuizAttempt tags the concept with the quiz mode and applies the
// attempt to the user's counters.
func (s *conceptService) RecordQuizAttempt(ctx context.Context, userID uuid.UUID, req QuizAttemptRequest) (*stats.UserStats, error) {
	word := strings.TrimSpace(req.Word)
	if word == "" {
		return nil, apperr.BadRequest("word is required")
	}

	_, err := s.repo.Upsert(ctx, userID, Normalize(word), Patch{
		Word:     word,
		KeepWord: true,
		Modes:    []Mode{ModeQuiz},
	})
	if err != nil {
		return nil, apperr.Internal("failed to update concept", err)
	}
	if err := s.stats.Increment(ctx, userID, stats.QuizAttemptDelta(req.IsCorrect)); err != nil {
		return nil, apperr.Internal("failed to update quiz stats", err)
	}

	st, err := s.stats.Get(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to load quiz stats", err)
	}
	config.WithContext(ctx).WithField("correct", req.IsCorrect).Info("Quiz attempt recorded")
	return st, nil
}

func (s *conceptService) List(ctx context.Context, userID uuid.UUID) ([]*Entry, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to list concepts", err)
	}
	if entries == nil {
		entries = []*Entry{}
	}
	return entries, nil
}

// CachedGame returns the stored game document for the concept, if any.
func (s *conceptService) CachedGame(ctx context.Context, userID uuid.UUID, conceptID string) (string, bool, error) {
	e, err := s.repo.Get(ctx, userID, conceptID)
	if err != nil {
		return "", false, err
	}
	v, ok := e.Cached(ModeGame)
	if !ok {
		return "", false, nil
	}
	html, ok := v.(string)
	return html, ok && html != "", nil
}

func (s *conceptService) StoreGame(ctx context.Context, userID uuid.UUID, conceptID, topic, html string) error {
	_, err := s.repo.Upsert(ctx, userID, conceptID, Patch{
		Word:    topic,
		Content: map[Mode]any{ModeGame: html},
		Modes:   []Mode{ModeGame},
	})
	return err
}

func cleanStreak(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}
