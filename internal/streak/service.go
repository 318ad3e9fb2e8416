package streak

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/brainboyai/tiny-tutor-api/internal/apperr"
	"github.com/brainboyai/tiny-tutor-api/internal/config"
)

type StreakService interface {
	Submit(ctx context.Context, userID uuid.UUID, req SubmitRequest) ([]*Record, error)
	History(ctx context.Context, userID uuid.UUID) ([]*Record, error)
}

type streakService struct {
	repo Repository
}

func NewService(repo Repository) StreakService {
	return &streakService{repo: repo}
}

// Submit records a finished streak and returns the user's recent history.
// Resubmitting the same words inside DedupWindow is a silent no-op. The check
// and the insert are not atomic, so two simultaneous submissions may both land.
func (s *streakService) Submit(ctx context.Context, userID uuid.UUID, req SubmitRequest) ([]*Record, error) {
	log := config.WithContext(ctx)

	if len(req.Words) == 0 {
		return nil, apperr.BadRequest("words must be a non-empty list")
	}
	// Words are stored and compared exactly as the client sent them.
	words := req.Words
	for _, w := range words {
		if strings.TrimSpace(w) == "" {
			return nil, apperr.BadRequest("words must not contain blank entries")
		}
	}
	if req.Score < MinScore {
		return nil, apperr.BadRequest("score must be at least %d", MinScore)
	}

	dup, err := s.repo.ExistsRecent(ctx, userID, words, DedupWindow)
	if err != nil {
		return nil, apperr.Internal("failed to check streak history", err)
	}
	if dup {
		log.WithField("score", req.Score).Info("Duplicate streak ignored")
	} else {
		if _, err := s.repo.Create(ctx, userID, words, req.Score); err != nil {
			return nil, apperr.Internal("failed to save streak", err)
		}
		log.WithField("score", req.Score).Info("Streak recorded")
	}

	return s.History(ctx, userID)
}

func (s *streakService) History(ctx context.Context, userID uuid.UUID) ([]*Record, error) {
	records, err := s.repo.History(ctx, userID, HistoryLimit)
	if err != nil {
		return nil, apperr.Internal("failed to load streaks", err)
	}
	if records == nil {
		records = []*Record{}
	}
	return records, nil
}
