package profile

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/brainboyai/tiny-tutor-api/internal/apperr"
	"github.com/brainboyai/tiny-tutor-api/internal/auth"
	"github.com/brainboyai/tiny-tutor-api/internal/concept"
	"github.com/brainboyai/tiny-tutor-api/internal/stats"
	"github.com/brainboyai/tiny-tutor-api/internal/streak"
)

type ConceptLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]*concept.Entry, error)
}

type StreakHistory interface {
	History(ctx context.Context, userID uuid.UUID) ([]*streak.Record, error)
}

type Service interface {
	Get(ctx context.Context, claims *auth.Claims) (*Profile, error)
}

type service struct {
	concepts ConceptLister
	streaks  StreakHistory
	stats    stats.Repository
}

func NewService(concepts ConceptLister, streaks StreakHistory, statsRepo stats.Repository) Service {
	return &service{concepts: concepts, streaks: streaks, stats: statsRepo}
}

// Get assembles the caller's profile from the three stores in parallel.
func (s *service) Get(ctx context.Context, claims *auth.Claims) (*Profile, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperr.BadRequest("invalid user id")
	}

	var (
		entries []*concept.Entry
		history []*streak.Record
		st      *stats.UserStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		entries, err = s.concepts.List(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		history, err = s.streaks.History(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		st, err = s.stats.Get(gctx, userID)
		if err != nil {
			return apperr.Internal("failed to load quiz stats", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p := &Profile{
		UserID:                     claims.UserID,
		Username:                   claims.Username,
		Tier:                       claims.Tier,
		QuizPoints:                 st.QuizPoints,
		TotalQuizQuestionsAnswered: st.TotalQuizQuestionsAnswered,
		TotalQuizQuestionsCorrect:  st.TotalQuizQuestionsCorrect,
		TotalWordsExplored:         len(entries),
		ExploredWords:              make([]ExploredWord, 0, len(entries)),
		FavoriteWords:              []ExploredWord{},
		StreakHistory:              history,
	}
	for _, e := range entries {
		w := ExploredWord{
			Word:           e.Word,
			ConceptID:      e.ConceptID,
			IsFavorite:     e.IsFavorite,
			ModesGenerated: []string(e.ModesGenerated),
			FirstSeenAt:    e.FirstSeenAt,
			LastSeenAt:     e.LastSeenAt,
		}
		p.ExploredWords = append(p.ExploredWords, w)
		if e.IsFavorite {
			p.FavoriteWords = append(p.FavoriteWords, w)
		}
	}
	return p, nil
}
