package profile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/brainboyai/tiny-tutor-api/internal/apperr"
	"github.com/brainboyai/tiny-tutor-api/internal/auth"
	"github.com/brainboyai/tiny-tutor-api/internal/concept"
	"github.com/brainboyai/tiny-tutor-api/internal/profile"
	"github.com/brainboyai/tiny-tutor-api/internal/stats"
	"github.com/brainboyai/tiny-tutor-api/internal/streak"
)

type stubConcepts struct {
	entries []*concept.Entry
	err     error
}

func (s stubConcepts) List(context.Context, uuid.UUID) ([]*concept.Entry, error) {
	return s.entries, s.err
}

type stubStreaks []*streak.Record

func (s stubStreaks) History(context.Context, uuid.UUID) ([]*streak.Record, error) {
	return s, nil
}

type stubStats struct{ row stats.UserStats }

func (s stubStats) Get(_ context.Context, userID uuid.UUID) (*stats.UserStats, error) {
	row := s.row
	row.UserID = userID
	return &row, nil
}

func (stubStats) Increment(context.Context, uuid.UUID, stats.Delta) error { return nil }

func TestProfile(t *testing.T) {
	user := uuid.New()
	now := time.Now()
	entries := []*concept.Entry{
		{ConceptID: "atom", Word: "Atom", IsFavorite: true, ModesGenerated: datatypes.JSONSlice[string]{"explain", "quiz"}, LastSeenAt: now},
		{ConceptID: "comet", Word: "Comet", LastSeenAt: now.Add(-time.Hour)},
	}
	history := stubStreaks{{ID: uuid.New(), Words: datatypes.JSONSlice[string]{"Atom", "Comet"}, Score: 2}}
	svc := profile.NewService(stubConcepts{entries: entries}, history, stubStats{row: stats.UserStats{
		QuizPoints: 30, TotalQuizQuestionsAnswered: 5, TotalQuizQuestionsCorrect: 3,
	}})

	p, err := svc.Get(context.Background(), &auth.Claims{UserID: user.String(), Username: "ada", Tier: "pro"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Username != "ada" || p.Tier != "pro" || p.UserID != user.String() {
		t.Errorf("identity = %+v", p)
	}
	if p.QuizPoints != 30 || p.TotalQuizQuestionsAnswered != 5 || p.TotalQuizQuestionsCorrect != 3 {
		t.Errorf("stats = %+v", p)
	}
	if p.TotalWordsExplored != 2 || len(p.ExploredWords) != 2 {
		t.Errorf("explored = %d", p.TotalWordsExplored)
	}
	if len(p.FavoriteWords) != 1 || p.FavoriteWords[0].ConceptID != "atom" {
		t.Errorf("favorites = %+v", p.FavoriteWords)
	}
	if len(p.StreakHistory) != 1 {
		t.Errorf("streaks = %+v", p.StreakHistory)
	}
}

func TestProfileErrors(t *testing.T) {
	ctx := context.Background()
	svc := profile.NewService(stubConcepts{err: apperr.Internal("failed to list concepts", errors.New("db down"))}, stubStreaks{}, stubStats{})

	if _, err := svc.Get(ctx, &auth.Claims{UserID: uuid.NewString()}); !apperr.Is(err, apperr.KindInternal) {
		t.Errorf("expected internal error, got %v", err)
	}
	if _, err := svc.Get(ctx, &auth.Claims{UserID: "nope"}); !apperr.Is(err, apperr.KindBadRequest) {
		t.Errorf("expected bad request, got %v", err)
	}
}
