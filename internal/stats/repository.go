package stats

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Get(ctx context.Context, userID uuid.UUID) (*UserStats, error)
	Increment(ctx context.Context, userID uuid.UUID, d Delta) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Get returns zeroed stats for users that never answered a quiz.
func (r *repository) Get(ctx context.Context, userID uuid.UUID) (*UserStats, error) {
	var s UserStats
	err := r.db.WithContext(ctx).First(&s, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &UserStats{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Increment applies d as column deltas in a single upsert so concurrent
// submissions never lose an update.
func (r *repository) Increment(ctx context.Context, userID uuid.UUID, d Delta) error {
	row := UserStats{
		UserID:                     userID,
		QuizPoints:                 d.QuizPoints,
		TotalQuizQuestionsAnswered: d.Answered,
		TotalQuizQuestionsCorrect:  d.Correct,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quiz_points":                   gorm.Expr("user_stats.quiz_points + ?", d.QuizPoints),
			"total_quiz_questions_answered": gorm.Expr("user_stats.total_quiz_questions_answered + ?", d.Answered),
			"total_quiz_questions_correct":  gorm.Expr("user_stats.total_quiz_questions_correct + ?", d.Correct),
			"updated_at":                    gorm.Expr("NOW()"),
		}),
	}).Create(&row).Error
}
