package streak

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Repository interface {
	ExistsRecent(ctx context.Context, userID uuid.UUID, words []string, window time.Duration) (bool, error)
	Create(ctx context.Context, userID uuid.UUID, words []string, score int) (*Record, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]*Record, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ExistsRecent reports whether the same ordered word list was recorded for
// the user within window of the database clock.
func (r *repository) ExistsRecent(ctx context.Context, userID uuid.UUID, words []string, window time.Duration) (bool, error) {
	wordsJSON, err := json.Marshal(words)
	if err != nil {
		return false, err
	}
	var n int64
	err = r.db.WithContext(ctx).Model(&Record{}).
		Where("user_id = ?", userID).
		Where("words = ?::jsonb", string(wordsJSON)).
		Where("completed_at > NOW() - (? * INTERVAL '1 second')", window.Seconds()).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *repository) Create(ctx context.Context, userID uuid.UUID, words []string, score int) (*Record, error) {
	rec := &Record{
		ID:     uuid.New(),
		UserID: userID,
		Words:  datatypes.JSONSlice[string](words),
		Score:  score,
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *repository) History(ctx context.Context, userID uuid.UUID, limit int) ([]*Record, error) {
	records := []*Record{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
