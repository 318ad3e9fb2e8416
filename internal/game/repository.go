package game

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, job *GenerationJob) error
	Get(ctx context.Context, id uuid.UUID) (*GenerationJob, error)
	// Claim marks a pending, unclaimed job as taken and returns it. It returns
	// nil when another worker got there first or the job is already final.
	Claim(ctx context.Context, id uuid.UUID) (*GenerationJob, error)
	// Complete and Fail only move pending jobs; they report whether the row
	// changed.
	Complete(ctx context.Context, id uuid.UUID, result string) (bool, error)
	Fail(ctx context.Context, id uuid.UUID, message string) (bool, error)
	ListUnclaimed(ctx context.Context, olderThan time.Duration, limit int) ([]uuid.UUID, error)
	FailStale(ctx context.Context, claimedBefore time.Duration, message string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, job *GenerationJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*GenerationJob, error) {
	var job GenerationJob
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *repository) Claim(ctx context.Context, id uuid.UUID) (*GenerationJob, error) {
	res := r.db.WithContext(ctx).Model(&GenerationJob{}).
		Where("id = ? AND status = ? AND claimed_at IS NULL", id, string(StatusPending)).
		Updates(map[string]any{
			"claimed_at": gorm.Expr("NOW()"),
			"updated_at": gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.Get(ctx, id)
}

func (r *repository) Complete(ctx context.Context, id uuid.UUID, result string) (bool, error) {
	return r.finish(ctx, id, map[string]any{
		"status": string(StatusCompleted),
		"result": result,
	})
}

func (r *repository) Fail(ctx context.Context, id uuid.UUID, message string) (bool, error) {
	return r.finish(ctx, id, map[string]any{
		"status": string(StatusFailed),
		"error":  message,
	})
}

func (r *repository) finish(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error) {
	updates["updated_at"] = gorm.Expr("NOW()")
	res := r.db.WithContext(ctx).Model(&GenerationJob{}).
		Where("id = ? AND status = ?", id, string(StatusPending)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) ListUnclaimed(ctx context.Context, olderThan time.Duration, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&GenerationJob{}).
		Where("status = ? AND claimed_at IS NULL", string(StatusPending)).
		Where("created_at < NOW() - (? * INTERVAL '1 second')", olderThan.Seconds()).
		Order("created_at").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) FailStale(ctx context.Context, claimedBefore time.Duration, message string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&GenerationJob{}).
		Where("status = ? AND claimed_at IS NOT NULL", string(StatusPending)).
		Where("claimed_at < NOW() - (? * INTERVAL '1 second')", claimedBefore.Seconds()).
		Updates(map[string]any{
			"status":     string(StatusFailed),
			"error":      message,
			"updated_at": gorm.Expr("NOW()"),
		})
	return res.RowsAffected, res.Error
}
