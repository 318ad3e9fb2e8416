package concept

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Get(ctx context.Context, userID uuid.UUID, conceptID string) (*Entry, error)
	Upsert(ctx context.Context, userID uuid.UUID, conceptID string, p Patch) (*Entry, error)
	SetFavorite(ctx context.Context, userID uuid.UUID, conceptID, word string, value bool) (*Entry, error)
	ToggleFavorite(ctx context.Context, userID uuid.UUID, conceptID, word string) (*Entry, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Entry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

var conflictColumns = []clause.Column{{Name: "user_id"}, {Name: "concept_id"}}

// Get returns nil, nil when the user never touched the concept.
func (r *repository) Get(ctx context.Context, userID uuid.UUID, conceptID string) (*Entry, error) {
	var e Entry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND concept_id = ?", userID, conceptID).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Upsert merges p into the entry in one statement. Content merges per mode
// key through jsonb concatenation, so concurrent writes to different modes
// never clobber each other; the same mode is last write wins.
func (r *repository) Upsert(ctx context.Context, userID uuid.UUID, conceptID string, p Patch) (*Entry, error) {
	content, contentJSON, err := p.contentJSON()
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	modes := p.modeNames()
	modesJSON, err := json.Marshal(modes)
	if err != nil {
		return nil, fmt.Errorf("encode modes: %w", err)
	}

	updates := map[string]any{
		"last_seen_at":            gorm.Expr("NOW()"),
		"generated_content_cache": gorm.Expr("concept_entries.generated_content_cache || ?::jsonb", string(contentJSON)),
		"modes_generated": gorm.Expr(`(SELECT COALESCE(jsonb_agg(DISTINCT m ORDER BY m), '[]'::jsonb)
			FROM jsonb_array_elements_text(concept_entries.modes_generated || ?::jsonb) AS t(m))`, string(modesJSON)),
	}
	if !p.KeepWord {
		updates["word"] = gorm.Expr("EXCLUDED.word")
	}

	row := Entry{
		UserID:                userID,
		ConceptID:             conceptID,
		Word:                  p.Word,
		GeneratedContentCache: content,
		ModesGenerated:        datatypes.JSONSlice[string](modes),
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   conflictColumns,
		DoUpdates: clause.Assignments(updates),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, conceptID)
}

func (r *repository) SetFavorite(ctx context.Context, userID uuid.UUID, conceptID, word string, value bool) (*Entry, error) {
	row := r.blankEntry(userID, conceptID, word)
	row.IsFavorite = value
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: conflictColumns,
		DoUpdates: clause.Assignments(map[string]any{
			"is_favorite":  value,
			"last_seen_at": gorm.Expr("NOW()"),
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, conceptID)
}

// ToggleFavorite flips is_favorite atomically. A missing entry is created as
// a favorite.
func (r *repository) ToggleFavorite(ctx context.Context, userID uuid.UUID, conceptID, word string) (*Entry, error) {
	row := r.blankEntry(userID, conceptID, word)
	row.IsFavorite = true
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: conflictColumns,
		DoUpdates: clause.Assignments(map[string]any{
			"is_favorite":  gorm.Expr("NOT concept_entries.is_favorite"),
			"last_seen_at": gorm.Expr("NOW()"),
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, conceptID)
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Entry, error) {
	var entries []*Entry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_seen_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) blankEntry(userID uuid.UUID, conceptID, word string) Entry {
	return Entry{
		UserID:                userID,
		ConceptID:             conceptID,
		Word:                  word,
		GeneratedContentCache: datatypes.JSONMap{},
		ModesGenerated:        datatypes.JSONSlice[string]{},
	}
}
