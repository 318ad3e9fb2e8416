package migrations

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/brainboyai/tiny-tutor-api/internal/concept"
	"github.com/brainboyai/tiny-tutor-api/internal/game"
	"github.com/brainboyai/tiny-tutor-api/internal/stats"
	"github.com/brainboyai/tiny-tutor-api/internal/streak"
)

// Run creates or updates every table the service owns.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&concept.Entry{},
		&streak.Record{},
		&game.GenerationJob{},
		&stats.UserStats{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// Sweeper scans only unfinished jobs.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_generation_jobs_pending
		ON generation_jobs (created_at) WHERE status = 'pending'`).Error; err != nil {
		return fmt.Errorf("create pending jobs index: %w", err)
	}
	return nil
}
