package game

import (
	"time"

	"github.com/google/uuid"
)

// GenerationJob tracks one asynchronous game generation. ClaimedAt is set
// once, by the worker that executes the job.
type GenerationJob struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"job_id"`
	OwnerUserID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	Topic        string     `gorm:"type:text;not null" json:"topic"`
	ConceptID    string     `gorm:"type:text;not null" json:"concept_id"`
	ForceRefresh bool       `gorm:"not null;default:false" json:"force_refresh"`
	Status       Status     `gorm:"type:text;not null;default:'pending'" json:"status"`
	Result       string     `gorm:"type:text" json:"-"`
	ErrorMessage string     `gorm:"column:error;type:text" json:"error,omitempty"`
	ClaimedAt    *time.Time `json:"claimed_at,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (GenerationJob) TableName() string { return "generation_jobs" }
