package streak

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Record is one completed streak. Records are never updated.
type Record struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID                   `gorm:"type:uuid;not null;index:idx_streaks_user_completed,priority:1" json:"-"`
	Words       datatypes.JSONSlice[string] `gorm:"type:jsonb;not null" json:"words"`
	Score       int                         `gorm:"not null;check:score >= 2" json:"score"`
	CompletedAt time.Time                   `gorm:"not null;default:now();index:idx_streaks_user_completed,priority:2,sort:desc" json:"completed_at"`
}

func (Record) TableName() string { return "streaks" }

const (
	// MinScore is the shortest chain that counts as a streak.
	MinScore = 2
	// DedupWindow suppresses resubmission of the same streak.
	DedupWindow = 2 * time.Minute
	// HistoryLimit caps the history returned to clients.
	HistoryLimit = 50
)
