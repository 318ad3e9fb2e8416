package concept

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Entry is the per-user, per-concept cache document.
type Entry struct {
	UserID                uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"-"`
	ConceptID             string                      `gorm:"type:text;primaryKey" json:"concept_id"`
	Word                  string                      `gorm:"type:text;not null" json:"word"`
	IsFavorite            bool                        `gorm:"not null;default:false" json:"is_favorite"`
	FirstSeenAt           time.Time                   `gorm:"not null;default:now()" json:"first_seen_at"`
	LastSeenAt            time.Time                   `gorm:"not null;default:now();index" json:"last_seen_at"`
	GeneratedContentCache datatypes.JSONMap           `gorm:"type:jsonb;not null;default:'{}'" json:"generated_content_cache"`
	ModesGenerated        datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'" json:"modes_generated"`
}

func (Entry) TableName() string { return "concept_entries" }

// Cached returns the stored payload for m.
func (e *Entry) Cached(m Mode) (any, bool) {
	if e == nil || e.GeneratedContentCache == nil || !m.Cacheable() {
		return nil, false
	}
	v, ok := e.GeneratedContentCache[m.String()]
	return v, ok
}

// Patch describes one merge into an Entry. Content is merged per mode key,
// Modes are unioned into modes_generated and last_seen_at is always bumped.
type Patch struct {
	Word     string
	KeepWord bool
	Content  map[Mode]any
	Modes    []Mode
}

func (p Patch) contentJSON() (datatypes.JSONMap, []byte, error) {
	m := datatypes.JSONMap{}
	for mode, payload := range p.Content {
		if !mode.Cacheable() {
			continue
		}
		m[mode.String()] = payload
	}
	b, err := json.Marshal(m)
	return m, b, err
}

func (p Patch) modeNames() []string {
	return mergeModeNames(nil, p.Modes)
}
