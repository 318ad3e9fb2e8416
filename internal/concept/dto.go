package concept

import (
	"time"

	"github.com/brainboyai/tiny-tutor-api/internal/stats"
)

type Source string

const (
	SourceCache     Source = "cache"
	SourceGenerated Source = "generated"
)

type GenerateRequest struct {
	Word          string   `json:"word"`
	Mode          Mode     `json:"mode"`
	ForceRefresh  bool     `json:"force_refresh"`
	StreakContext []string `json:"streak_context"`
	SourceText    string   `json:"explanation_text"`
	Language      string   `json:"language"`
}

type GenerateResponse struct {
	Word                  string         `json:"word"`
	ConceptID             string         `json:"concept_id"`
	Mode                  Mode           `json:"mode"`
	Content               any            `json:"content"`
	Source                Source         `json:"source"`
	IsFavorite            bool           `json:"is_favorite"`
	GeneratedContentCache map[string]any `json:"generated_content_cache"`
	ModesGenerated        []string       `json:"modes_generated"`
	FirstSeenAt           time.Time      `json:"first_seen_at"`
	LastSeenAt            time.Time      `json:"last_seen_at"`
}

func newGenerateResponse(e *Entry, mode Mode, content any, src Source) *GenerateResponse {
	resp := &GenerateResponse{
		Mode:                  mode,
		Content:               content,
		Source:                src,
		GeneratedContentCache: map[string]any{},
		ModesGenerated:        []string{},
	}
	if e == nil {
		return resp
	}
	resp.Word = e.Word
	resp.ConceptID = e.ConceptID
	resp.IsFavorite = e.IsFavorite
	resp.FirstSeenAt = e.FirstSeenAt
	resp.LastSeenAt = e.LastSeenAt
	if e.GeneratedContentCache != nil {
		resp.GeneratedContentCache = e.GeneratedContentCache
	}
	if e.ModesGenerated != nil {
		resp.ModesGenerated = e.ModesGenerated
	}
	return resp
}

type FavoriteRequest struct {
	Word       string `json:"word"`
	IsFavorite *bool  `json:"is_favorite,omitempty"`
}

type FavoriteResponse struct {
	Word       string `json:"word"`
	ConceptID  string `json:"concept_id"`
	IsFavorite bool   `json:"is_favorite"`
}

type QuizAttemptRequest struct {
	Word      string `json:"word"`
	IsCorrect bool   `json:"is_correct"`
}

type QuizAttemptResponse struct {
	Message string           `json:"message"`
	Stats   *stats.UserStats `json:"stats"`
}
