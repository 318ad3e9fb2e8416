package profile

import (
	"time"

	"github.com/brainboyai/tiny-tutor-api/internal/streak"
)

type ExploredWord struct {
	Word           string    `json:"word"`
	ConceptID      string    `json:"concept_id"`
	IsFavorite     bool      `json:"is_favorite"`
	ModesGenerated []string  `json:"modes_generated"`
	FirstSeenAt    time.Time `json:"first_seen_at"`
	LastSeenAt     time.Time `json:"last_seen_at"`
}

type Profile struct {
	UserID                     string           `json:"user_id"`
	Username                   string           `json:"username"`
	Tier                       string           `json:"tier"`
	QuizPoints                 int64            `json:"quiz_points"`
	TotalQuizQuestionsAnswered int64            `json:"total_quiz_questions_answered"`
	TotalQuizQuestionsCorrect  int64            `json:"total_quiz_questions_correct"`
	TotalWordsExplored         int              `json:"total_words_explored"`
	ExploredWords              []ExploredWord   `json:"explored_words"`
	FavoriteWords              []ExploredWord   `json:"favorite_words"`
	StreakHistory              []*streak.Record `json:"streak_history"`
}
