package stats

import (
	"time"

	"github.com/google/uuid"
)

// QuizPointsPerCorrectAnswer is the fixed award for a correct quiz answer.
const QuizPointsPerCorrectAnswer = 10

type UserStats struct {
	UserID                     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	QuizPoints                 int64     `gorm:"not null;default:0" json:"quiz_points"`
	TotalQuizQuestionsAnswered int64     `gorm:"not null;default:0" json:"total_quiz_questions_answered"`
	TotalQuizQuestionsCorrect  int64     `gorm:"not null;default:0" json:"total_quiz_questions_correct"`
	UpdatedAt                  time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserStats) TableName() string { return "user_stats" }

// Delta is an increment applied atomically to a user's counters.
type Delta struct {
	QuizPoints int64
	Answered   int64
	Correct    int64
}

// QuizAttemptDelta returns the increments for one answered question.
func QuizAttemptDelta(isCorrect bool) Delta {
	d := Delta{Answered: 1}
	if isCorrect {
		d.Correct = 1
		d.QuizPoints = QuizPointsPerCorrectAnswer
	}
	return d
}
