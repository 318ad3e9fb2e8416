package story

import "github.com/brainboyai/tiny-tutor-api/internal/apperr"

// Turn is the kind of node the lesson needs next.
type Turn string

const (
	TurnWelcome       Turn = "WELCOME"
	TurnExplanation   Turn = "EXPLANATION"
	TurnQuestion      Turn = "QUESTION"
	TurnFeedback      Turn = "FEEDBACK"
	TurnExplainAnswer Turn = "EXPLAIN_ANSWER"
	TurnSummary       Turn = "SUMMARY"
)

// Values of leads_to that drive the lesson forward.
const (
	LeadsToBeginExplanation = "begin_explanation"
	LeadsToAskQuestion      = "ask_question"
	LeadsToCorrect          = "Correct"
	LeadsToIncorrect        = "Incorrect"
	LeadsToExplainAnswer    = "explain_answer"
	LeadsToRequestSummary   = "request_summary"
	LeadsToEndStory         = "end_story"
)

var nextTurn = map[string]Turn{
	"":                      TurnWelcome,
	LeadsToBeginExplanation: TurnExplanation,
	LeadsToAskQuestion:      TurnQuestion,
	LeadsToCorrect:          TurnFeedback,
	LeadsToIncorrect:        TurnFeedback,
	LeadsToExplainAnswer:    TurnExplainAnswer,
	LeadsToRequestSummary:   TurnSummary,
}

// TurnFor maps the previous choice to the next turn.
func TurnFor(leadsTo string) (Turn, error) {
	if leadsTo == LeadsToEndStory {
		return "", apperr.BadRequest("the story has already ended")
	}
	t, ok := nextTurn[leadsTo]
	if !ok {
		return "", apperr.BadRequest("unknown last_choice_leads_to %q", leadsTo)
	}
	return t, nil
}
