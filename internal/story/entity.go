package story

import "encoding/json"

type Option struct {
	Text      string `json:"text"`
	LeadsTo   string `json:"leads_to"`
	IsCorrect bool   `json:"is_correct"`
}

type Interaction struct {
	Type    string   `json:"type"`
	Options []Option `json:"options"`
}

// Node is one turn of an interactive lesson.
type Node struct {
	FeedbackOnPreviousAnswer string      `json:"feedback_on_previous_answer"`
	Dialogue                 string      `json:"dialogue"`
	ImagePrompts             []string    `json:"image_prompts"`
	Interaction              Interaction `json:"interaction"`
}

type NodeRequest struct {
	Topic string `json:"topic"`
	// History is the client's transcript so far, passed to the model as is.
	History           []json.RawMessage `json:"history"`
	LastChoiceLeadsTo string            `json:"last_choice_leads_to"`
	Language          string            `json:"language"`
}
