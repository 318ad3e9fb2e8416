package story

import (
	"encoding/json"
	"fmt"

	"github.com/brainboyai/tiny-tutor-api/internal/generator"
)

const systemPrompt = `You are 'Tiny Tutor', an educator running a short interactive lesson as a sequence of turns.

Turn rules:
- WELCOME: greet the learner and introduce the topic. ONE option leading to 'begin_explanation'.
- EXPLANATION: teach ONE new idea the history has not covered yet. ONE option leading to 'ask_question'.
- QUESTION: ask ONE multiple-choice question about the idea just explained. Exactly one option leads to 'Correct' with is_correct true; every other option leads to 'Incorrect'. The correct option must not be first.
- FEEDBACK: the dialogue holds only the feedback words, such as "Correct!" or "Not quite." ONE option leading to 'explain_answer'.
- EXPLAIN_ANSWER: explain the answer to the last question. ONE option leading to 'begin_explanation' to continue, or 'request_summary' when the lesson is complete.
- SUMMARY: summarise what was learned. ONE option leading to 'end_story'.

Every turn has exactly one descriptive, photorealistic image prompt of at least 15 words.
Never repeat content from the history and always move the lesson forward.
Reply with a single JSON object with the fields feedback_on_previous_answer, dialogue, image_prompts and interaction {type, options[{text, leads_to, is_correct}]}.
interaction.type is "Text-based Button Selection".`

func BuildUserPrompt(req NodeRequest, turn Turn) (string, error) {
	history, err := json.MarshalIndent(req.History, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}
	lang := req.Language
	if lang == "" {
		lang = generator.DefaultLanguage
	}
	return fmt.Sprintf(`Topic: %s
Conversation history:
%s
Learner's last choice leads_to: '%s'
Generate the %s turn now.
Language Mandate: You MUST write all user-facing text in the language with code '%s'.`,
		req.Topic, history, req.LastChoiceLeadsTo, turn, lang), nil
}

var nodeSchema = generator.MustCompileSchema("story_node.json", []byte(`{
  "type": "object",
  "required": ["dialogue", "image_prompts", "interaction"],
  "properties": {
    "feedback_on_previous_answer": {"type": "string"},
    "dialogue": {"type": "string", "minLength": 3},
    "image_prompts": {
      "type": "array",
      "minItems": 1,
      "items": {"type": "string", "minLength": 1}
    },
    "interaction": {
      "type": "object",
      "required": ["type", "options"],
      "properties": {
        "type": {"type": "string"},
        "options": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "object",
            "required": ["text", "leads_to"],
            "properties": {
              "text": {"type": "string", "minLength": 1},
              "leads_to": {"type": "string", "minLength": 1},
              "is_correct": {"type": "boolean"}
            }
          }
        }
      }
    }
  }
}`))
