package generator

import (
	"fmt"
	"strings"
)

const (
	QuizSeparator  = "---QUIZ_SEPARATOR---"
	NoQuizSentinel = "NO_QUIZ_POSSIBLE"
)

func languageMandate(lang string) string {
	return fmt.Sprintf("Language Mandate: You MUST write all user-facing text in the language with code '%s'.", lang)
}

func coldExplainPrompt(word, lang string) string {
	return fmt.Sprintf(`Define '%[1]s' for a curious beginner in exactly two sentences of simple, direct language.
Embed as many distinct foundational sub-topics (key terms, related concepts, formulas in LaTeX) as possible, each wrapped in <click>tags</click>. Sub-topics must not be synonyms or rephrasings of '%[1]s'.
Respond with the two sentences only, no headers or preamble.
%[2]s`, word, languageMandate(lang))
}

func contextualExplainPrompt(word string, streak []string, lang string) string {
	path := strings.Join(streak, ", ")
	avoid := strings.Join(append([]string{word}, streak...), ", ")
	return fmt.Sprintf(`Define '%[1]s' in exactly two sentences for a student who has explored these concepts in order: '%[2]s'.
Show how '%[1]s' builds on or extends that path. Embed as many distinct foundational sub-topics as possible, each wrapped in <click>tags</click>, chosen to suggest where to explore next.
The embedded sub-topics must not restate any of: '%[3]s'.
Respond with the two sentences only, no headers or preamble.
%[4]s`, word, path, avoid, languageMandate(lang))
}

func quizPrompt(word, source string, streak []string, lang string) string {
	hint := ""
	if len(streak) > 0 {
		hint = fmt.Sprintf(" The learning path so far included: %s.", strings.Join(streak, ", "))
	}
	return fmt.Sprintf(`Based strictly on the explanation text below for the term '%[1]s', write exactly 1 multiple-choice question that tests understanding of this text.%[2]s

Explanation Text:
"""%[3]s"""

If the text is too short or unsuitable to ask a meaningful question, reply with exactly %[4]s and nothing else.

Otherwise use this exact format:
**Question 1:** [question]
A) [option]
B) [option]
C) [option]
D) [option]
Correct Answer: [A, B, C or D]
Explanation: [short explanation]
Separate complete question blocks with '%[5]s'.
%[6]s`, word, hint, source, NoQuizSentinel, QuizSeparator, languageMandate(lang))
}

func gamePrompt(topic string) string {
	return fmt.Sprintf(`Generate a complete, single-file HTML5 educational mini-game for the topic "%s".
The game must teach the core learning objective of the topic, run without external build steps and fit any screen size.
Respond with the HTML document only, starting with <!DOCTYPE html>.`, topic)
}

const repairSystemPrompt = "You repair malformed JSON. Reply with JSON only."

func repairPrompt(broken string, schema []byte, cause error) string {
	return fmt.Sprintf(`The following output was supposed to be a single JSON value matching this JSON Schema, but it failed validation (%v).

Schema:
%s

Output:
%s

Return the corrected JSON only, preserving the original content wherever possible.`, cause, schema, broken)
}
