package generator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SplitQuiz turns raw quiz output into question blocks. The no-quiz sentinel
// yields an empty, non-nil list.
func SplitQuiz(raw string) []string {
	raw = strings.TrimSpace(raw)
	questions := []string{}
	if raw == "" || strings.Contains(raw, NoQuizSentinel) {
		return questions
	}
	for _, block := range strings.Split(raw, QuizSeparator) {
		if block = strings.TrimSpace(block); block != "" {
			questions = append(questions, block)
		}
	}
	return questions
}

var errNoHTML = errors.New("no HTML document in model output")

// ExtractHTML drops any reasoning the model put before the document and the
// markdown fences around it.
func ExtractHTML(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	start := strings.Index(raw, "<!DOCTYPE html>")
	if start == -1 {
		start = strings.Index(raw, "<")
	}
	if start == -1 {
		return "", errNoHTML
	}
	html := strings.TrimSpace(raw[start:])
	html = strings.TrimPrefix(html, "```html")
	html = strings.TrimSuffix(html, "```")
	html = strings.TrimSpace(html)
	if !strings.Contains(strings.ToLower(html), "<html") && !strings.Contains(strings.ToLower(html), "<body") {
		return "", errNoHTML
	}
	return html, nil
}

// ParseJSON finds a JSON value in model output, tolerating code fences and
// surrounding prose.
func ParseJSON(content string) (json.RawMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("empty structured output")
	}

	candidates := []string{content, stripCodeFences(content), extractJSONCandidate(content)}
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		var parsed any
		if err := json.Unmarshal([]byte(c), &parsed); err == nil {
			return json.Marshal(parsed)
		}
	}
	return nil, errors.New("failed to parse structured JSON")
}

func stripCodeFences(content string) string {
	if !strings.HasPrefix(content, "```") {
		return ""
	}
	body := strings.TrimPrefix(content, "```")
	if nl := strings.IndexByte(body, '\n'); nl != -1 {
		body = body[nl+1:]
	}
	return strings.TrimSuffix(strings.TrimSpace(body), "```")
}

func extractJSONCandidate(content string) string {
	start := strings.IndexAny(content, "{[")
	if start == -1 {
		return ""
	}
	closeChar := "}"
	if content[start] == '[' {
		closeChar = "]"
	}
	end := strings.LastIndex(content, closeChar)
	if end < start {
		return ""
	}
	return content[start : end+1]
}

// Schema is a compiled JSON Schema together with its source text, which is
// shown to the model when asking for a repair.
type Schema struct {
	raw      []byte
	compiled *jsonschema.Schema
}

func CompileSchema(name string, raw []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("load schema %s: %w", name, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return &Schema{raw: raw, compiled: compiled}, nil
}

func MustCompileSchema(name string, raw []byte) *Schema {
	s, err := CompileSchema(name, raw)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Validate(doc json.RawMessage) error {
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("decode structured output: %w", err)
	}
	if err := s.compiled.Validate(v); err != nil {
		return fmt.Errorf("structured output does not match schema: %w", err)
	}
	return nil
}

// parseAndValidate is ParseJSON followed by schema validation.
func (s *Schema) parseAndValidate(content string) (json.RawMessage, error) {
	doc, err := ParseJSON(content)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
