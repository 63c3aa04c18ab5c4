package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"goals-tracker-backend/internal/goals"
	"goals-tracker-backend/internal/tasks"
	"goals-tracker-backend/internal/validation"
)

var ErrNoJSON = errors.New("no valid JSON found in response")

// Analysis is one pass over a journal page.
// Error is set when the model itself declared the page unreadable.
type Analysis struct {
	Tasks            []tasks.Task `json:"tasks"`
	RawTranscription string       `json:"rawTranscription"`
	Error            string       `json:"error,omitempty"`
}

type Phrases struct {
	Phrases     []string `json:"phrases"`
	Description string   `json:"description"`
}

// Analyzer is what the HTTP layer needs from the model.
type Analyzer interface {
	AnalyzeJournal(ctx context.Context, image string, goalList []goals.Goal) (Analysis, error)
	GeneratePhrases(ctx context.Context, title string) (Phrases, error)
}

var analysisSchema = validation.MustCompile("analysis", `{
	"type": "object",
	"properties": {
		"tasks": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["text", "isCompleted", "relevanceScore"],
				"properties": {
					"text": {"type": "string"},
					"isCompleted": {"type": "boolean"},
					"relevanceScore": {"type": "number", "minimum": 0, "maximum": 100},
					"relatedGoalId": {"type": ["string", "null"]}
				}
			}
		},
		"rawTranscription": {"type": "string"},
		"error": {"type": "string"}
	}
}`)

func (c *GeminiClient) AnalyzeJournal(ctx context.Context, image string, goalList []goals.Goal) (Analysis, error) {
	mimeType, data := SplitDataURL(image)

	parts := []part{
		{Text: journalSystemPrompt},
		{InlineData: &inlineData{MimeType: mimeType, Data: data}},
		{Text: BuildUserPrompt(goalList)},
	}

	text, err := c.generate(ctx, parts, 0.2, 4096)
	if err != nil {
		return Analysis{}, err
	}

	return ParseAnalysis(text)
}

func (c *GeminiClient) GeneratePhrases(ctx context.Context, title string) (Phrases, error) {
	text, err := c.generate(ctx, []part{{Text: BuildPhrasesPrompt(title)}}, 0.4, 1024)
	if err != nil {
		return Phrases{}, err
	}
	return ParsePhrases(text)
}

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractJSON finds the JSON object in a model answer: the whole text, a
// fenced code block, or the span from the first '{' to the last '}'.
func ExtractJSON(text string) (string, error) {
	t := strings.TrimSpace(text)
	if json.Valid([]byte(t)) {
		return t, nil
	}

	if m := fencedJSON.FindStringSubmatch(t); m != nil {
		inner := strings.TrimSpace(m[1])
		if json.Valid([]byte(inner)) {
			return inner, nil
		}
	}

	start, end := strings.Index(t, "{"), strings.LastIndex(t, "}")
	if start >= 0 && end > start {
		span := t[start : end+1]
		if json.Valid([]byte(span)) {
			return span, nil
		}
	}

	return "", ErrNoJSON
}

// ParseAnalysis turns model text into materialized tasks. Schema violations
// are logged, never fatal: every task is normalized at this boundary.
func ParseAnalysis(text string) (Analysis, error) {
	doc, err := ExtractJSON(text)
	if err != nil {
		return Analysis{}, err
	}

	if err := analysisSchema.Check([]byte(doc)); err != nil {
		log.Printf("[WARN] analysis response does not match schema: %v", err)
	}

	var payload struct {
		Tasks            json.RawMessage `json:"tasks"`
		RawTranscription any             `json:"rawTranscription"`
		Error            any             `json:"error"`
	}
	if err := json.Unmarshal([]byte(doc), &payload); err != nil {
		return Analysis{}, fmt.Errorf("decode analysis: %w", err)
	}

	out := Analysis{
		Tasks:            tasks.Materialize(rawTasks(payload.Tasks)),
		RawTranscription: stringOr(payload.RawTranscription),
		Error:            stringOr(payload.Error),
	}
	return out, nil
}

// rawTasks keeps every object element of a tasks array. Anything that is
// not an array yields no tasks.
func rawTasks(msg json.RawMessage) []tasks.RawTask {
	var items []json.RawMessage
	if err := json.Unmarshal(msg, &items); err != nil {
		return nil
	}

	out := make([]tasks.RawTask, 0, len(items))
	for _, it := range items {
		if string(it) == "null" {
			continue
		}
		var rt tasks.RawTask
		if err := json.Unmarshal(it, &rt); err != nil {
			continue
		}
		out = append(out, rt)
	}
	return out
}

func ParsePhrases(text string) (Phrases, error) {
	doc, err := ExtractJSON(text)
	if err != nil {
		return Phrases{}, err
	}

	var raw struct {
		Phrases     []any `json:"phrases"`
		Description any   `json:"description"`
	}
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return Phrases{}, fmt.Errorf("decode phrases: %w", err)
	}

	p := Phrases{Phrases: []string{}, Description: strings.TrimSpace(stringOr(raw.Description))}
	for _, v := range raw.Phrases {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			p.Phrases = append(p.Phrases, strings.TrimSpace(s))
		}
	}
	return p, nil
}

func stringOr(v any) string {
	s, _ := v.(string)
	return s
}
