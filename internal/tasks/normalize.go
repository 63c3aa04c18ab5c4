package tasks

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Normalize turns one raw analyzer annotation into a Task.
// Malformed values fall back to safe defaults, nothing is rejected.
func Normalize(raw RawTask) Task {
	return Task{
		Text:           textOf(raw.Text),
		IsCompleted:    truthy(raw.IsCompleted),
		RelevanceScore: relevanceOf(raw.RelevanceScore),
		RelatedGoalID:  goalRefOf(raw.RelatedGoalID),
	}
}

// Materialize normalizes a batch from one analysis pass and gives every task
// a fresh id. Ids are assigned here, never by the analyzer.
func Materialize(raws []RawTask) []Task {
	out := make([]Task, 0, len(raws))
	for _, r := range raws {
		t := Normalize(r)
		t.ID = uuid.NewString()
		out = append(out, t)
	}
	return out
}

func textOf(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(x)); err == nil {
			return b
		}
		return x != ""
	default:
		return true
	}
}

func relevanceOf(v any) int {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int:
		f = float64(x)
	case bool:
		if x {
			f = 1
		}
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) {
		return 0
	}
	return ClampRelevance(int(math.Round(math.Max(-1, math.Min(101, f)))))
}

func goalRefOf(v any) *string {
	var id string
	switch x := v.(type) {
	case string:
		id = strings.TrimSpace(x)
	case float64:
		id = strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		id = strconv.Itoa(x)
	default:
		return nil
	}
	if id == "" || strings.EqualFold(id, "null") {
		return nil
	}
	return &id
}

// ClampRelevance bounds a relevance score to [0,100].
func ClampRelevance(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
