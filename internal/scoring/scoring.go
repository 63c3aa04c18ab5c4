package scoring

import (
	"fmt"
	"strings"

	"goals-tracker-backend/internal/goals"
	"goals-tracker-backend/internal/tasks"
)

const (
	MinScore = 0
	MaxScore = 100
)

// ScoreOf returns the points a single task earns against the current goals.
//
// Incomplete tasks earn nothing. A completed task whose linked goal's target
// phrase appears in its text (case-insensitive substring) earns MaxScore no
// matter what relevance the analyzer assigned; otherwise it earns its
// relevance score clamped to [MinScore, MaxScore].
func ScoreOf(task tasks.Task, goalList []goals.Goal) int {
	if !task.IsCompleted {
		return 0
	}

	if task.RelatedGoalID != nil {
		if g, ok := goals.Find(goalList, *task.RelatedGoalID); ok && phraseMatches(task.Text, g.TargetPhrase) {
			return MaxScore
		}
	}

	return Clamp(task.RelevanceScore)
}

// DailyScore is the sum of ScoreOf over every task.
func DailyScore(list []tasks.Task, goalList []goals.Goal) int {
	total := 0
	for _, t := range list {
		total += ScoreOf(t, goalList)
	}
	return total
}

// Clamp bounds a relevance-style value to [MinScore, MaxScore].
func Clamp(score int) int {
	switch {
	case score < MinScore:
		return MinScore
	case score > MaxScore:
		return MaxScore
	default:
		return score
	}
}

// FormatScore renders points the way the results screen shows them.
func FormatScore(score int) string {
	return fmt.Sprintf("+%d pts", score)
}

func phraseMatches(text, phrase string) bool {
	needle := strings.ToLower(strings.TrimSpace(phrase))
	if needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(strings.TrimSpace(text)), needle)
}
