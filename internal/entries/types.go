package entries

import (
	"time"

	"goals-tracker-backend/internal/goals"
	"goals-tracker-backend/internal/scoring"
	"goals-tracker-backend/internal/tasks"
)

const DateLayout = "2006-01-02"

// DailyEntry is one saved journal page. TotalScore is always derived from
// Tasks and the owner's goals at save time.
type DailyEntry struct {
	ID         string       `json:"id"`
	Date       string       `json:"date"`
	Tasks      []tasks.Task `json:"tasks"`
	TotalScore int          `json:"totalScore"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// Rescore recomputes TotalScore against goalList.
func (e *DailyEntry) Rescore(goalList []goals.Goal) {
	e.TotalScore = scoring.DailyScore(e.Tasks, goalList)
}

func (e DailyEntry) CompletedCount() int {
	n := 0
	for _, t := range e.Tasks {
		if t.IsCompleted {
			n++
		}
	}
	return n
}
