package scoring

import (
	"goals-tracker-backend/internal/goals"
	"goals-tracker-backend/internal/tasks"
)

type TaskScore struct {
	TaskID string `json:"taskId"`
	Points int    `json:"points"`
	Label  string `json:"label"`
	Band   Band   `json:"band"`
	Color  string `json:"color"`
}

// Summary is everything the results screen needs for one snapshot of tasks.
type Summary struct {
	Tasks     []TaskScore `json:"tasks"`
	Total     int         `json:"totalScore"`
	TaskCount int         `json:"taskCount"`
	Completed int         `json:"completedCount"`
	Tier      Tier        `json:"tier"`
	Message   string      `json:"message"`
}

// Summarize scores a snapshot. Bands follow each task's relevance score,
// not the points it earned.
func Summarize(list []tasks.Task, goalList []goals.Goal) Summary {
	s := Summary{
		Tasks:     make([]TaskScore, 0, len(list)),
		TaskCount: len(list),
	}

	for _, t := range list {
		pts := ScoreOf(t, goalList)
		band := BandOf(t.RelevanceScore)
		s.Tasks = append(s.Tasks, TaskScore{
			TaskID: t.ID,
			Points: pts,
			Label:  FormatScore(pts),
			Band:   band,
			Color:  band.Color(),
		})
		s.Total += pts
		if t.IsCompleted {
			s.Completed++
		}
	}

	s.Tier = Encouragement(s.Total, s.TaskCount)
	s.Message = s.Tier.Message()
	return s
}
