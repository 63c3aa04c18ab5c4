package tasks

import "errors"

var ErrTaskNotFound = errors.New("task not found")

// Task is one transcribed (or user-edited) to-do line from a journal page.
type Task struct {
	ID                string  `json:"id"`
	Text              string  `json:"text"`
	IsCompleted       bool    `json:"isCompleted"`
	RelevanceScore    int     `json:"relevanceScore"`
	RelatedGoalID     *string `json:"relatedGoalId"`
	WasManuallyEdited bool    `json:"wasManuallyEdited"`
}

// RawTask is a task annotation exactly as the analysis model returned it.
// Fields stay untyped until Normalize coerces them.
type RawTask struct {
	Text           any `json:"text"`
	IsCompleted    any `json:"isCompleted"`
	RelevanceScore any `json:"relevanceScore"`
	RelatedGoalID  any `json:"relatedGoalId"`
}
