package tasks

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// GoalLink distinguishes an absent relatedGoalId from an explicit null.
type GoalLink struct {
	Set bool
	ID  *string
}

func (l *GoalLink) UnmarshalJSON(b []byte) error {
	l.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		l.ID = nil
		return nil
	}
	var id string
	if err := json.Unmarshal(b, &id); err != nil {
		return fmt.Errorf("relatedGoalId: %w", err)
	}
	if id == "" {
		l.ID = nil
		return nil
	}
	l.ID = &id
	return nil
}

// Patch is a review-session edit. Nil fields are left untouched.
type Patch struct {
	Text           *string  `json:"text"`
	IsCompleted    *bool    `json:"isCompleted"`
	RelevanceScore *int     `json:"relevanceScore"`
	RelatedGoalID  GoalLink `json:"relatedGoalId"`
}

// Apply returns a copy of list with the patch applied to task id.
// The input slice is never modified.
func Apply(list []Task, id string, p Patch) ([]Task, error) {
	idx := indexOf(list, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	out := make([]Task, len(list))
	copy(out, list)

	t := out[idx]
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.IsCompleted != nil {
		t.IsCompleted = *p.IsCompleted
	}
	if p.RelevanceScore != nil {
		t.RelevanceScore = ClampRelevance(*p.RelevanceScore)
	}
	if p.RelatedGoalID.Set {
		t.RelatedGoalID = copyRef(p.RelatedGoalID.ID)
	}
	t.WasManuallyEdited = true
	out[idx] = t

	return out, nil
}

func UpdateText(list []Task, id, text string) ([]Task, error) {
	return Apply(list, id, Patch{Text: &text})
}

// ToggleCompletion flips the completion flag of one task.
func ToggleCompletion(list []Task, id string) ([]Task, error) {
	idx := indexOf(list, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	done := !list[idx].IsCompleted
	return Apply(list, id, Patch{IsCompleted: &done})
}

// LinkGoal points a task at goalID, or unlinks it when goalID is nil.
func LinkGoal(list []Task, id string, goalID *string) ([]Task, error) {
	return Apply(list, id, Patch{RelatedGoalID: GoalLink{Set: true, ID: goalID}})
}

func indexOf(list []Task, id string) int {
	for i, t := range list {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func copyRef(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
