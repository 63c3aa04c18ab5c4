package scoring

import (
	"testing"

	"goals-tracker-backend/internal/goals"
	"goals-tracker-backend/internal/tasks"
)

func ptr(s string) *string { return &s }

var gymGoals = []goals.Goal{{ID: "g1", Title: "Exercise", TargetPhrase: "gym"}}

func TestScoreOf(t *testing.T) {
	tests := []struct {
		name  string
		task  tasks.Task
		goals []goals.Goal
		want  int
	}{
		{
			name:  "incomplete earns nothing even with phrase match",
			task:  tasks.Task{Text: "went to the gym", IsCompleted: false, RelevanceScore: 90, RelatedGoalID: ptr("g1")},
			goals: gymGoals,
			want:  0,
		},
		{
			name:  "incomplete earns nothing with out of range relevance",
			task:  tasks.Task{Text: "anything", RelevanceScore: 250},
			goals: nil,
			want:  0,
		},
		{
			name:  "phrase match overrides low relevance",
			task:  tasks.Task{Text: "went to the gym today", IsCompleted: true, RelevanceScore: 30, RelatedGoalID: ptr("g1")},
			goals: gymGoals,
			want:  100,
		},
		{
			name:  "override is the ceiling and does not lower a full score",
			task:  tasks.Task{Text: "gym", IsCompleted: true, RelevanceScore: 100, RelatedGoalID: ptr("g1")},
			goals: gymGoals,
			want:  100,
		},
		{
			name:  "override caps an out of range relevance at 100",
			task:  tasks.Task{Text: "gym", IsCompleted: true, RelevanceScore: 140, RelatedGoalID: ptr("g1")},
			goals: gymGoals,
			want:  100,
		},
		{
			name:  "match is case insensitive and trimmed",
			task:  tasks.Task{Text: "  Morning GYM session ", IsCompleted: true, RelevanceScore: 10, RelatedGoalID: ptr("g1")},
			goals: []goals.Goal{{ID: "g1", TargetPhrase: "  Gym "}},
			want:  100,
		},
		{
			name:  "substring match, not whole word",
			task:  tasks.Task{Text: "did homework", IsCompleted: true, RelevanceScore: 12, RelatedGoalID: ptr("g1")},
			goals: []goals.Goal{{ID: "g1", TargetPhrase: "home"}},
			want:  100,
		},
		{
			name:  "comma separated phrase is one needle",
			task:  tasks.Task{Text: "went for a run", IsCompleted: true, RelevanceScore: 55, RelatedGoalID: ptr("g1")},
			goals: []goals.Goal{{ID: "g1", TargetPhrase: "run, gym"}},
			want:  55,
		},
		{
			name:  "no substring match falls back to relevance",
			task:  tasks.Task{Text: "read a book", IsCompleted: true, RelevanceScore: 65, RelatedGoalID: ptr("g1")},
			goals: gymGoals,
			want:  65,
		},
		{
			name:  "dangling goal reference falls back",
			task:  tasks.Task{Text: "gym", IsCompleted: true, RelevanceScore: 40, RelatedGoalID: ptr("deleted")},
			goals: gymGoals,
			want:  40,
		},
		{
			name:  "empty goal list behaves like dangling reference",
			task:  tasks.Task{Text: "gym", IsCompleted: true, RelevanceScore: 40, RelatedGoalID: ptr("g1")},
			goals: nil,
			want:  40,
		},
		{
			name:  "empty target phrase never overrides",
			task:  tasks.Task{Text: "gym", IsCompleted: true, RelevanceScore: 33, RelatedGoalID: ptr("g1")},
			goals: []goals.Goal{{ID: "g1", TargetPhrase: ""}},
			want:  33,
		},
		{
			name:  "whitespace only target phrase never overrides",
			task:  tasks.Task{Text: "gym", IsCompleted: true, RelevanceScore: 33, RelatedGoalID: ptr("g1")},
			goals: []goals.Goal{{ID: "g1", TargetPhrase: "   \t"}},
			want:  33,
		},
		{
			name:  "phrase of another goal is ignored",
			task:  tasks.Task{Text: "gym", IsCompleted: true, RelevanceScore: 20, RelatedGoalID: ptr("g2")},
			goals: []goals.Goal{{ID: "g1", TargetPhrase: "gym"}, {ID: "g2", TargetPhrase: "book"}},
			want:  20,
		},
		{
			name:  "unlinked task uses relevance",
			task:  tasks.Task{Text: "gym", IsCompleted: true, RelevanceScore: 72},
			goals: gymGoals,
			want:  72,
		},
		{
			name: "relevance above range is clamped",
			task: tasks.Task{IsCompleted: true, RelevanceScore: 180},
			want: 100,
		},
		{
			name: "relevance below range is clamped",
			task: tasks.Task{IsCompleted: true, RelevanceScore: -15},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreOf(tt.task, tt.goals); got != tt.want {
				t.Errorf("ScoreOf() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreOfDoesNotMutateInputs(t *testing.T) {
	task := tasks.Task{ID: "t1", Text: "Gym", IsCompleted: true, RelevanceScore: 500, RelatedGoalID: ptr("g1")}
	list := []goals.Goal{{ID: "g1", TargetPhrase: " GYM "}}

	ScoreOf(task, list)

	if task.RelevanceScore != 500 || task.Text != "Gym" {
		t.Errorf("task was modified: %+v", task)
	}
	if list[0].TargetPhrase != " GYM " {
		t.Errorf("goal was modified: %+v", list[0])
	}
}

func journalScenario() []tasks.Task {
	return []tasks.Task{
		{ID: "t1", Text: "went to the gym today", IsCompleted: true, RelevanceScore: 40, RelatedGoalID: ptr("g1")},
		{ID: "t2", Text: "read a book", IsCompleted: true, RelevanceScore: 65},
		{ID: "t3", Text: "skipped workout", IsCompleted: false, RelevanceScore: 90, RelatedGoalID: ptr("g1")},
	}
}

func TestJournalScenario(t *testing.T) {
	list := journalScenario()

	want := []int{100, 65, 0}
	for i, task := range list {
		if got := ScoreOf(task, gymGoals); got != want[i] {
			t.Errorf("ScoreOf(%s) = %d, want %d", task.ID, got, want[i])
		}
	}

	if got := DailyScore(list, gymGoals); got != 165 {
		t.Errorf("DailyScore() = %d, want 165", got)
	}
}

func TestDailyScoreEmpty(t *testing.T) {
	if got := DailyScore(nil, gymGoals); got != 0 {
		t.Errorf("DailyScore(nil) = %d, want 0", got)
	}
	if got := DailyScore([]tasks.Task{}, nil); got != 0 {
		t.Errorf("DailyScore([]) = %d, want 0", got)
	}
}

func TestDailyScoreOrderIndependent(t *testing.T) {
	list := journalScenario()
	reversed := []tasks.Task{list[2], list[1], list[0]}
	rotated := []tasks.Task{list[1], list[2], list[0]}

	base := DailyScore(list, gymGoals)
	for _, perm := range [][]tasks.Task{reversed, rotated} {
		if got := DailyScore(perm, gymGoals); got != base {
			t.Errorf("DailyScore(permutation) = %d, want %d", got, base)
		}
	}
}

func TestDailyScoreNeverNegative(t *testing.T) {
	list := []tasks.Task{
		{IsCompleted: true, RelevanceScore: -50},
		{IsCompleted: true, RelevanceScore: -1},
		{IsCompleted: false, RelevanceScore: -100},
	}
	if got := DailyScore(list, nil); got != 0 {
		t.Errorf("DailyScore() = %d, want 0", got)
	}
}

func TestFormatScore(t *testing.T) {
	if got := FormatScore(65); got != "+65 pts" {
		t.Errorf("FormatScore(65) = %q", got)
	}
	if got := FormatScore(0); got != "+0 pts" {
		t.Errorf("FormatScore(0) = %q", got)
	}
}
