package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSchemas(t *testing.T) {
	tests := []struct {
		name   string
		schema *Schema
		doc    string
		ok     bool
	}{
		{"goal ok", CreateGoal, `{"title":"Exercise","targetPhrase":"gym"}`, true},
		{"goal without title", CreateGoal, `{"targetPhrase":"gym"}`, false},
		{"goal title wrong type", CreateGoal, `{"title":5}`, false},
		{"entry ok", SaveEntry, `{"date":"2026-10-19","tasks":[{"id":"t1","text":"x","isCompleted":true,"relevanceScore":40,"relatedGoalId":null}]}`, true},
		{"entry bad date", SaveEntry, `{"date":"yesterday","tasks":[]}`, false},
		{"entry fractional score", SaveEntry, `{"tasks":[{"id":"t1","text":"x","isCompleted":true,"relevanceScore":40.5}]}`, false},
		{"entry out of range score is allowed", SaveEntry, `{"tasks":[{"id":"t1","text":"x","isCompleted":true,"relevanceScore":400}]}`, true},
		{"entry missing tasks", SaveEntry, `{"date":"2026-10-19"}`, false},
		{"patch ok", TaskPatch, `{"isCompleted":true,"relatedGoalId":null}`, true},
		{"patch unknown field", TaskPatch, `{"id":"other"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Check([]byte(tt.doc))
			if (err == nil) != tt.ok {
				t.Errorf("Check() err = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestReadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/goals", strings.NewReader("  "))
	if _, err := ReadBody(req, CreateGoal); !errors.Is(err, ErrEmptyBody) {
		t.Errorf("err = %v, want ErrEmptyBody", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/goals", strings.NewReader(`{"title":`))
	if _, err := ReadBody(req, CreateGoal); err == nil {
		t.Error("expected error for truncated json")
	}

	req = httptest.NewRequest(http.MethodPost, "/goals", strings.NewReader(`{"title":"Read"}`))
	b, err := ReadBody(req, CreateGoal)
	if err != nil || string(b) != `{"title":"Read"}` {
		t.Errorf("ReadBody = %q, %v", b, err)
	}
}
