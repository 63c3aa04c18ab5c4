package ai

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"goals-tracker-backend/internal/analytics"
	"goals-tracker-backend/internal/auth"
	"goals-tracker-backend/internal/goals"
	"goals-tracker-backend/internal/respond"
	"goals-tracker-backend/internal/tasks"
	"goals-tracker-backend/internal/validation"
)

// empty result the client renders when analysis fails
var noTasks = map[string]any{"tasks": []tasks.Task{}, "rawTranscription": ""}

func AnalyzeHandler(analyzer Analyzer, goalStore goals.Store, events analytics.Execer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		raw, err := validation.ReadBody(r, validation.Analyze)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, err.Error(), noTasks)
			return
		}

		var body struct {
			Image string `json:"image"`
		}
		if err := validation.Unmarshal(raw, &body); err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid json", noTasks)
			return
		}
		if strings.TrimSpace(body.Image) == "" {
			respond.Error(w, http.StatusBadRequest, "Image is required", noTasks)
			return
		}

		goalList, err := goalStore.List(r.Context(), uid)
		if err != nil {
			log.Printf("[WARN] analyze: list goals user_id=%d: %v", uid, err)
			respond.Error(w, http.StatusInternalServerError, "Failed to fetch goals", noTasks)
			return
		}

		res, err := analyzer.AnalyzeJournal(r.Context(), body.Image, goalList)
		if errors.Is(err, ErrNotConfigured) {
			respond.Error(w, http.StatusInternalServerError, "Gemini API key not configured", noTasks)
			return
		}
		if err != nil {
			log.Printf("[WARN] analyze journal user_id=%d: %v", uid, err)
			respond.Error(w, http.StatusInternalServerError, "Failed to analyze journal", noTasks)
			return
		}

		if res.Error != "" {
			respond.Error(w, http.StatusUnprocessableEntity, res.Error, map[string]any{
				"tasks":            res.Tasks,
				"rawTranscription": res.RawTranscription,
			})
			return
		}

		completed := 0
		for _, t := range res.Tasks {
			if t.IsCompleted {
				completed++
			}
		}
		analytics.Track(r, events, uid, "journal_analyzed", map[string]any{
			"task_count":      len(res.Tasks),
			"completed_count": completed,
			"goal_count":      len(goalList),
		})

		respond.OK(w, res)
	}
}

func PhrasesHandler(analyzer Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := validation.ReadBody(r, validation.GeneratePhrases)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		var body struct {
			Title string `json:"title"`
		}
		if err := validation.Unmarshal(raw, &body); err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if strings.TrimSpace(body.Title) == "" {
			respond.Error(w, http.StatusBadRequest, "Title is required")
			return
		}

		p, err := analyzer.GeneratePhrases(r.Context(), body.Title)
		if errors.Is(err, ErrNotConfigured) {
			respond.Error(w, http.StatusInternalServerError, "Gemini API key not configured")
			return
		}
		if err != nil {
			log.Printf("[WARN] generate phrases: %v", err)
			respond.Error(w, http.StatusInternalServerError, "Failed to generate phrases")
			return
		}

		respond.OK(w, p)
	}
}
