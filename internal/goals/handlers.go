package goals

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"goals-tracker-backend/internal/analytics"
	"goals-tracker-backend/internal/auth"
	"goals-tracker-backend/internal/respond"
	"goals-tracker-backend/internal/validation"
)

func ListHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		list, err := store.List(r.Context(), uid)
		if err != nil {
			log.Printf("[WARN] list goals user_id=%d: %v", uid, err)
			respond.Error(w, http.StatusInternalServerError, "Failed to fetch goals")
			return
		}

		respond.OK(w, map[string]any{"goals": list})
	}
}

func CreateHandler(store Store, events analytics.Execer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		raw, err := validation.ReadBody(r, validation.CreateGoal)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		var body struct {
			Title              string `json:"title"`
			TargetPhrase       string `json:"targetPhrase"`
			GeneralDescription string `json:"generalDescription"`
		}
		if err := validation.Unmarshal(raw, &body); err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		title := strings.TrimSpace(body.Title)
		if title == "" {
			respond.Error(w, http.StatusBadRequest, "Title is required")
			return
		}

		g, err := store.Create(r.Context(), uid, Goal{
			Title:              title,
			TargetPhrase:       strings.TrimSpace(body.TargetPhrase),
			GeneralDescription: strings.TrimSpace(body.GeneralDescription),
		})
		if err != nil {
			log.Printf("[WARN] create goal user_id=%d: %v", uid, err)
			respond.Error(w, http.StatusInternalServerError, "Failed to create goal")
			return
		}

		analytics.Track(r, events, uid, "goal_created", map[string]any{
			"goal_id":         g.ID,
			"title_len":       len(g.Title),
			"has_phrase":      g.TargetPhrase != "",
			"description_len": len(g.GeneralDescription),
		})

		respond.OK(w, map[string]any{"goal": g})
	}
}

func DeleteHandler(store Store, events analytics.Execer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id := r.PathValue("id")
		err := store.Delete(r.Context(), uid, id)
		if errors.Is(err, ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Goal not found")
			return
		}
		if err != nil {
			log.Printf("[WARN] delete goal user_id=%d: %v", uid, err)
			respond.Error(w, http.StatusInternalServerError, "Failed to delete goal")
			return
		}

		analytics.Track(r, events, uid, "goal_deleted", map[string]any{"goal_id": id})

		respond.OK(w, map[string]any{"success": true})
	}
}
