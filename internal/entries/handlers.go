package entries

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"goals-tracker-backend/internal/analytics"
	"goals-tracker-backend/internal/auth"
	"goals-tracker-backend/internal/goals"
	"goals-tracker-backend/internal/respond"
	"goals-tracker-backend/internal/scoring"
	"goals-tracker-backend/internal/tasks"
	"goals-tracker-backend/internal/validation"
)

var now = time.Now

// Handlers serves the entry endpoints. Scores are recomputed against the
// owner's current goals on every write.
type Handlers struct {
	Entries Store
	Goals   goals.Store
	Events  analytics.Execer
}

type saveBody struct {
	Date  string       `json:"date"`
	Tasks []tasks.Task `json:"tasks"`
}

func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	list, err := h.Entries.List(r.Context(), uid)
	if err != nil {
		log.Printf("[WARN] list entries user_id=%d: %v", uid, err)
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch entries")
		return
	}

	respond.OK(w, map[string]any{"entries": list})
}

func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	e, err := h.Entries.Get(r.Context(), uid, r.PathValue("id"))
	if errors.Is(err, ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "Entry not found")
		return
	}
	if err != nil {
		log.Printf("[WARN] get entry user_id=%d: %v", uid, err)
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch entry")
		return
	}

	respond.OK(w, map[string]any{"entry": e})
}

func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	body, ok := readSave(w, r)
	if !ok {
		return
	}

	goalList, err := h.Goals.List(r.Context(), uid)
	if err != nil {
		log.Printf("[WARN] save entry: list goals user_id=%d: %v", uid, err)
		respond.Error(w, http.StatusInternalServerError, "Failed to save entry")
		return
	}

	e := DailyEntry{Date: body.Date, Tasks: body.Tasks}
	e.Rescore(goalList)

	e, err = h.Entries.Create(r.Context(), uid, e)
	if err != nil {
		log.Printf("[WARN] create entry user_id=%d: %v", uid, err)
		respond.Error(w, http.StatusInternalServerError, "Failed to save entry")
		return
	}

	analytics.Track(r, h.Events, uid, "entry_saved", entryProps(e))

	respond.OK(w, map[string]any{"entry": e})
}

// ReplaceTasks overwrites the task list (and optionally the date) of an entry.
func (h *Handlers) ReplaceTasks(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	body, ok := readSave(w, r)
	if !ok {
		return
	}

	e, ok := h.load(r.Context(), w, uid, r.PathValue("id"))
	if !ok {
		return
	}
	if body.dateGiven {
		e.Date = body.Date
	}
	e.Tasks = body.Tasks

	h.save(w, r, uid, e, "replace")
}

// PatchTask applies a single review edit to one task of a saved entry.
func (h *Handlers) PatchTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	raw, err := validation.ReadBody(r, validation.TaskPatch)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var p tasks.Patch
	if err := validation.Unmarshal(raw, &p); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	e, ok := h.load(r.Context(), w, uid, r.PathValue("id"))
	if !ok {
		return
	}

	updated, err := tasks.Apply(e.Tasks, r.PathValue("taskId"), p)
	if errors.Is(err, tasks.ErrTaskNotFound) {
		respond.Error(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	e.Tasks = updated

	h.save(w, r, uid, e, "task_patch")
}

func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := r.PathValue("id")
	err := h.Entries.Delete(r.Context(), uid, id)
	if errors.Is(err, ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "Entry not found")
		return
	}
	if err != nil {
		log.Printf("[WARN] delete entry user_id=%d: %v", uid, err)
		respond.Error(w, http.StatusInternalServerError, "Failed to delete entry")
		return
	}

	analytics.Track(r, h.Events, uid, "entry_deleted", map[string]any{"entry_id": id})

	respond.OK(w, map[string]any{"success": true})
}

// Score summarizes a task list against the caller's goals without saving it.
func (h *Handlers) Score(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	raw, err := validation.ReadBody(r, validation.ScoreTasks)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var body struct {
		Tasks []tasks.Task `json:"tasks"`
	}
	if err := validation.Unmarshal(raw, &body); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	goalList, err := h.Goals.List(r.Context(), uid)
	if err != nil {
		log.Printf("[WARN] score: list goals user_id=%d: %v", uid, err)
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch goals")
		return
	}

	respond.OK(w, scoring.Summarize(sanitize(body.Tasks), goalList))
}

func (h *Handlers) load(ctx context.Context, w http.ResponseWriter, uid int, id string) (DailyEntry, bool) {
	e, err := h.Entries.Get(ctx, uid, id)
	if errors.Is(err, ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "Entry not found")
		return DailyEntry{}, false
	}
	if err != nil {
		log.Printf("[WARN] load entry user_id=%d: %v", uid, err)
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch entry")
		return DailyEntry{}, false
	}
	return e, true
}

func (h *Handlers) save(w http.ResponseWriter, r *http.Request, uid int, e DailyEntry, change string) {
	goalList, err := h.Goals.List(r.Context(), uid)
	if err != nil {
		log.Printf("[WARN] update entry: list goals user_id=%d: %v", uid, err)
		respond.Error(w, http.StatusInternalServerError, "Failed to update entry")
		return
	}
	e.Rescore(goalList)

	e, err = h.Entries.Update(r.Context(), uid, e)
	if errors.Is(err, ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "Entry not found")
		return
	}
	if err != nil {
		log.Printf("[WARN] update entry user_id=%d: %v", uid, err)
		respond.Error(w, http.StatusInternalServerError, "Failed to update entry")
		return
	}

	props := entryProps(e)
	props["change"] = change
	analytics.Track(r, h.Events, uid, "entry_updated", props)

	respond.OK(w, map[string]any{"entry": e})
}

type saveRequest struct {
	saveBody
	dateGiven bool
}

// readSave validates a save body, defaults the date to today (UTC) and
// clamps client supplied relevance scores. Any totalScore sent is ignored.
func readSave(w http.ResponseWriter, r *http.Request) (saveRequest, bool) {
	raw, err := validation.ReadBody(r, validation.SaveEntry)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return saveRequest{}, false
	}

	var req saveRequest
	if err := validation.Unmarshal(raw, &req.saveBody); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid json")
		return saveRequest{}, false
	}

	req.Date = strings.TrimSpace(req.Date)
	req.dateGiven = req.Date != ""
	if !req.dateGiven {
		req.Date = now().UTC().Format(DateLayout)
	}
	if _, err := time.Parse(DateLayout, req.Date); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid date")
		return saveRequest{}, false
	}

	req.Tasks = sanitize(req.Tasks)
	return req, true
}

func sanitize(list []tasks.Task) []tasks.Task {
	out := make([]tasks.Task, 0, len(list))
	for _, t := range list {
		t.RelevanceScore = tasks.ClampRelevance(t.RelevanceScore)
		if t.RelatedGoalID != nil && *t.RelatedGoalID == "" {
			t.RelatedGoalID = nil
		}
		out = append(out, t)
	}
	return out
}

func entryProps(e DailyEntry) map[string]any {
	return map[string]any{
		"entry_id":        e.ID,
		"task_count":      len(e.Tasks),
		"completed_count": e.CompletedCount(),
		"total_score":     e.TotalScore,
	}
}
