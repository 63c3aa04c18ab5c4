package main

import (
	"net/http"

	"goals-tracker-backend/internal/ai"
	"goals-tracker-backend/internal/analytics"
	"goals-tracker-backend/internal/auth"
	"goals-tracker-backend/internal/entries"
	"goals-tracker-backend/internal/goals"
)

type deps struct {
	secret   []byte
	users    auth.UserStore
	goals    goals.Store
	entries  entries.Store
	analyzer ai.Analyzer
	events   analytics.Execer
}

func newRouter(d deps) *http.ServeMux {
	mux := http.NewServeMux()
	mw := auth.New(d.secret)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// ----- AUTH -----
	mux.HandleFunc("POST /auth/google", auth.GoogleHandler(d.users, d.secret))
	mux.HandleFunc("POST /auth/logout", auth.LogoutHandler())
	mux.HandleFunc("GET /auth/me", mw.Wrap(auth.MeHandler(d.users)))
	mux.HandleFunc("DELETE /auth/me", mw.Wrap(auth.DeleteAccountHandler(d.users)))

	// ----- GOALS -----
	mux.HandleFunc("GET /goals", mw.Wrap(goals.ListHandler(d.goals)))
	mux.HandleFunc("POST /goals", mw.Wrap(goals.CreateHandler(d.goals, d.events)))
	mux.HandleFunc("DELETE /goals/{id}", mw.Wrap(goals.DeleteHandler(d.goals, d.events)))
	mux.HandleFunc("POST /goals/phrases", mw.Wrap(ai.PhrasesHandler(d.analyzer)))

	// ----- ANALYSIS -----
	mux.HandleFunc("POST /analyze", mw.Wrap(ai.AnalyzeHandler(d.analyzer, d.goals, d.events)))

	// ----- ENTRIES -----
	eh := &entries.Handlers{Entries: d.entries, Goals: d.goals, Events: d.events}
	mux.HandleFunc("GET /entries", mw.Wrap(eh.List))
	mux.HandleFunc("POST /entries", mw.Wrap(eh.Create))
	mux.HandleFunc("GET /entries/{id}", mw.Wrap(eh.Get))
	mux.HandleFunc("PATCH /entries/{id}", mw.Wrap(eh.ReplaceTasks))
	mux.HandleFunc("DELETE /entries/{id}", mw.Wrap(eh.Delete))
	mux.HandleFunc("PATCH /entries/{id}/tasks/{taskId}", mw.Wrap(eh.PatchTask))
	mux.HandleFunc("POST /score", mw.Wrap(eh.Score))

	// ----- ANALYTICS -----
	mux.HandleFunc("POST /events", mw.Wrap(analytics.ClientEventHandler(d.events)))

	return mux
}
