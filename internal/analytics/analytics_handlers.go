package analytics

import (
	"net/http"
	"strings"

	"goals-tracker-backend/internal/respond"
)

// clientEvents are the screen-level events the app may report directly.
var clientEvents = map[string]bool{
	"app_opened":      true,
	"capture_started": true,
	"review_opened":   true,
	"results_viewed":  true,
	"history_viewed":  true,
}

// ClientEventHandler records one whitelisted client event.
func ClientEventHandler(db Execer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := UserIDFromContext(r.Context())
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var body struct {
			Event      string         `json:"event"`
			Properties map[string]any `json:"properties"`
		}
		if err := respond.Decode(r, &body); err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		name := strings.TrimSpace(body.Event)
		if !clientEvents[name] {
			respond.Error(w, http.StatusBadRequest, "unknown event")
			return
		}
		if body.Properties == nil {
			body.Properties = map[string]any{}
		}

		Track(r, db, uid, name, body.Properties)

		respond.OK(w, map[string]any{"ok": true})
	}
}
