package auth

import (
	"log"
	"net/http"

	"goals-tracker-backend/internal/respond"
)

func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// tokens are stateless; the client drops its copy
		respond.OK(w, map[string]any{"ok": true})
	}
}

func DeleteAccountHandler(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := UserIDFromContext(r.Context())
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if err := users.Delete(r.Context(), uid); err != nil {
			log.Printf("[WARN] delete account user_id=%d: %v", uid, err)
			respond.Error(w, http.StatusInternalServerError, "delete account failed")
			return
		}

		respond.OK(w, map[string]any{"ok": true})
	}
}
