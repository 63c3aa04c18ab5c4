package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"goals-tracker-backend/internal/respond"
)

// GoogleHandler signs a user in with the identity the client got from Google,
// creating the account on first use.
func GoogleHandler(users UserStore, secret []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			GoogleID    string `json:"googleId"`
			Email       string `json:"email"`
			DisplayName string `json:"displayName"`
		}
		if err := respond.Decode(r, &body); err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if strings.TrimSpace(body.GoogleID) == "" {
			respond.Error(w, http.StatusBadRequest, "Google ID is required")
			return
		}

		u, err := users.Upsert(r.Context(), strings.TrimSpace(body.GoogleID), body.Email, body.DisplayName)
		if err != nil {
			log.Printf("[WARN] auth upsert failed: %v", err)
			respond.Error(w, http.StatusInternalServerError, "Authentication failed")
			return
		}

		token, err := GenerateToken(secret, u.ID)
		if err != nil {
			respond.Error(w, http.StatusInternalServerError, "Authentication failed")
			return
		}

		log.Printf("[INFO] user authenticated user_id=%d", u.ID)
		respond.OK(w, map[string]any{
			"user":  u,
			"token": token,
		})
	}
}

func MeHandler(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := UserIDFromContext(r.Context())
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		u, err := users.Get(r.Context(), uid)
		if errors.Is(err, ErrUserNotFound) {
			respond.Error(w, http.StatusNotFound, "user not found")
			return
		}
		if err != nil {
			respond.Error(w, http.StatusInternalServerError, "db error")
			return
		}

		respond.OK(w, map[string]any{"user": u})
	}
}
