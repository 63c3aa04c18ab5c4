package auth

import (
	"context"
	"net/http"
	"strings"

	"goals-tracker-backend/internal/analytics"
	"goals-tracker-backend/internal/respond"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

type Middleware struct {
	secret []byte
}

func New(secret []byte) Middleware {
	return Middleware{secret: secret}
}

func (m Middleware) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			respond.Error(w, http.StatusUnauthorized, "missing token")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		userID, err := ParseToken(m.secret, tokenString)
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := WithUserID(r.Context(), userID)

		// analytics reads the user from its own key
		ctx = analytics.WithUserID(ctx, userID)

		next(w, r.WithContext(ctx))
	}
}

func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (int, bool) {
	v := ctx.Value(userIDKey)
	if v == nil {
		return 0, false
	}
	uid, ok := v.(int)
	return uid, ok
}
