package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"goals-tracker-backend/internal/analytics"
)

var secret = []byte("test-secret")

type fakeUsers struct {
	byGoogle map[string]User
	nextID   int
	deleted  []int
	failWith error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byGoogle: map[string]User{}, nextID: 1}
}

func (f *fakeUsers) Upsert(_ context.Context, googleID, email, name string) (User, error) {
	if f.failWith != nil {
		return User{}, f.failWith
	}
	u, ok := f.byGoogle[googleID]
	if !ok {
		u = User{ID: f.nextID, GoogleID: googleID}
		f.nextID++
	}
	u.Email, u.DisplayName = email, name
	f.byGoogle[googleID] = u
	return u, nil
}

func (f *fakeUsers) Get(_ context.Context, id int) (User, error) {
	for _, u := range f.byGoogle {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (f *fakeUsers) Delete(_ context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken(secret, 42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	uid, err := ParseToken(secret, tok)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if uid != 42 {
		t.Errorf("uid = %d, want 42", uid)
	}
}

func TestParseTokenRejects(t *testing.T) {
	good, _ := GenerateToken(secret, 7)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	expiredStr, _ := expired.SignedString(secret)

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	noUserStr, _ := noUser.SignedString(secret)

	tests := map[string]struct {
		secret []byte
		token  string
	}{
		"wrong secret":    {[]byte("other"), good},
		"garbage":         {secret, "not.a.token"},
		"expired":         {secret, expiredStr},
		"missing user_id": {secret, noUserStr},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseToken(tt.secret, tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	var gotUID, gotAnalyticsUID int
	next := func(w http.ResponseWriter, r *http.Request) {
		gotUID, _ = UserIDFromContext(r.Context())
		gotAnalyticsUID, _ = analytics.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
	h := New(secret).Wrap(next)

	tok, _ := GenerateToken(secret, 9)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + tok, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/goals", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	if gotUID != 9 || gotAnalyticsUID != 9 {
		t.Errorf("context user = %d/%d, want 9", gotUID, gotAnalyticsUID)
	}
}

func TestGoogleHandler(t *testing.T) {
	users := newFakeUsers()
	h := GoogleHandler(users, secret)

	body := `{"googleId":"g-123","email":"a@b.c","displayName":"A"}`
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/auth/google", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		User  User   `json:"user"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.User.ID != 1 || resp.User.Email != "a@b.c" {
		t.Errorf("user = %+v", resp.User)
	}
	uid, err := ParseToken(secret, resp.Token)
	if err != nil || uid != 1 {
		t.Errorf("token uid = %d, err = %v", uid, err)
	}

	// same google id, new email: same account
	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/auth/google", strings.NewReader(`{"googleId":"g-123","email":"new@b.c"}`)))
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.User.ID != 1 || resp.User.Email != "new@b.c" {
		t.Errorf("upsert user = %+v", resp.User)
	}
}

func TestGoogleHandlerErrors(t *testing.T) {
	users := newFakeUsers()

	rec := httptest.NewRecorder()
	GoogleHandler(users, secret)(rec, httptest.NewRequest(http.MethodPost, "/auth/google", strings.NewReader(`{"email":"x"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing google id status = %d", rec.Code)
	}

	users.failWith = errors.New("db down")
	rec = httptest.NewRecorder()
	GoogleHandler(users, secret)(rec, httptest.NewRequest(http.MethodPost, "/auth/google", strings.NewReader(`{"googleId":"g"}`)))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("store failure status = %d", rec.Code)
	}
}

func TestMeAndDeleteAccount(t *testing.T) {
	users := newFakeUsers()
	u, _ := users.Upsert(context.Background(), "g-1", "me@x", "Me")

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(WithUserID(req.Context(), u.ID))

	rec := httptest.NewRecorder()
	MeHandler(users)(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "me@x") {
		t.Errorf("me = %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	DeleteAccountHandler(users)(rec, req)
	if rec.Code != http.StatusOK || len(users.deleted) != 1 || users.deleted[0] != u.ID {
		t.Errorf("delete = %d, deleted %v", rec.Code, users.deleted)
	}

	rec = httptest.NewRecorder()
	MeHandler(users)(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous me status = %d", rec.Code)
	}
}
