package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouterPublicAndProtected(t *testing.T) {
	mux := newRouter(deps{secret: []byte("test-secret")})

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/goals", http.StatusUnauthorized},
		{http.MethodPost, "/analyze", http.StatusUnauthorized},
		{http.MethodGet, "/entries", http.StatusUnauthorized},
		{http.MethodPatch, "/entries/abc/tasks/t1", http.StatusUnauthorized},
		{http.MethodPost, "/score", http.StatusUnauthorized},
		{http.MethodPut, "/goals", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.want {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
		}
	}
}
