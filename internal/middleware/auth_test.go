package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paperdesk/paperdesk/internal/auth"
)

type staticVerifier struct {
	token  string
	userID string
}

func (v staticVerifier) Verify(token string) (string, error) {
	if token == "" {
		return "", auth.ErrMissingToken
	}
	if token != v.token {
		return "", auth.ErrInvalidToken
	}
	return v.userID, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuth(t *testing.T) {
	t.Parallel()

	issuer, err := auth.NewTokenIssuer("middleware-secret")
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	valid, err := issuer.Issue("01HUSER")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	other, _ := auth.NewTokenIssuer("other-secret")
	foreign, _ := other.Issue("01HUSER")

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
		wantUser   string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, "", "01HUSER"},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, "", "01HUSER"},
		{"no header", "", http.StatusUnauthorized, "Access token required", ""},
		{"scheme only", "Bearer", http.StatusUnauthorized, "Access token required", ""},
		{"garbage token", "Bearer not.a.jwt", http.StatusForbidden, "Invalid token", ""},
		{"foreign signature", "Bearer " + foreign, http.StatusForbidden, "Invalid token", ""},
		{"wrong scheme", "Basic " + valid, http.StatusForbidden, "Invalid token", ""},
		{"extra fields", "Bearer " + valid + " extra", http.StatusForbidden, "Invalid token", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotUser string
			called := false
			handler := Auth(AuthConfig{Logger: discardLogger(), Verifier: issuer})(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					called = true
					gotUser = auth.UserIDFromContext(r.Context())
					w.WriteHeader(http.StatusOK)
				}),
			)

			req := httptest.NewRequest(http.MethodGet, "/api/queries", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantError == "" {
				if !called || gotUser != tt.wantUser {
					t.Errorf("handler called=%v user=%q, want user %q", called, gotUser, tt.wantUser)
				}
				return
			}

			if called {
				t.Error("handler must not run for rejected requests")
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["error"] != tt.wantError {
				t.Errorf("error = %q, want %q", body["error"], tt.wantError)
			}
		})
	}
}
