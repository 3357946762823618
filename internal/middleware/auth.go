package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/paperdesk/paperdesk/internal/auth"
)

// Messages returned by Auth. Missing credentials are 401, rejected ones 403.
const (
	msgTokenRequired = "Access token required"
	msgTokenInvalid  = "Invalid token"
)

// TokenVerifier validates a bearer token and returns the user id it names.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger   *slog.Logger
	Verifier TokenVerifier
}

// Auth returns a middleware that requires a valid bearer token and stores the
// authenticated user id in the request context.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := extractBearerToken(r)
			userID := ""
			if err == nil {
				userID, err = cfg.Verifier.Verify(token)
			}
			if err != nil {
				reason := "invalid_token"
				status, msg := http.StatusForbidden, msgTokenInvalid
				if errors.Is(err, auth.ErrMissingToken) {
					reason = "missing_token"
					status, msg = http.StatusUnauthorized, msgTokenRequired
				}
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", reason),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeError(w, status, msg)
				return
			}

			noteUser(r.Context(), userID)
			ctx := auth.ContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken returns the credential from "Authorization: Bearer <token>".
// A header with any other shape is rejected as invalid, not missing.
func extractBearerToken(r *http.Request) (string, error) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	switch {
	case len(parts) < 2:
		return "", auth.ErrMissingToken
	case len(parts) > 2 || !strings.EqualFold(parts[0], "Bearer"):
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}
