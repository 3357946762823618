// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/paperdesk/paperdesk/internal/handler/dto"
	"github.com/paperdesk/paperdesk/internal/service"
)

// Error messages shown to clients.
const (
	msgInvalidBody        = "Invalid request body"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgAPIKeyRequired     = "External API key required"
	msgInvalidToken       = "Invalid token"
	msgSearchFailed       = "Search failed"
	msgChatFailed         = "Chat failed"
	msgServerError        = "Server error"
)

// Handler serves the informational endpoints.
type Handler struct {
	version string
}

// New creates a new Handler instance.
func New(version string) *Handler {
	return &Handler{version: version}
}

// Hello describes the service.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message": "Paperdesk research assistant API",
		"version": h.version,
	}
	writeJSON(w, http.StatusOK, response)
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Default().Warn("response_encode_failed", "error", err)
	}
}

// writeError writes the {"error": message} body.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message})
}

// decodeAndValidate reads a JSON body into dst and runs tag validation.
// On failure it writes a 400 and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	if err := dto.Validate(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleServiceError maps service errors to responses. fallback is the
// message used for unexpected errors, which are logged.
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, msgInvalidBody)
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, msgUserExists)
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, msgInvalidCredentials)
	case errors.Is(err, service.ErrAPIKeyRequired):
		writeError(w, http.StatusBadRequest, msgAPIKeyRequired)
	case errors.Is(err, service.ErrUnauthorized):
		// Valid signature but the account is gone.
		writeError(w, http.StatusForbidden, msgInvalidToken)
	case errors.Is(err, service.ErrSearchFailed):
		logger.Error("search_failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgSearchFailed)
	case errors.Is(err, service.ErrChatFailed):
		logger.Error("chat_failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgChatFailed)
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
