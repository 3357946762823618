package handler

import (
	"log/slog"
	"net/http"

	"github.com/paperdesk/paperdesk/internal/auth"
	"github.com/paperdesk/paperdesk/internal/handler/dto"
	"github.com/paperdesk/paperdesk/internal/service"
)

// AuthHandler handles account endpoints.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, h.logger, err, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRegisterResponse(res.Token, res.User))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, h.logger, err, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToLoginResponse(res.Token, res.User))
}

// SetAPIKey handles PUT /api/user/api-key.
func (h *AuthHandler) SetAPIKey(w http.ResponseWriter, r *http.Request) {
	var req dto.APIKeyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	userID := auth.MustUserIDFromContext(r.Context())
	if err := h.svc.SetAPIKey(r.Context(), userID, req.ExternalAPIKey); err != nil {
		handleServiceError(w, h.logger, err, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "API key updated successfully"})
}
