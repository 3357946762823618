package handler

import (
	"log/slog"
	"net/http"

	"github.com/paperdesk/paperdesk/internal/auth"
	"github.com/paperdesk/paperdesk/internal/handler/dto"
	"github.com/paperdesk/paperdesk/internal/service"
)

// ResearchHandler serves search, history and chat for authenticated users.
type ResearchHandler struct {
	search  *service.SearchService
	history *service.HistoryService
	chat    *service.ChatService
	logger  *slog.Logger
}

// NewResearchHandler creates a new ResearchHandler.
func NewResearchHandler(search *service.SearchService, history *service.HistoryService, chat *service.ChatService, logger *slog.Logger) *ResearchHandler {
	return &ResearchHandler{
		search:  search,
		history: history,
		chat:    chat,
		logger:  logger,
	}
}

// Search handles POST /api/search.
func (h *ResearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	userID := auth.MustUserIDFromContext(r.Context())
	papers, err := h.search.Search(r.Context(), userID, req.Query)
	if err != nil {
		handleServiceError(w, h.logger, err, msgSearchFailed)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToSearchResponse(papers))
}

// Queries handles GET /api/queries.
func (h *ResearchHandler) Queries(w http.ResponseWriter, r *http.Request) {
	userID := auth.MustUserIDFromContext(r.Context())

	records, err := h.history.Recent(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// Chat handles POST /api/chat.
func (h *ResearchHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	userID := auth.MustUserIDFromContext(r.Context())
	reply, err := h.chat.Chat(r.Context(), userID, req.Message)
	if err != nil {
		handleServiceError(w, h.logger, err, msgChatFailed)
		return
	}

	writeJSON(w, http.StatusOK, dto.ChatResponse{Response: reply})
}
