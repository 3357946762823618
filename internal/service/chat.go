package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/paperdesk/paperdesk/internal/llm"
	"github.com/paperdesk/paperdesk/internal/metrics"
)

// ChatSystemPrompt frames every chat exchange.
const ChatSystemPrompt = "You are a helpful research assistant. Help users with research-related questions, paper analysis, and academic inquiries."

// ChatService forwards a single message to the language model.
type ChatService struct {
	users     UserStore
	completer Completer
	metrics   metrics.Recorder
	logger    *slog.Logger
}

// NewChatService creates a new ChatService.
func NewChatService(users UserStore, completer Completer, recorder metrics.Recorder, logger *slog.Logger) *ChatService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatService{
		users:     users,
		completer: completer,
		metrics:   recorder,
		logger:    logger,
	}
}

// Chat sends message with the research-assistant system prompt and returns
// the reply verbatim. Nothing is persisted.
func (s *ChatService) Chat(ctx context.Context, userID, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrInvalidInput
	}

	user, err := loadUserWithKey(ctx, s.users, userID)
	if err != nil {
		return "", err
	}

	start := time.Now()
	reply, err := s.completer.Complete(ctx, user.ExternalAPIKey, []llm.Message{
		{Role: llm.RoleSystem, Content: ChatSystemPrompt},
		{Role: llm.RoleUser, Content: message},
	})
	s.metrics.ObserveUpstreamDuration(metrics.UpstreamLLM, time.Since(start))
	if err != nil {
		s.metrics.IncChat(metrics.StatusFailure)
		return "", fmt.Errorf("%w: %w", ErrChatFailed, err)
	}

	s.metrics.IncChat(metrics.StatusSuccess)

	return reply, nil
}
