package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/paperdesk/paperdesk/internal/auth"
	"github.com/paperdesk/paperdesk/internal/metrics"
	"github.com/paperdesk/paperdesk/internal/model"
	"github.com/paperdesk/paperdesk/internal/repository"
)

// Auth attempt kinds used as metric labels.
const (
	authKindRegister = "register"
	authKindLogin    = "login"
	authKindAPIKey   = "api_key"
)

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  *model.User
}

// AuthService handles registration, login and provider key updates.
type AuthService struct {
	users   UserStore
	tokens  *auth.TokenIssuer
	metrics metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens *auth.TokenIssuer, recorder metrics.Recorder, logger *slog.Logger) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:   users,
		tokens:  tokens,
		metrics: recorder,
		logger:  logger,
		now:     time.Now,
	}
}

// Register creates an account and returns a token for it.
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		s.metrics.IncAuthAttempt(authKindRegister, metrics.StatusRejected)
		return nil, ErrEmailTaken
	case !errors.Is(err, repository.ErrUserNotFound):
		s.metrics.IncAuthAttempt(authKindRegister, metrics.StatusFailure)
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.metrics.IncAuthAttempt(authKindRegister, metrics.StatusFailure)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		// A concurrent registration can still win the unique index.
		if errors.Is(err, repository.ErrEmailExists) {
			s.metrics.IncAuthAttempt(authKindRegister, metrics.StatusRejected)
			return nil, ErrEmailTaken
		}
		s.metrics.IncAuthAttempt(authKindRegister, metrics.StatusFailure)
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.metrics.IncAuthAttempt(authKindRegister, metrics.StatusFailure)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncAuthAttempt(authKindRegister, metrics.StatusSuccess)
	s.logger.Info("user_registered", "user_id", user.ID)

	return &AuthResult{Token: token, User: user}, nil
}

// Login checks credentials and returns a fresh token with the stored account.
// Unknown email and wrong password yield the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			auth.BurnVerification(password)
			s.metrics.IncAuthAttempt(authKindLogin, metrics.StatusRejected)
			return nil, ErrInvalidCredentials
		}
		s.metrics.IncAuthAttempt(authKindLogin, metrics.StatusFailure)
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		s.metrics.IncAuthAttempt(authKindLogin, metrics.StatusFailure)
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.metrics.IncAuthAttempt(authKindLogin, metrics.StatusRejected)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.metrics.IncAuthAttempt(authKindLogin, metrics.StatusFailure)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncAuthAttempt(authKindLogin, metrics.StatusSuccess)

	return &AuthResult{Token: token, User: user}, nil
}

// SetAPIKey overwrites the caller's provider key. An empty key clears it.
func (s *AuthService) SetAPIKey(ctx context.Context, userID, key string) error {
	if err := s.users.UpdateExternalAPIKey(ctx, userID, key); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncAuthAttempt(authKindAPIKey, metrics.StatusRejected)
			return ErrUnauthorized
		}
		s.metrics.IncAuthAttempt(authKindAPIKey, metrics.StatusFailure)
		return fmt.Errorf("update api key: %w", err)
	}

	s.metrics.IncAuthAttempt(authKindAPIKey, metrics.StatusSuccess)
	s.logger.Info("api_key_updated", "user_id", userID, "cleared", key == "")

	return nil
}
