package service

import (
	"context"

	"github.com/paperdesk/paperdesk/internal/llm"
	"github.com/paperdesk/paperdesk/internal/model"
)

// UserStore persists accounts. Implementations return
// repository.ErrUserNotFound and repository.ErrEmailExists.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateExternalAPIKey(ctx context.Context, userID, key string) error
}

// QueryStore persists search history.
type QueryStore interface {
	CreateQueryRecord(ctx context.Context, rec *model.QueryRecord) error
	ListRecentQueryRecords(ctx context.Context, userID string, limit int) ([]*model.QueryRecord, error)
}

// PaperIndex searches an external paper catalogue.
type PaperIndex interface {
	Search(ctx context.Context, query string, maxResults int) ([]model.Paper, error)
	Category() string
}

// Completer sends chat completions on behalf of a user.
type Completer interface {
	Complete(ctx context.Context, apiKey string, messages []llm.Message) (string, error)
}

// PaperCache stores raw search hits. Optional.
type PaperCache interface {
	GetPapers(ctx context.Context, category, query string) ([]model.Paper, bool)
	SetPapers(ctx context.Context, category, query string, papers []model.Paper) error
}
