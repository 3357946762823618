package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/paperdesk/paperdesk/internal/model"
	"github.com/paperdesk/paperdesk/internal/repository"
)

// MemoryStore is an in-memory stand-in for the Postgres repository. It
// returns the same sentinel errors as repository.Repository.
type MemoryStore struct {
	mu      sync.Mutex
	users   map[string]*model.User
	queries []*model.QueryRecord

	// Err, when set, is returned by every method.
	Err error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]*model.User)}
}

// CreateUser stores a copy of user.
func (m *MemoryStore) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}

	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	u := *user
	m.users[u.ID] = &u
	return nil
}

// GetUserByID returns a copy of the stored user.
func (m *MemoryStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// GetUserByEmail returns a copy of the stored user.
func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// UpdateExternalAPIKey overwrites the stored key.
func (m *MemoryStore) UpdateExternalAPIKey(_ context.Context, userID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}

	u, ok := m.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.ExternalAPIKey = key
	return nil
}

// CreateQueryRecord appends a copy of rec. The owner must exist.
func (m *MemoryStore) CreateQueryRecord(_ context.Context, rec *model.QueryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}

	if _, ok := m.users[rec.UserID]; !ok {
		return errors.New("query record references unknown user")
	}
	if len(rec.Results) > model.MaxResultsPerQuery {
		return errors.New("too many results")
	}
	r := *rec
	r.Results = append([]model.Result{}, rec.Results...)
	m.queries = append(m.queries, &r)
	return nil
}

// ListRecentQueryRecords returns up to limit records for userID ordered by
// created_at then id, both descending.
func (m *MemoryStore) ListRecentQueryRecords(_ context.Context, userID string, limit int) ([]*model.QueryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	out := make([]*model.QueryRecord, 0, limit)
	for _, q := range m.queries {
		if q.UserID == userID {
			cp := *q
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// QueryRecords returns every stored record in insertion order.
func (m *MemoryStore) QueryRecords() []*model.QueryRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*model.QueryRecord(nil), m.queries...)
}

// PutUser stores user directly, bypassing uniqueness checks.
func (m *MemoryStore) PutUser(user *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := *user
	m.users[u.ID] = &u
}
