// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"slices"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/paperdesk/paperdesk/internal/auth"
	"github.com/paperdesk/paperdesk/internal/model"
	"github.com/paperdesk/paperdesk/migrations"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 731001

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema drops every table in reverse migration order and recreates
// them from the embedded migrations.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	versions, err := migrations.Versions()
	if err != nil {
		return err
	}

	reversed := slices.Clone(versions)
	slices.Reverse(reversed)
	for _, v := range reversed {
		downSQL, err := migrations.DownSQL(v)
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, downSQL); err != nil {
			return fmt.Errorf("apply down migration %s: %w", v, err)
		}
	}

	for _, v := range versions {
		upSQL, err := migrations.UpSQL(v)
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, upSQL); err != nil {
			return fmt.Errorf("apply up migration %s: %w", v, err)
		}
	}

	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a user with a real password hash for password.
func NewTestUser(t testing.TB, email, password string) *model.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &model.User{
		ID:           ulid.Make().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
}

// NewTestQueryRecord creates a record for userID with one result.
func NewTestQueryRecord(t testing.TB, userID, query string, createdAt time.Time) *model.QueryRecord {
	t.Helper()
	return &model.QueryRecord{
		ID:     ulid.Make().String(),
		UserID: userID,
		Query:  query,
		Results: []model.Result{{
			Title:         "Result for " + query,
			Authors:       []string{"A. Author"},
			Summary:       "A summary.",
			URL:           "http://arxiv.org/abs/0000.00000v1",
			PublishedDate: createdAt.Format(time.RFC3339),
		}},
		CreatedAt: createdAt,
	}
}

// UniqueEmail generates a unique email address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}
