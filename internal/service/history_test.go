package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperdesk/paperdesk/internal/testutil"
)

func TestHistoryService_Recent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := testutil.NewMemoryStore()
	alice := testutil.NewTestUser(t, "alice@example.com", "pw")
	bob := testutil.NewTestUser(t, "bob@example.com", "pw")
	require.NoError(t, store.CreateUser(ctx, alice))
	require.NoError(t, store.CreateUser(ctx, bob))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		rec := testutil.NewTestQueryRecord(t, alice.ID, fmt.Sprintf("q%02d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.CreateQueryRecord(ctx, rec))
	}
	require.NoError(t, store.CreateQueryRecord(ctx, testutil.NewTestQueryRecord(t, bob.ID, "bob", base.Add(time.Hour))))

	svc := NewHistoryService(store)

	got, err := svc.Recent(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, got, HistoryLimit)
	assert.Equal(t, "q11", got[0].Query)
	assert.Equal(t, "q02", got[9].Query)
	for _, r := range got {
		assert.Equal(t, alice.ID, r.UserID)
	}

	none, err := svc.Recent(ctx, "no-such-user")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestHistoryService_Recent_StoreError(t *testing.T) {
	t.Parallel()

	svc := NewHistoryService(&failingQueries{err: errors.New("timeout")})
	_, err := svc.Recent(context.Background(), "u")
	assert.Error(t, err)
}
