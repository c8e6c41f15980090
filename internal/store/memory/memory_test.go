package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub-app/backend/internal/models"
	"github.com/eventhub-app/backend/internal/store"
	"github.com/eventhub-app/backend/internal/store/memory"
)

func newUser(username, email string) *models.User {
	now := time.Now()
	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	users := st.Users()

	alice := newUser("alice", "alice@example.com")
	require.NoError(t, users.Create(ctx, alice))

	got, err := users.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	got, err = users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	got, err = users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = users.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = users.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	list, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUserStoreConflicts(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	users := st.Users()

	require.NoError(t, users.Create(ctx, newUser("alice", "alice@example.com")))

	err := users.Create(ctx, newUser("alice", "other@example.com"))
	assert.ErrorIs(t, err, store.ErrConflict)

	err = users.Create(ctx, newUser("other", "alice@example.com"))
	assert.ErrorIs(t, err, store.ErrConflict)

	bob := newUser("bob", "bob@example.com")
	require.NoError(t, users.Create(ctx, bob))

	// Updating bob onto alice's username must hit the uniqueness check.
	bob.Username = "alice"
	err = users.Update(ctx, bob)
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestUserStoreUpdateDelete(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	users := st.Users()

	alice := newUser("alice", "alice@example.com")
	require.NoError(t, users.Create(ctx, alice))

	alice.Username = "alice_v2"
	require.NoError(t, users.Update(ctx, alice))

	got, err := users.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice_v2", got.Username)

	ghost := newUser("ghost", "ghost@example.com")
	assert.ErrorIs(t, users.Update(ctx, ghost), store.ErrNotFound)

	require.NoError(t, users.Delete(ctx, alice.ID))
	assert.ErrorIs(t, users.Delete(ctx, alice.ID), store.ErrNotFound)
}

func TestEventStore(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	events := st.Events()
	owner := uuid.New()

	e := &models.Event{
		ID:          uuid.New(),
		Title:       "GopherCon",
		Description: "Annual Go conference",
		EventDate:   "2026-11-12",
		UserID:      owner,
	}
	require.NoError(t, events.Create(ctx, e))

	got, err := events.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "GopherCon", got.Title)

	list, err := events.ListByUser(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = events.ListByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, list)

	e.EventDate = "2026-11-13"
	require.NoError(t, events.Update(ctx, e))
	got, err = events.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-11-13", got.EventDate)

	require.NoError(t, events.Delete(ctx, e.ID))
	assert.ErrorIs(t, events.Delete(ctx, e.ID), store.ErrNotFound)
	_, err = events.Get(ctx, e.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTokenStore(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	tokens := st.Tokens()

	blocked, err := tokens.IsBlocked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, blocked)

	require.NoError(t, tokens.Block(ctx, "jti-1"))

	blocked, err = tokens.IsBlocked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = tokens.IsBlocked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, blocked)
}
