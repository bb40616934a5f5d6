package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joiner/internal/core/domain"
)

func newSession(ttl time.Duration) domain.Session {
	now := time.Now()
	return domain.Session{ID: uuid.New(), IdentityID: uuid.New(), CreatedAt: now, ExpiresAt: now.Add(ttl)}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("should save, get and delete sessions", func(t *testing.T) {
		store := NewMemoryStore()
		session := newSession(time.Hour)

		require.NoError(t, store.Save(ctx, session))

		found, err := store.Get(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, session.IdentityID, found.IdentityID)

		require.NoError(t, store.Delete(ctx, session.ID))

		_, err = store.Get(ctx, session.ID)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("should not keep already expired sessions", func(t *testing.T) {
		store := NewMemoryStore()
		session := newSession(-time.Second)

		require.NoError(t, store.Save(ctx, session))

		_, err := store.Get(ctx, session.ID)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("should treat sessions past expiry as missing", func(t *testing.T) {
		now := time.Now()
		store := NewMemoryStore().(*MemoryStore)
		store.now = func() time.Time { return now }
		session := newSession(time.Minute)
		require.NoError(t, store.Save(ctx, session))

		store.now = func() time.Time { return now.Add(2 * time.Minute) }

		_, err := store.Get(ctx, session.ID)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("should ignore deleting unknown sessions", func(t *testing.T) {
		assert.NoError(t, NewMemoryStore().Delete(ctx, uuid.New()))
	})
}
