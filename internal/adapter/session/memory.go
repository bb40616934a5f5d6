package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"joiner/internal/core/domain"
	"joiner/internal/core/port"
)

// MemoryStore keeps sessions in process. Used when no Redis URL is
// configured and in tests.
type MemoryStore struct {
	cache *cache.Cache
	now   func() time.Time
}

func NewMemoryStore() port.SessionStore {
	return &MemoryStore{
		cache: cache.New(cache.NoExpiration, 10*time.Minute),
		now:   time.Now,
	}
}

func (ms *MemoryStore) Save(ctx context.Context, session domain.Session) error {
	ttl := session.ExpiresAt.Sub(ms.now())
	if ttl <= 0 {
		return nil
	}

	ms.cache.Set(session.ID.String(), session, ttl)
	return nil
}

func (ms *MemoryStore) Get(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	value, found := ms.cache.Get(id.String())
	if !found {
		return domain.Session{}, domain.ErrRecordNotFound
	}

	session, ok := value.(domain.Session)
	if !ok || session.IsExpired(ms.now()) {
		return domain.Session{}, domain.ErrRecordNotFound
	}

	return session, nil
}

func (ms *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	ms.cache.Delete(id.String())
	return nil
}
