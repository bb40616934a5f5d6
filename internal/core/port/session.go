package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"joiner/internal/core/domain"
)

// SessionStore keeps server-side session state. Get returns
// domain.ErrRecordNotFound for unknown or expired sessions.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, id uuid.UUID) (domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TokenClaims struct {
	SessionID  uuid.UUID
	IdentityID uuid.UUID
	ExpiresAt  time.Time
}

type TokenIssuer interface {
	Issue(session domain.Session) (string, error)
	Parse(token string) (TokenClaims, error)
}
