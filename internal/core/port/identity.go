package port

import (
	"context"

	"github.com/google/uuid"

	"joiner/internal/core/domain"
	"joiner/internal/core/model/request"
)

type IdentityRepository interface {
	GetByUUID(ctx context.Context, id uuid.UUID) (domain.Identity, error)
	GetByEmail(ctx context.Context, email string) (domain.Identity, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, identity domain.Identity) (domain.Identity, error)
}

type LoginResult struct {
	Identity domain.Identity
	Session  domain.Session
	Token    string
}

type AuthService interface {
	Register(ctx context.Context, req *request.SignUpRequest) (domain.Identity, error)
	Login(ctx context.Context, req *request.LoginRequest) (LoginResult, error)
	Logout(ctx context.Context, token string)
	CurrentPrincipal(ctx context.Context, token string) (domain.Principal, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}
