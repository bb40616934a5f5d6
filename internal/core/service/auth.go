package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"joiner/internal/core/domain"
	"joiner/internal/core/model/request"
	"joiner/internal/core/port"
	"joiner/internal/core/util"
)

const DefaultSessionTTL = 3 * time.Hour

type AuthService struct {
	repo      port.IdentityRepository
	sessions  port.SessionStore
	tokens    port.TokenIssuer
	telemetry port.Telemetry
	ttl       time.Duration
	now       func() time.Time
}

func NewAuthService(repo port.IdentityRepository, sessions port.SessionStore, tokens port.TokenIssuer, ttl time.Duration, telemetry port.Telemetry) *AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &AuthService{
		repo:      repo,
		sessions:  sessions,
		tokens:    tokens,
		telemetry: telemetry,
		ttl:       ttl,
		now:       time.Now,
	}
}

func (as *AuthService) Register(ctx context.Context, req *request.SignUpRequest) (identity domain.Identity, err error) {
	ctx, done := observe(ctx, as.telemetry, "auth", "register", "")
	defer done(&err)

	exists, err := as.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		slog.Error("Auth#Register", "exists_by_email", err)
		return domain.Identity{}, fmt.Errorf("check identity email: %w", err)
	}
	if exists {
		return domain.Identity{}, domain.ErrDuplicateIdentity
	}

	hashed, err := util.HashPassword(req.Password)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("hash password: %w", err)
	}

	now := as.now()
	identity, err = as.repo.Create(ctx, domain.Identity{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrRecordConflict) {
		return domain.Identity{}, domain.ErrDuplicateIdentity
	}
	if err != nil {
		slog.Error("Auth#Register", "create", err)
		return domain.Identity{}, fmt.Errorf("create identity: %w", err)
	}

	as.telemetry.RecordBusinessEvent(ctx, "identity.registered", "identity", identity.ID.String(), nil)

	return identity, nil
}

func (as *AuthService) Login(ctx context.Context, req *request.LoginRequest) (result port.LoginResult, err error) {
	ctx, done := observe(ctx, as.telemetry, "auth", "login", "")
	defer done(&err)

	identity, err := as.repo.GetByEmail(ctx, req.Email)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return port.LoginResult{}, domain.ErrUnknownIdentity
	}
	if err != nil {
		slog.Error("Auth#Login", "get_by_email", err)
		return port.LoginResult{}, fmt.Errorf("get identity: %w", err)
	}

	if err := util.ComparePassword(req.Password, identity.PasswordHash); err != nil {
		return port.LoginResult{}, domain.ErrInvalidCredentials
	}

	now := as.now()
	session := domain.Session{
		ID:         uuid.New(),
		IdentityID: identity.ID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(as.ttl),
	}

	if err := as.sessions.Save(ctx, session); err != nil {
		slog.Error("Auth#Login", "save_session", err)
		return port.LoginResult{}, fmt.Errorf("save session: %w", err)
	}

	token, err := as.tokens.Issue(session)
	if err != nil {
		return port.LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	return port.LoginResult{Identity: identity, Session: session, Token: token}, nil
}

// Logout drops the session behind token. It never fails: a missing or
// unreadable token is a no-op.
func (as *AuthService) Logout(ctx context.Context, token string) {
	ctx, done := observe(ctx, as.telemetry, "auth", "logout", "")
	defer done(nil)

	if token == "" {
		return
	}

	claims, err := as.tokens.Parse(token)
	if err != nil {
		slog.Debug("Auth#Logout", "parse_token", err)
		return
	}

	if err := as.sessions.Delete(ctx, claims.SessionID); err != nil {
		slog.Error("Auth#Logout", "delete_session", err)
	}
}

func (as *AuthService) CurrentPrincipal(ctx context.Context, token string) (domain.Principal, error) {
	if token == "" {
		return domain.Principal{}, domain.ErrUnauthenticated
	}

	claims, err := as.tokens.Parse(token)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	session, err := as.sessions.Get(ctx, claims.SessionID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.Principal{}, fmt.Errorf("%w: session not found", domain.ErrUnauthenticated)
	}
	if err != nil {
		slog.Error("Auth#CurrentPrincipal", "get_session", err)
		return domain.Principal{}, fmt.Errorf("get session: %w", err)
	}

	if session.IdentityID != claims.IdentityID || session.IsExpired(as.now()) {
		return domain.Principal{}, fmt.Errorf("%w: session mismatch", domain.ErrUnauthenticated)
	}

	identity, err := as.repo.GetByUUID(ctx, session.IdentityID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.Principal{}, fmt.Errorf("%w: identity not found", domain.ErrUnauthenticated)
	}
	if err != nil {
		return domain.Principal{}, fmt.Errorf("get identity: %w", err)
	}

	return identity.Principal(), nil
}

// EnsureAdmin creates the root administrator when it does not exist yet.
func (as *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	exists, err := as.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check admin email: %w", err)
	}
	if exists {
		return nil
	}

	hashed, err := util.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := as.now()
	admin, err := as.repo.Create(ctx, domain.Identity{
		ID:           uuid.New(),
		FirstName:    "Root",
		LastName:     "Admin",
		Email:        email,
		PasswordHash: hashed,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	slog.Info("Auth#EnsureAdmin", "admin_id", admin.ID, "email", admin.Email)
	return nil
}
