package service_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"joiner/internal/adapter/database/repository"
	"joiner/internal/adapter/session"
	"joiner/internal/core/domain"
	"joiner/internal/core/model/request"
	"joiner/internal/core/port"
	"joiner/internal/core/service"
	"joiner/internal/core/telemetry"
	"joiner/pkg/auth"
	. "joiner/pkg/test"
)

type AuthServiceTestSuite struct {
	suite.Suite
	svc      port.AuthService
	repo     port.IdentityRepository
	sessions port.SessionStore
}

func (s *AuthServiceTestSuite) SetupTest() {
	db := InitTestDB()

	s.repo = repository.NewIdentityRepository(db)
	s.sessions = session.NewMemoryStore()
	s.svc = service.NewAuthService(s.repo, s.sessions, auth.NewJWT("test-secret"), time.Hour, telemetry.NewNoOpProbe())
}

func TestAuthServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthServiceTestSuite))
}

func signUp(email string) *request.SignUpRequest {
	return &request.SignUpRequest{
		FirstName: "Alice",
		LastName:  "Liddell",
		Email:     email,
		Password:  "wonderland-2024",
	}
}

func (s *AuthServiceTestSuite) TestRegister_Success() {
	identity, err := s.svc.Register(context.Background(), signUp("alice@example.com"))

	require.NoError(s.T(), err)
	Expect(identity.Email).To(Equal("alice@example.com"))
	Expect(identity.Role).To(Equal(domain.RoleUser))
	Expect(identity.PasswordHash).NotTo(Equal("wonderland-2024"))
	Expect(identity.PasswordHash).NotTo(BeEmpty())
}

func (s *AuthServiceTestSuite) TestRegister_DuplicateIdentity() {
	ctx := context.Background()

	_, err := s.svc.Register(ctx, signUp("alice@example.com"))
	require.NoError(s.T(), err)

	_, err = s.svc.Register(ctx, signUp("ALICE@example.com"))
	assert.ErrorIs(s.T(), err, domain.ErrDuplicateIdentity)
}

func (s *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	registered, _ := s.svc.Register(ctx, signUp("alice@example.com"))

	result, err := s.svc.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "wonderland-2024"})

	require.NoError(s.T(), err)
	assert.Equal(s.T(), registered.ID, result.Identity.ID)
	assert.NotEmpty(s.T(), result.Token)
	assert.Equal(s.T(), registered.ID, result.Session.IdentityID)

	stored, err := s.sessions.Get(ctx, result.Session.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), registered.ID, stored.IdentityID)
}

func (s *AuthServiceTestSuite) TestLogin_CreatesFreshSessions() {
	ctx := context.Background()
	_, _ = s.svc.Register(ctx, signUp("alice@example.com"))
	req := &request.LoginRequest{Email: "alice@example.com", Password: "wonderland-2024"}

	first, err := s.svc.Login(ctx, req)
	require.NoError(s.T(), err)
	second, err := s.svc.Login(ctx, req)
	require.NoError(s.T(), err)

	assert.NotEqual(s.T(), first.Session.ID, second.Session.ID)
	assert.NotEqual(s.T(), first.Token, second.Token)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownIdentity() {
	_, err := s.svc.Login(context.Background(), &request.LoginRequest{Email: "nobody@example.com", Password: "whatever-password"})

	assert.ErrorIs(s.T(), err, domain.ErrUnknownIdentity)
}

func (s *AuthServiceTestSuite) TestLogin_InvalidCredentials() {
	ctx := context.Background()
	_, _ = s.svc.Register(ctx, signUp("alice@example.com"))

	_, err := s.svc.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "not-the-password"})

	assert.ErrorIs(s.T(), err, domain.ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestCurrentPrincipal_ResolvesSession() {
	ctx := context.Background()
	registered, _ := s.svc.Register(ctx, signUp("alice@example.com"))
	result, _ := s.svc.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "wonderland-2024"})

	principal, err := s.svc.CurrentPrincipal(ctx, result.Token)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), registered.ID, principal.ID)
	assert.Equal(s.T(), domain.RoleUser, principal.Role)
}

func (s *AuthServiceTestSuite) TestCurrentPrincipal_Unauthenticated() {
	ctx := context.Background()

	_, err := s.svc.CurrentPrincipal(ctx, "")
	assert.ErrorIs(s.T(), err, domain.ErrUnauthenticated)

	_, err = s.svc.CurrentPrincipal(ctx, "garbage")
	assert.ErrorIs(s.T(), err, domain.ErrUnauthenticated)
}

func (s *AuthServiceTestSuite) TestLogout_InvalidatesOnlyThatSession() {
	ctx := context.Background()
	_, _ = s.svc.Register(ctx, signUp("alice@example.com"))
	req := &request.LoginRequest{Email: "alice@example.com", Password: "wonderland-2024"}
	first, _ := s.svc.Login(ctx, req)
	second, _ := s.svc.Login(ctx, req)

	s.svc.Logout(ctx, first.Token)

	_, err := s.svc.CurrentPrincipal(ctx, first.Token)
	assert.ErrorIs(s.T(), err, domain.ErrUnauthenticated)

	_, err = s.svc.CurrentPrincipal(ctx, second.Token)
	assert.NoError(s.T(), err)
}

func (s *AuthServiceTestSuite) TestLogout_IsIdempotent() {
	ctx := context.Background()
	_, _ = s.svc.Register(ctx, signUp("alice@example.com"))
	result, _ := s.svc.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "wonderland-2024"})

	assert.NotPanics(s.T(), func() {
		s.svc.Logout(ctx, result.Token)
		s.svc.Logout(ctx, result.Token)
		s.svc.Logout(ctx, "")
		s.svc.Logout(ctx, "not-a-token")
	})
}

func (s *AuthServiceTestSuite) TestEnsureAdmin() {
	ctx := context.Background()

	require.NoError(s.T(), s.svc.EnsureAdmin(ctx, "root@example.com", "root-password-123"))
	require.NoError(s.T(), s.svc.EnsureAdmin(ctx, "root@example.com", "root-password-123"))

	admin, err := s.repo.GetByEmail(ctx, "root@example.com")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.RoleAdmin, admin.Role)
	assert.Equal(s.T(), "Root", admin.FirstName)

	result, err := s.svc.Login(ctx, &request.LoginRequest{Email: "root@example.com", Password: "root-password-123"})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.RoleAdmin, result.Identity.Role)
}

func (s *AuthServiceTestSuite) TestEnsureAdmin_SkipsWithoutCredentials() {
	assert.NoError(s.T(), s.svc.EnsureAdmin(context.Background(), "", ""))
}
