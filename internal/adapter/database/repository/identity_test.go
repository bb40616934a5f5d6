package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"joiner/internal/adapter/database/repository"
	"joiner/internal/core/domain"
	"joiner/internal/core/port"
	. "joiner/pkg/test"
	"joiner/pkg/test/factory"
)

type IdentityRepositoryTestSuite struct {
	suite.Suite
	repo port.IdentityRepository
}

func (s *IdentityRepositoryTestSuite) SetupTest() {
	s.repo = repository.NewIdentityRepository(InitTestDB())
}

func TestIdentityRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(IdentityRepositoryTestSuite))
}

func (s *IdentityRepositoryTestSuite) TestRepository_Create_Success() {
	identity := factory.NewIdentity(map[string]any{"Email": "Alice@Example.com"})

	created, err := s.repo.Create(context.Background(), identity)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), identity.ID, created.ID)
	assert.Equal(s.T(), "Alice@Example.com", created.Email)
}

func (s *IdentityRepositoryTestSuite) TestRepository_Create_DuplicateEmailIgnoringCase() {
	ctx := context.Background()

	_, err := s.repo.Create(ctx, factory.NewIdentity(map[string]any{"Email": "alice@example.com"}))
	assert.NoError(s.T(), err)

	_, err = s.repo.Create(ctx, factory.NewIdentity(map[string]any{"Email": "ALICE@example.com"}))
	assert.ErrorIs(s.T(), err, domain.ErrRecordConflict)
}

func (s *IdentityRepositoryTestSuite) TestRepository_GetByEmail_IgnoresCase() {
	ctx := context.Background()
	identity, _ := s.repo.Create(ctx, factory.NewIdentity(map[string]any{"Email": "Alice@Example.com"}))

	found, err := s.repo.GetByEmail(ctx, "alice@EXAMPLE.com")

	Expect(err).To(BeNil())
	Expect(found.ID).To(Equal(identity.ID))
	Expect(found.Email).To(Equal("Alice@Example.com"))
	Expect(found.Role).To(Equal(domain.RoleUser))
	Expect(found.PasswordHash).To(Equal(identity.PasswordHash))
}

func (s *IdentityRepositoryTestSuite) TestRepository_GetByUUID() {
	ctx := context.Background()
	identity, _ := s.repo.Create(ctx, factory.NewIdentity(map[string]any{"Role": domain.RoleAdmin}))

	found, err := s.repo.GetByUUID(ctx, identity.ID)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), domain.RoleAdmin, found.Role)
	assert.WithinDuration(s.T(), identity.CreatedAt, found.CreatedAt, time.Second)

	_, err = s.repo.GetByUUID(ctx, uuid.New())
	assert.ErrorIs(s.T(), err, domain.ErrRecordNotFound)
}

func (s *IdentityRepositoryTestSuite) TestRepository_ExistsByEmail() {
	ctx := context.Background()
	_, _ = s.repo.Create(ctx, factory.NewIdentity(map[string]any{"Email": "bob@example.com"}))

	exists, err := s.repo.ExistsByEmail(ctx, " BOB@example.com ")
	assert.NoError(s.T(), err)
	assert.True(s.T(), exists)

	exists, err = s.repo.ExistsByEmail(ctx, "carol@example.com")
	assert.NoError(s.T(), err)
	assert.False(s.T(), exists)
}
