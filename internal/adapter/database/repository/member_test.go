package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"joiner/internal/adapter/database/repository"
	"joiner/internal/core/domain"
	"joiner/internal/core/filter"
	"joiner/internal/core/port"
	. "joiner/pkg/test"
	"joiner/pkg/test/factory"
)

type MemberRepositoryTestSuite struct {
	suite.Suite
	repo       port.MemberRepository
	identities port.IdentityRepository
}

func (s *MemberRepositoryTestSuite) SetupTest() {
	db := InitTestDB()

	s.repo = repository.NewMemberRepository(db)
	s.identities = repository.NewIdentityRepository(db)
}

func TestMemberRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(MemberRepositoryTestSuite))
}

func (s *MemberRepositoryTestSuite) createIdentity() domain.Identity {
	identity, err := s.identities.Create(context.Background(), factory.NewIdentity())
	require.NoError(s.T(), err)
	return identity
}

func (s *MemberRepositoryTestSuite) TestRepository_CreateAndGet() {
	ctx := context.Background()
	owner := s.createIdentity()
	member := factory.NewMember(factory.OwnedBy(owner))

	_, err := s.repo.Create(ctx, member)
	require.NoError(s.T(), err)

	found, err := s.repo.GetByUUID(ctx, member.ID)
	require.NoError(s.T(), err)

	Expect(found.ID).To(Equal(member.ID))
	Expect(found.FirstName).To(Equal(member.FirstName))
	Expect(found.Email).To(Equal(member.Email))
	Expect(*found.MobileNumber).To(Equal(*member.MobileNumber))
	Expect(found.Gender).To(Equal(domain.GenderMale))
	Expect(found.MembershipType).To(Equal(domain.MembershipInternal))
	Expect(found.Persona).To(Equal(domain.PersonaIndividual))
	Expect(found.Deleted).To(BeFalse())
	Expect(*found.OwnerID).To(Equal(owner.ID))
}

func (s *MemberRepositoryTestSuite) TestRepository_Create_WithoutOwnerOrMobile() {
	ctx := context.Background()
	member := factory.NewMember(map[string]any{"MobileNumber": (*string)(nil)})

	_, err := s.repo.Create(ctx, member)
	require.NoError(s.T(), err)

	found, err := s.repo.GetByUUID(ctx, member.ID)
	require.NoError(s.T(), err)
	assert.Nil(s.T(), found.OwnerID)
	assert.Nil(s.T(), found.MobileNumber)
}

func (s *MemberRepositoryTestSuite) TestRepository_Create_UniqueOwner() {
	ctx := context.Background()
	owner := s.createIdentity()

	_, err := s.repo.Create(ctx, factory.NewMember(factory.OwnedBy(owner)))
	require.NoError(s.T(), err)

	_, err = s.repo.Create(ctx, factory.NewMember(factory.OwnedBy(owner)))
	assert.ErrorIs(s.T(), err, domain.ErrRecordConflict)
}

func (s *MemberRepositoryTestSuite) TestRepository_Create_UniqueEmail() {
	ctx := context.Background()

	_, err := s.repo.Create(ctx, factory.NewMember(map[string]any{"Email": "jo@example.com"}))
	require.NoError(s.T(), err)

	_, err = s.repo.Create(ctx, factory.NewMember(map[string]any{"Email": "JO@example.com"}))
	assert.ErrorIs(s.T(), err, domain.ErrRecordConflict)
}

func (s *MemberRepositoryTestSuite) TestRepository_GetByOwner() {
	ctx := context.Background()
	owner := s.createIdentity()
	member, _ := s.repo.Create(ctx, factory.NewMember(factory.OwnedBy(owner)))

	found, err := s.repo.GetByOwner(ctx, owner.ID)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), member.ID, found.ID)

	_, err = s.repo.GetByOwner(ctx, uuid.New())
	assert.ErrorIs(s.T(), err, domain.ErrRecordNotFound)
}

func (s *MemberRepositoryTestSuite) TestRepository_ExistsByEmail_Excluding() {
	ctx := context.Background()
	member, _ := s.repo.Create(ctx, factory.NewMember(map[string]any{"Email": "jo@example.com"}))

	exists, err := s.repo.ExistsByEmail(ctx, "Jo@Example.com", uuid.Nil)
	assert.NoError(s.T(), err)
	assert.True(s.T(), exists)

	exists, err = s.repo.ExistsByEmail(ctx, "jo@example.com", member.ID)
	assert.NoError(s.T(), err)
	assert.False(s.T(), exists)
}

func (s *MemberRepositoryTestSuite) TestRepository_Update() {
	ctx := context.Background()
	member, _ := s.repo.Create(ctx, factory.NewMember())

	member.LastName = "Updated"
	member.Deleted = true
	member.UpdatedAt = time.Now()

	_, err := s.repo.Update(ctx, member)
	require.NoError(s.T(), err)

	found, err := s.repo.GetByUUID(ctx, member.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Updated", found.LastName)
	assert.True(s.T(), found.Deleted)

	_, err = s.repo.Update(ctx, factory.NewMember())
	assert.ErrorIs(s.T(), err, domain.ErrRecordNotFound)
}

func (s *MemberRepositoryTestSuite) TestRepository_DeleteByUUID() {
	ctx := context.Background()
	member, _ := s.repo.Create(ctx, factory.NewMember())

	err := s.repo.DeleteByUUID(ctx, member.ID)
	assert.NoError(s.T(), err)

	_, err = s.repo.GetByUUID(ctx, member.ID)
	assert.ErrorIs(s.T(), err, domain.ErrRecordNotFound)

	err = s.repo.DeleteByUUID(ctx, member.ID)
	assert.ErrorIs(s.T(), err, domain.ErrRecordNotFound)
}

func (s *MemberRepositoryTestSuite) TestRepository_Find_WithCompiledFilter() {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	fixtures := []map[string]any{
		{"FirstName": "John", "Persona": domain.PersonaIndividual},
		{"FirstName": "Joanna", "Persona": domain.PersonaIndividual},
		{"FirstName": "Majorie", "Persona": domain.PersonaIndividual, "Deleted": true},
		{"FirstName": "Jonas", "Persona": domain.PersonaBusiness},
		{"FirstName": "Mary", "Persona": domain.PersonaIndividual},
	}
	for i, data := range fixtures {
		data["CreatedAt"] = base.Add(time.Duration(i) * time.Minute)
		_, err := s.repo.Create(ctx, factory.NewMember(data))
		require.NoError(s.T(), err)
	}

	predicate, err := filter.Compile(filter.Criteria{FirstName: "jo", Persona: "individual"})
	require.NoError(s.T(), err)

	members, total, err := s.repo.Find(ctx, predicate, 0, 10)
	require.NoError(s.T(), err)

	Expect(total).To(Equal(2))
	Expect(members).To(HaveLen(2))
	Expect(members[0].FirstName).To(Equal("John"))
	Expect(members[1].FirstName).To(Equal("Joanna"))
}

func (s *MemberRepositoryTestSuite) TestRepository_Find_Pages() {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		_, err := s.repo.Create(ctx, factory.NewMember(map[string]any{"CreatedAt": base.Add(time.Duration(i) * time.Minute)}))
		require.NoError(s.T(), err)
	}

	predicate, _ := filter.Compile(filter.Criteria{})

	first, total, err := s.repo.Find(ctx, predicate, 0, 2)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 5, total)
	assert.Len(s.T(), first, 2)

	last, total, err := s.repo.Find(ctx, predicate, 4, 2)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 5, total)
	assert.Len(s.T(), last, 1)
	assert.NotEqual(s.T(), first[0].ID, last[0].ID)
}

func (s *MemberRepositoryTestSuite) TestRepository_Find_Search() {
	ctx := context.Background()

	_, _ = s.repo.Create(ctx, factory.NewMember(map[string]any{"FirstName": "Ann", "LastName": "Smith"}))
	_, _ = s.repo.Create(ctx, factory.NewMember(map[string]any{"FirstName": "Bob", "LastName": "Hanna"}))
	_, _ = s.repo.Create(ctx, factory.NewMember(map[string]any{"FirstName": "Carl", "LastName": "Young"}))

	members, total, err := s.repo.Find(ctx, filter.Search("ANN"), 0, 10)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 2, total)
	assert.Len(s.T(), members, 2)
}

func (s *MemberRepositoryTestSuite) TestRepository_Find_LiteralWildcards() {
	ctx := context.Background()

	_, _ = s.repo.Create(ctx, factory.NewMember(map[string]any{"FirstName": "Joanna", "Email": "joanna@example.com"}))
	_, _ = s.repo.Create(ctx, factory.NewMember(map[string]any{"FirstName": "Jo_Anne", "Email": "jo_anne@example.com"}))
	_, _ = s.repo.Create(ctx, factory.NewMember(map[string]any{"FirstName": "Percy", "LastName": "100%", "Email": "percy@example.com"}))

	predicate, err := filter.Compile(filter.Criteria{Email: "joanna_"})
	require.NoError(s.T(), err)
	_, total, err := s.repo.Find(ctx, predicate, 0, 10)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 0, total)

	predicate, _ = filter.Compile(filter.Criteria{FirstName: "jo_"})
	members, total, err := s.repo.Find(ctx, predicate, 0, 10)
	require.NoError(s.T(), err)
	Expect(total).To(Equal(1))
	Expect(members[0].FirstName).To(Equal("Jo_Anne"))

	predicate, _ = filter.Compile(filter.Criteria{LastName: "%"})
	members, total, err = s.repo.Find(ctx, predicate, 0, 10)
	require.NoError(s.T(), err)
	Expect(total).To(Equal(1))
	Expect(members[0].FirstName).To(Equal("Percy"))
}
