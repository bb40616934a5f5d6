package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestParseLabels(t *testing.T) {
	t.Run("should match labels case-insensitively", func(t *testing.T) {
		gender, err := ParseGender(" female ")
		require.NoError(t, err)
		assert.Equal(t, GenderFemale, gender)

		membership, err := ParseMembershipType("External")
		require.NoError(t, err)
		assert.Equal(t, MembershipExternal, membership)

		persona, err := ParsePersona("government")
		require.NoError(t, err)
		assert.Equal(t, PersonaGovernment, persona)
	})

	t.Run("should reject unknown labels", func(t *testing.T) {
		_, err := ParseGender("other")
		assert.Error(t, err)

		_, err = ParseMembershipType("")
		assert.Error(t, err)

		_, err = ParsePersona("NGO")
		assert.ErrorContains(t, err, "persona")
	})
}

func TestMember_Apply(t *testing.T) {
	base := func() Member {
		return Member{
			ID:             uuid.New(),
			FirstName:      "Alice",
			LastName:       "Liddell",
			Email:          "alice@example.com",
			MobileNumber:   ptr("+351900000000"),
			Gender:         GenderFemale,
			MembershipType: MembershipInternal,
			Persona:        PersonaIndividual,
		}
	}

	t.Run("should only change the fields present in the patch", func(t *testing.T) {
		member := base()
		member.Apply(MemberPatch{FirstName: ptr("Alicia")})

		expected := base()
		expected.ID = member.ID
		expected.FirstName = "Alicia"
		assert.Equal(t, expected, member)
	})

	t.Run("should ignore blank text fields", func(t *testing.T) {
		member := base()
		member.Apply(MemberPatch{FirstName: ptr("   "), LastName: ptr(""), MobileNumber: ptr(" ")})

		assert.Equal(t, "Alice", member.FirstName)
		assert.Equal(t, "Liddell", member.LastName)
		assert.Equal(t, "+351900000000", *member.MobileNumber)
	})

	t.Run("should overwrite enum fields when present", func(t *testing.T) {
		member := base()
		member.Apply(MemberPatch{
			Gender:         ptr(GenderMale),
			MembershipType: ptr(MembershipExternal),
			Persona:        ptr(PersonaBusiness),
		})

		assert.Equal(t, GenderMale, member.Gender)
		assert.Equal(t, MembershipExternal, member.MembershipType)
		assert.Equal(t, PersonaBusiness, member.Persona)
	})
}

func TestMember_IsOwnedBy(t *testing.T) {
	owner := uuid.New()
	member := Member{OwnerID: &owner}

	assert.True(t, member.IsOwnedBy(owner))
	assert.False(t, member.IsOwnedBy(uuid.New()))
	assert.False(t, Member{}.IsOwnedBy(owner))
}

func TestMemberPage_TotalPages(t *testing.T) {
	assert.Equal(t, 0, MemberPage{Size: 10}.TotalPages())
	assert.Equal(t, 1, MemberPage{Size: 10, TotalElements: 10}.TotalPages())
	assert.Equal(t, 3, MemberPage{Size: 10, TotalElements: 21}.TotalPages())
	assert.Equal(t, 0, MemberPage{TotalElements: 5}.TotalPages())
}
