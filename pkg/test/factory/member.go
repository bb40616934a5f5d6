package factory

import (
	"fmt"
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"

	"joiner/internal/core/domain"
)

// NewMember builds an ownerless, non-deleted member.
func NewMember(customData ...map[string]any) domain.Member {
	id := uuid.New()
	now := time.Now()
	mobile := "+351910000000"

	data := merge(map[string]any{
		"ID":             id,
		"FirstName":      "Jordan",
		"LastName":       "Member",
		"Email":          fmt.Sprintf("member-%s@example.com", id.String()[:8]),
		"MobileNumber":   &mobile,
		"Gender":         domain.GenderMale,
		"MembershipType": domain.MembershipInternal,
		"Persona":        domain.PersonaIndividual,
		"Deleted":        false,
		"OwnerID":        (*uuid.UUID)(nil),
		"CreatedAt":      now,
		"UpdatedAt":      now,
	}, customData)

	return fab.New(domain.Member{}).Build(data)
}

func OwnedBy(identity domain.Identity) map[string]any {
	ownerID := identity.ID
	return map[string]any{"OwnerID": &ownerID}
}
