package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

type MembershipType string

const (
	MembershipInternal MembershipType = "INTERNAL"
	MembershipExternal MembershipType = "EXTERNAL"
)

type Persona string

const (
	PersonaIndividual Persona = "INDIVIDUAL"
	PersonaBusiness   Persona = "BUSINESS"
	PersonaGovernment Persona = "GOVERNMENT"
)

var (
	Genders         = []Gender{GenderMale, GenderFemale}
	MembershipTypes = []MembershipType{MembershipInternal, MembershipExternal}
	Personas        = []Persona{PersonaIndividual, PersonaBusiness, PersonaGovernment}
)

func ParseGender(label string) (Gender, error) {
	return parseLabel("gender", label, Genders)
}

func ParseMembershipType(label string) (MembershipType, error) {
	return parseLabel("membership type", label, MembershipTypes)
}

func ParsePersona(label string) (Persona, error) {
	return parseLabel("persona", label, Personas)
}

func parseLabel[T ~string](kind, label string, known []T) (T, error) {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	for _, candidate := range known {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}

	var zero T
	return zero, fmt.Errorf("unknown %s %q", kind, label)
}

type Member struct {
	ID             uuid.UUID
	FirstName      string
	LastName       string
	Email          string
	MobileNumber   *string
	Gender         Gender
	MembershipType MembershipType
	Persona        Persona
	Deleted        bool
	OwnerID        *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (m Member) IsOwnedBy(identityID uuid.UUID) bool {
	return m.OwnerID != nil && *m.OwnerID == identityID
}

// MemberPatch carries a partial update. Nil fields are left untouched.
type MemberPatch struct {
	FirstName      *string
	LastName       *string
	Email          *string
	MobileNumber   *string
	Gender         *Gender
	MembershipType *MembershipType
	Persona        *Persona
}

// Apply overwrites text fields only when present and non-blank, and enum
// fields whenever present.
func (m *Member) Apply(patch MemberPatch) {
	overwriteText(&m.FirstName, patch.FirstName)
	overwriteText(&m.LastName, patch.LastName)
	overwriteText(&m.Email, patch.Email)

	if hasText(patch.MobileNumber) {
		mobile := *patch.MobileNumber
		m.MobileNumber = &mobile
	}
	if patch.Gender != nil {
		m.Gender = *patch.Gender
	}
	if patch.MembershipType != nil {
		m.MembershipType = *patch.MembershipType
	}
	if patch.Persona != nil {
		m.Persona = *patch.Persona
	}
}

func overwriteText(target *string, value *string) {
	if hasText(value) {
		*target = *value
	}
}

func hasText(value *string) bool {
	return value != nil && strings.TrimSpace(*value) != ""
}

type MemberPage struct {
	Content       []Member
	Page          int
	Size          int
	TotalElements int
}

func (p MemberPage) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return (p.TotalElements + p.Size - 1) / p.Size
}
