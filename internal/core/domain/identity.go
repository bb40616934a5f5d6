package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

type Identity struct {
	ID           uuid.UUID
	FirstName    string `validate:"required,max=100"`
	LastName     string `validate:"required,max=100"`
	Email        string `validate:"required,email,max=255"`
	PasswordHash string `validate:"required"`
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal is the authenticated caller passed explicitly into every
// member operation.
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  Role
}

func (i Identity) Principal() Principal {
	return Principal{ID: i.ID, Email: i.Email, Role: i.Role}
}

// NormalizeEmail is the comparison form used for identity lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
