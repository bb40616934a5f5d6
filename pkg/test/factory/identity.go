package factory

import (
	"fmt"
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"joiner/internal/core/domain"
)

const DefaultPassword = "correct-horse-battery"

var defaultPasswordHash = func() string {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	return string(hashed)
}()

// NewIdentity builds a USER identity whose password is DefaultPassword.
func NewIdentity(customData ...map[string]any) domain.Identity {
	id := uuid.New()
	now := time.Now()

	data := merge(map[string]any{
		"ID":           id,
		"FirstName":    "Test",
		"LastName":     "User",
		"Email":        fmt.Sprintf("user-%s@example.com", id.String()[:8]),
		"PasswordHash": defaultPasswordHash,
		"Role":         domain.RoleUser,
		"CreatedAt":    now,
		"UpdatedAt":    now,
	}, customData)

	return fab.New(domain.Identity{}).Build(data)
}

func merge(defaults map[string]any, customData []map[string]any) map[string]any {
	for _, data := range customData {
		for key, value := range data {
			defaults[key] = value
		}
	}
	return defaults
}
