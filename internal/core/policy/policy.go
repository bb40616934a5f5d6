// Package policy holds the authorization decisions consulted by member
// operations. Every function is pure.
package policy

import (
	"joiner/internal/core/domain"
)

// RequireAdmin fails with domain.ErrForbidden unless the principal is an admin.
func RequireAdmin(principal domain.Principal) error {
	if !principal.Role.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// IsOwnerOrAdmin reports whether principal may act on member.
func IsOwnerOrAdmin(principal domain.Principal, member domain.Member) bool {
	return principal.Role.IsAdmin() || member.IsOwnedBy(principal.ID)
}
