package middleware

import (
	"github.com/gin-gonic/gin"

	"joiner/internal/adapter/http/helper"
	"joiner/internal/core/domain"
	"joiner/internal/core/policy"
	"joiner/internal/core/port"
	"joiner/pkg/auth"
	ct "joiner/pkg/context"
)

const principalKey = "principal"

// Authenticate resolves the bearer token into a principal or answers 401.
func Authenticate(svc port.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			helper.SendDomainError(c, domain.ErrUnauthenticated)
			return
		}

		principal, err := svc.CurrentPrincipal(c.Request.Context(), token)
		if err != nil {
			helper.SendDomainError(c, err)
			return
		}

		c.Set(principalKey, principal)
		c.Set("x-user-id", principal.ID.String())
		GetCurrent(c).Set(ct.PrincipalKey, principal.ID.String())

		c.Next()
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := Principal(c)
		if !ok {
			helper.SendDomainError(c, domain.ErrUnauthenticated)
			return
		}

		if err := policy.RequireAdmin(principal); err != nil {
			helper.SendDomainError(c, err)
			return
		}

		c.Next()
	}
}

func Principal(c *gin.Context) (domain.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}

	principal, ok := value.(domain.Principal)
	return principal, ok
}
