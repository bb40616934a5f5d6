package pkg

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetClientIP prefers the first proxy-reported address that parses as an
// IP and falls back to the connection address.
func GetClientIP(c *gin.Context) string {
	candidates := strings.Split(c.GetHeader("X-Forwarded-For"), ",")
	candidates = append(candidates, c.GetHeader("X-Real-IP"))

	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if net.ParseIP(candidate) != nil {
			return candidate
		}
	}

	if ip := c.ClientIP(); ip != "" {
		return ip
	}

	return "unknown"
}
