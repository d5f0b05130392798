package utils

import (
	"github.com/gin-gonic/gin"
)

// UnknownIP is reported when no client address can be determined
const UnknownIP = "Unknown"

// GetRealIP returns the client address. X-Forwarded-For and X-Real-IP are
// honoured only when the peer is one of the engine's trusted proxies.
func GetRealIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return UnknownIP
}
