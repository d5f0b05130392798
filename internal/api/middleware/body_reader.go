package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodySize bounds contact payloads; the largest valid submission
// is a few kilobytes.
const DefaultMaxBodySize = 64 * 1024

// LimitRequestBody caps the number of body bytes a handler can read.
// Reads past the limit fail, which handlers report as an invalid body.
func LimitRequestBody(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
