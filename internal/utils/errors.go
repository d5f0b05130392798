package utils

import (
	"github.com/denischpt/portfolio/internal/api/constants"
	"github.com/denischpt/portfolio/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleAPIError logs err server-side and answers with userMessage only.
// Error detail never reaches the client.
func HandleAPIError(c *gin.Context, logger *logging.Logger, err error, status int, logMessage, userMessage string) {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		status,
		logMessage+" (request "+c.GetString(constants.ContextKeyRequestID)+")",
		logging.Redact(err),
	)

	HandleError(c, status, userMessage)
}
