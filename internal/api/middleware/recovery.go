package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/denischpt/portfolio/internal/api/constants"
	"github.com/denischpt/portfolio/internal/api/dto/common"
	"github.com/denischpt/portfolio/internal/i18n"
	"github.com/denischpt/portfolio/internal/logging"

	"github.com/gin-gonic/gin"
)

func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				// Log the stack trace
				logger.Error("[PANIC] %s | %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					c.GetString(constants.ContextKeyRequestID),
					logging.Redact(err),
					debug.Stack(),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					common.NewErrorResponse(i18n.Text(LanguageFrom(c), i18n.KeyUnexpectedError)))
			}
		}()

		c.Next()
	}
}
