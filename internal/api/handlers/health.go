package handlers

import (
	"net/http"

	"github.com/denischpt/portfolio/internal/api/dto/v1/contact"
	"github.com/denischpt/portfolio/internal/api/middleware"
	"github.com/denischpt/portfolio/internal/i18n"
	"github.com/denischpt/portfolio/internal/version"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	notifier Notifier
}

func NewHealthHandler(notifier Notifier) *HealthHandler {
	return &HealthHandler{notifier: notifier}
}

// Check reports liveness. A missing webhook is reported as a flag, the
// process itself stays healthy.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, contact.HealthResponse{
		Status:            "ok",
		Message:           i18n.Text(middleware.LanguageFrom(c), i18n.KeyRelayHealthy),
		Version:           version.GetVersionString(),
		WebhookConfigured: h.notifier != nil && h.notifier.Configured(),
	})
}
