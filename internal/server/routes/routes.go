package routes

import (
	"github.com/denischpt/portfolio/internal/api/middleware"
	"github.com/denischpt/portfolio/internal/logging"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	logger := logging.GetGlobalLogger()

	// Health check endpoint
	SetupHealthRoutes(router, h.Health)

	// Contact relay
	SetupContactRoutes(router, h.Contact, m)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, logger *logging.Logger, m *Middleware) {
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	if m.ServiceName != "" {
		router.Use(otelgin.Middleware(m.ServiceName))
	}
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Language(m.DefaultLanguage))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(m.AllowedOrigins))
}
