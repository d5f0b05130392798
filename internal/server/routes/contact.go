package routes

import (
	"github.com/denischpt/portfolio/internal/api/handlers"
	"github.com/denischpt/portfolio/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures the contact relay. Every method reaches the
// handler so that unsupported ones get the JSON 405 body. The guard answers
// preflights, bad methods and a missing webhook before the limiter counts.
func SetupContactRoutes(router *gin.Engine, contact *handlers.ContactHandler, m *Middleware) {
	api := router.Group("/api")
	{
		// Public endpoint, rate limited per client on POST only
		api.Any("/contact",
			middleware.LimitRequestBody(m.MaxBodySize),
			contact.Guard,
			middleware.RateLimitMiddleware(m.RateLimit),
			contact.Submit,
		)
	}
}
