package routes

import (
	"github.com/denischpt/portfolio/internal/api/handlers"
	"github.com/denischpt/portfolio/internal/api/middleware"

	"golang.org/x/text/language"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
}

// Middleware contains the settings of route and global middleware
type Middleware struct {
	AllowedOrigins  []string
	DefaultLanguage language.Tag
	RateLimit       middleware.RateLimitConfig
	MaxBodySize     int64
	ServiceName     string
}
