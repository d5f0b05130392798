package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/denischpt/portfolio/internal/api/handlers"
	"github.com/denischpt/portfolio/internal/api/middleware"
	"github.com/denischpt/portfolio/internal/config"
	"github.com/denischpt/portfolio/internal/i18n"
	"github.com/denischpt/portfolio/internal/logging"
	"github.com/denischpt/portfolio/internal/server/routes"

	"github.com/gin-gonic/gin"
)

// ServiceName identifies the relay in traces
const ServiceName = "portfolio-contact-relay"

// NewServer creates a new server instance with all routes registered
func NewServer(cfg *config.Config, logger *logging.Logger, deps Dependencies) (*Server, error) {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	if cfg.IsProduction() {
		// Set release mode for production
		gin.SetMode(gin.ReleaseMode)

		// Disable Gin's default logger entirely because we're using our custom logger
		gin.DisableConsoleColor()
		gin.DefaultWriter = io.Discard
	}

	// Create a new engine without default middleware
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}
	// Proxy headers are read only from trusted peers
	router.ForwardedByClientIP = true
	router.RemoteIPHeaders = []string{"X-Forwarded-For", "X-Real-IP"}

	defaultLanguage, ok := i18n.ParseTag(cfg.DefaultLocale)
	if !ok {
		logger.Warn("Unsupported DEFAULT_LOCALE %q, falling back to %s", cfg.DefaultLocale, i18n.DefaultTag)
		defaultLanguage = i18n.DefaultTag
	}

	if !cfg.WebhookConfigured() {
		logger.Warn("DISCORD_WEBHOOK_URL is not set; contact submissions will be refused")
	}

	m := &routes.Middleware{
		AllowedOrigins:  cfg.CORSOrigins(),
		DefaultLanguage: defaultLanguage,
		RateLimit: middleware.RateLimitConfig{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		},
		MaxBodySize: middleware.DefaultMaxBodySize,
		ServiceName: ServiceName,
	}
	h := &routes.Handlers{
		Contact: handlers.NewContactHandler(handlers.ContactHandlerConfig{
			Notifier:          deps.Notifier,
			Recaptcha:         deps.Recaptcha,
			RecaptchaMinScore: cfg.RecaptchaMinScore,
			Logger:            logger,
		}),
		Health: handlers.NewHealthHandler(deps.Notifier),
	}

	routes.SetupGlobalMiddleware(router, logger, m)
	routes.Setup(router, h, m)

	return &Server{
		router: router,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Router exposes the engine, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start serves until ctx is cancelled, then drains in-flight requests.
// The drain window outlasts the webhook timeout.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.logger.Info("Contact relay listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down contact relay")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.WebhookTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}
