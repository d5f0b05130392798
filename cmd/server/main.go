package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/denischpt/portfolio/internal/config"
	"github.com/denischpt/portfolio/internal/i18n"
	"github.com/denischpt/portfolio/internal/logging"
	"github.com/denischpt/portfolio/internal/server"
	"github.com/denischpt/portfolio/internal/service"
	"github.com/denischpt/portfolio/internal/telemetry"
	"github.com/denischpt/portfolio/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.GetGlobalLogger().Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	// Initialize logger configuration
	logConfig := &logging.Config{
		Level:       cfg.LogLevel,
		File:        cfg.LogFile,
		MaxSize:     100,
		MaxBackups:  3,
		MaxAge:      7,
		LogRequests: cfg.LogRequests,
	}
	if err := logging.InitLogger(logConfig); err != nil {
		logging.GetGlobalLogger().Error("Failed to initialize logger: %v", err)
		os.Exit(1)
	}
	logger := logging.GetGlobalLogger()
	defer logger.Close()

	logger.Info("Starting contact relay %s in %s mode", version.GetVersionString(), cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, server.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Warn("Tracing disabled: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("Failed to flush traces: %v", err)
		}
	}()

	location, err := time.LoadLocation(cfg.NotificationTimeZone)
	if err != nil {
		logger.Warn("Unknown NOTIFICATION_TIMEZONE %q, using UTC: %v", cfg.NotificationTimeZone, err)
		location = time.UTC
	}

	notificationLanguage, ok := i18n.ParseTag(cfg.DefaultLocale)
	if !ok {
		notificationLanguage = i18n.DefaultTag
	}

	discord := service.NewDiscordService(service.DiscordConfig{
		WebhookURL: cfg.WebhookURL,
		Timeout:    cfg.WebhookTimeout,
		Notification: service.NotificationOptions{
			Username: cfg.WebhookUsername,
			Footer:   cfg.NotificationFooter,
			Location: location,
			Language: notificationLanguage,
		},
	})

	recaptcha := service.NewRecaptchaService(cfg.RecaptchaSecretKey, "", cfg.WebhookTimeout)
	if recaptcha.Enabled() {
		logger.Info("reCAPTCHA verification enabled (min score %.2f)", cfg.RecaptchaMinScore)
	}

	srv, err := server.NewServer(cfg, logger, server.Dependencies{
		Notifier:  discord,
		Recaptcha: recaptcha,
	})
	if err != nil {
		logger.Error("Failed to create server: %v", err)
		os.Exit(1)
	}

	if err := srv.Start(ctx); err != nil {
		logger.Error("Server stopped with error: %v", err)
		os.Exit(1)
	}
	logger.Info("Contact relay stopped")
}
