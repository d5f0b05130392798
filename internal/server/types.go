package server

import (
	"github.com/denischpt/portfolio/internal/api/handlers"
	"github.com/denischpt/portfolio/internal/config"
	"github.com/denischpt/portfolio/internal/logging"
	"github.com/denischpt/portfolio/internal/service"

	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	logger *logging.Logger
}

// Dependencies holds the services the relay calls out to
type Dependencies struct {
	Notifier  handlers.Notifier
	Recaptcha *service.RecaptchaService
}
