package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/denischpt/portfolio/internal/api/constants"
	"github.com/denischpt/portfolio/internal/api/dto/v1/contact"
	"github.com/denischpt/portfolio/internal/api/middleware"
	"github.com/denischpt/portfolio/internal/api/sanitization"
	"github.com/denischpt/portfolio/internal/api/validation"
	"github.com/denischpt/portfolio/internal/i18n"
	"github.com/denischpt/portfolio/internal/logging"
	"github.com/denischpt/portfolio/internal/models"
	"github.com/denischpt/portfolio/internal/service"
	"github.com/denischpt/portfolio/internal/utils"

	"github.com/gin-gonic/gin"
)

// Notifier delivers a sanitized submission to the webhook sink
type Notifier interface {
	Configured() bool
	SendContactMessage(ctx context.Context, sub models.ContactSubmission, info *service.ContactMessageInfo) error
}

// ContactHandlerConfig wires the relay endpoint
type ContactHandlerConfig struct {
	Notifier          Notifier
	Recaptcha         *service.RecaptchaService
	RecaptchaMinScore float64
	Logger            *logging.Logger
}

// ContactHandler is the relay endpoint. It keeps no per-request state.
type ContactHandler struct {
	notifier  Notifier
	recaptcha *service.RecaptchaService
	minScore  float64
	logger    *logging.Logger
	now       func() time.Time
}

func NewContactHandler(cfg ContactHandlerConfig) *ContactHandler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &ContactHandler{
		notifier:  cfg.Notifier,
		recaptcha: cfg.Recaptcha,
		minScore:  cfg.RecaptchaMinScore,
		logger:    logger,
		now:       time.Now,
	}
}

// Guard answers every request that is refused before its body is read.
// It is mounted ahead of the rate limiter.
func (h *ContactHandler) Guard(c *gin.Context) {
	if h.reject(c) {
		return
	}
	c.Next()
}

// reject handles the checks that come before the body is read. It reports
// whether the request was answered.
func (h *ContactHandler) reject(c *gin.Context) bool {
	text := func(key i18n.Key) string { return i18n.Text(middleware.LanguageFrom(c), key) }

	switch c.Request.Method {
	case http.MethodOptions:
		c.AbortWithStatus(http.StatusOK)
		return true
	case http.MethodPost:
	default:
		c.Header("Allow", "POST, OPTIONS")
		utils.HandleError(c, http.StatusMethodNotAllowed, text(i18n.KeyMethodNotAllowed))
		return true
	}

	if h.notifier == nil || !h.notifier.Configured() {
		h.logger.Error("DISCORD_WEBHOOK_URL not configured, rejecting contact submission (request %s)",
			c.GetString(constants.ContextKeyRequestID))
		utils.HandleError(c, http.StatusInternalServerError, text(i18n.KeyServiceMisconfigured))
		return true
	}
	return false
}

// Submit handles every method on the contact route. Checks run in a fixed
// order: preflight, method, webhook configuration, input, delivery.
func (h *ContactHandler) Submit(c *gin.Context) {
	if h.reject(c) {
		return
	}

	lang := middleware.LanguageFrom(c)
	text := func(key i18n.Key) string { return i18n.Text(lang, key) }
	requestID := c.GetString(constants.ContextKeyRequestID)

	// An empty body decodes as an empty submission and fails validation
	var req contact.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Debug("unreadable contact body (request %s): %v", requestID, err)
		utils.HandleError(c, http.StatusBadRequest, text(i18n.KeyInvalidBody))
		return
	}

	sub := req.Submission()
	if verr := validation.Validate(sub); verr != nil {
		h.logger.Debug("contact submission rejected on %s (request %s)", verr.Field, requestID)
		utils.HandleError(c, http.StatusBadRequest, text(verr.Key))
		return
	}

	if h.recaptcha.Enabled() {
		ok, err := h.recaptcha.VerifyToken(c.Request.Context(), req.RecaptchaToken, h.minScore)
		if !ok {
			if err == nil || errors.Is(err, service.ErrCaptchaRejected) {
				h.logger.Warn("captcha rejected (request %s): %v", requestID, err)
				utils.HandleError(c, http.StatusBadRequest, text(i18n.KeyCaptchaFailed))
				return
			}
			utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError, "captcha verification failed", text(i18n.KeyUnexpectedError))
			return
		}
	}

	clean := sanitization.SanitizeContact(sub)
	info := &service.ContactMessageInfo{
		IPAddress:  utils.GetRealIP(c),
		UserAgent:  c.Request.UserAgent(),
		Referrer:   c.Request.Referer(),
		RequestID:  requestID,
		ReceivedAt: h.now(),
	}

	// A visitor closing the tab does not abort a delivery already under way
	ctx := context.WithoutCancel(c.Request.Context())

	err := h.notifier.SendContactMessage(ctx, clean, info)
	switch {
	case err == nil:
		h.logger.Info("Contact form submitted: %v", logging.Redact(map[string]any{
			"from":       utils.MaskEmail(clean.Email),
			"request_id": requestID,
		}))
		utils.HandleSuccess(c, text(i18n.KeySent))
	case errors.Is(err, service.ErrSinkRejected):
		utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError, "Discord webhook failed", text(i18n.KeySendFailed))
	default:
		utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError, "Error sending to Discord", text(i18n.KeyUnexpectedError))
	}
}
