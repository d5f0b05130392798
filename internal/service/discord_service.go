package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/denischpt/portfolio/internal/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/denischpt/portfolio/internal/service"

// DiscordConfig configures the Discord webhook notifier
type DiscordConfig struct {
	WebhookURL   string
	Timeout      time.Duration
	Notification NotificationOptions
	HTTPClient   *http.Client
}

// DiscordService forwards contact form submissions to a Discord webhook.
// It holds no per-request state and is safe for concurrent use.
type DiscordService struct {
	webhookURL string
	client     *http.Client
	opts       NotificationOptions
}

// NewDiscordService creates a new Discord notifier
func NewDiscordService(cfg DiscordConfig) *DiscordService {
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &DiscordService{
		webhookURL: strings.TrimSpace(cfg.WebhookURL),
		client:     client,
		opts:       cfg.Notification,
	}
}

// Configured reports whether a webhook destination is set
func (s *DiscordService) Configured() bool {
	return s.webhookURL != ""
}

// SendContactMessage builds the notification for a sanitized submission and
// posts it to the webhook. Exactly one request is made; there is no retry.
func (s *DiscordService) SendContactMessage(ctx context.Context, sub models.ContactSubmission, info *ContactMessageInfo) error {
	if !s.Configured() {
		return ErrNotConfigured
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "discord.send_contact_message",
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	err := s.post(ctx, BuildNotification(sub, info, s.opts), span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "webhook delivery failed")
	}
	return err
}

func (s *DiscordService) post(ctx context.Context, payload WebhookPayload, span trace.Span) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSinkUnreachable, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &SinkError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	// Drain so the connection can be reused
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	return nil
}
