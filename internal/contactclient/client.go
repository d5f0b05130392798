package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/denischpt/portfolio/internal/api/dto/common"
	"github.com/denischpt/portfolio/internal/api/dto/v1/contact"
	"github.com/denischpt/portfolio/internal/i18n"
	"github.com/denischpt/portfolio/internal/models"

	"golang.org/x/text/language"
)

const maxErrorBodySize = 16 * 1024

// Config configures the transport client
type Config struct {
	Endpoint       string
	SendingEnabled bool
	Timeout        time.Duration
	Language       language.Tag
	HTTPClient     *http.Client
}

// Client posts contact submissions to the relay endpoint
type Client struct {
	endpoint       string
	sendingEnabled bool
	language       language.Tag
	client         *http.Client
}

// New creates a transport client. A zero Language means the default one.
func New(cfg Config) *Client {
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	lang := cfg.Language
	if lang == language.Und {
		lang = i18n.DefaultTag
	}

	return &Client{
		endpoint:       strings.TrimSpace(cfg.Endpoint),
		sendingEnabled: cfg.SendingEnabled,
		language:       lang,
		client:         client,
	}
}

// Send makes exactly one POST to the relay. Every failure is a
// *TransportError carrying a user-facing message.
func (c *Client) Send(ctx context.Context, sub models.ContactSubmission) error {
	if !c.sendingEnabled {
		return c.fail(KindDisabled, i18n.KeySendingDisabled, ErrSendingDisabled)
	}

	payload, err := json.Marshal(contact.ContactRequest{
		Name:    sub.Name,
		Email:   sub.Email,
		Message: sub.Message,
	})
	if err != nil {
		return c.fail(KindUnexpected, i18n.KeyClientUnexpected, fmt.Errorf("failed to marshal submission: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return c.fail(KindUnexpected, i18n.KeyClientUnexpected, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", c.language.String())

	resp, err := c.client.Do(req)
	if err != nil {
		return c.fail(KindUnreachable, i18n.KeyServiceUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodySize))
		return nil
	}

	// Prefer the relay's own explanation, e.g. a validation message
	message := i18n.Text(c.language, i18n.KeyGenericSendError)
	var result common.StatusResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBodySize)).Decode(&result); err == nil {
		if serverMessage := strings.TrimSpace(result.Error); serverMessage != "" {
			message = serverMessage
		}
	}

	return &TransportError{
		Kind:       KindRejected,
		Message:    message,
		StatusCode: resp.StatusCode,
		cause:      fmt.Errorf("relay returned %s", resp.Status),
	}
}

func (c *Client) fail(kind Kind, key i18n.Key, cause error) *TransportError {
	return &TransportError{
		Kind:    kind,
		Message: i18n.Text(c.language, key),
		cause:   cause,
	}
}
