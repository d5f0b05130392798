package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/denischpt/portfolio/internal/config"
	"github.com/denischpt/portfolio/internal/logging"
	"github.com/denischpt/portfolio/internal/models"
	"github.com/denischpt/portfolio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(webhookURL string) *config.Config {
	return &config.Config{
		Environment:     "test",
		Port:            "0",
		LogLevel:        "info",
		AllowedOrigins:  []string{"https://denischpt-portfolio.fr"},
		DeploymentHost:  "portfolio-git-main.vercel.app",
		WebhookURL:      webhookURL,
		WebhookTimeout:  2 * time.Second,
		WebhookUsername: "Portfolio Bot",
		DefaultLocale:   "fr",
		RateLimitRPS:    0.001,
		RateLimitBurst:  2,
	}
}

func newTestServer(t *testing.T, webhookURL string) (*Server, *bytes.Buffer) {
	t.Helper()
	logs := &bytes.Buffer{}
	cfg := testConfig(webhookURL)
	discord := service.NewDiscordService(service.DiscordConfig{WebhookURL: cfg.WebhookURL, Timeout: cfg.WebhookTimeout})

	srv, err := NewServer(cfg, logging.NewWriterLogger(logs, logging.LevelInfo), Dependencies{Notifier: discord})
	require.NoError(t, err)
	return srv, logs
}

func request(srv *Server, method, path, origin, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

const body = `{"name":"Denis","email":"denis@example.com","message":"Bonjour, un projet ?"}`

func TestPreflight(t *testing.T) {
	srv, _ := newTestServer(t, "")

	tests := []struct {
		name   string
		origin string
		want   string
	}{
		{"static origin", "https://denischpt-portfolio.fr", "https://denischpt-portfolio.fr"},
		{"deployment origin", "https://portfolio-git-main.vercel.app", "https://portfolio-git-main.vercel.app"},
		{"foreign origin", "https://evil.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(srv, http.MethodOptions, "/api/contact", tt.origin, "")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Empty(t, w.Body.String())
			assert.Equal(t, tt.want, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestContactRoundTrip(t *testing.T) {
	var calls int32
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer sink.Close()

	srv, logs := newTestServer(t, sink.URL)

	w := request(srv, http.MethodPost, "/api/contact", "https://denischpt-portfolio.fr", body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Message envoyé avec succès!"}`, w.Body.String())
	assert.Equal(t, "https://denischpt-portfolio.fr", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.NotContains(t, logs.String(), "denis@example.com")
}

func TestContactWithoutWebhook(t *testing.T) {
	srv, logs := newTestServer(t, "")
	assert.Contains(t, logs.String(), "DISCORD_WEBHOOK_URL is not set")

	w := request(srv, http.MethodPost, "/api/contact", "", body)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestContactRateLimited(t *testing.T) {
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer sink.Close()

	srv, _ := newTestServer(t, sink.URL)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, request(srv, http.MethodPost, "/api/contact", "", body).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, request(srv, http.MethodPost, "/api/contact", "", body).Code)
}

func TestContactMisconfiguredNeverRateLimited(t *testing.T) {
	srv, _ := newTestServer(t, "")

	for i := 0; i < 5; i++ {
		w := request(srv, http.MethodPost, "/api/contact", "", body)
		assert.Equal(t, http.StatusInternalServerError, w.Code, "request %d", i)
	}
}

type recordingNotifier struct {
	mu    sync.Mutex
	infos []*service.ContactMessageInfo
}

func (n *recordingNotifier) Configured() bool { return true }

func (n *recordingNotifier) SendContactMessage(_ context.Context, _ models.ContactSubmission, info *service.ContactMessageInfo) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, info)
	return nil
}

func (n *recordingNotifier) lastIP() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.infos) == 0 {
		return ""
	}
	return n.infos[len(n.infos)-1].IPAddress
}

func TestContactForwardedHeaderTrust(t *testing.T) {
	tests := []struct {
		name       string
		proxies    []string
		remoteAddr string
		want       string
	}{
		{"untrusted peer", []string{"10.0.0.0/8"}, "198.51.100.9:1234", "198.51.100.9"},
		{"trusted proxy", []string{"10.0.0.0/8"}, "10.1.2.3:1234", "6.6.6.6"},
		{"no proxies configured", nil, "10.1.2.3:1234", "10.1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("https://discord.example/api/webhooks/1/abc")
			cfg.TrustedProxies = tt.proxies
			notifier := &recordingNotifier{}

			srv, err := NewServer(cfg, logging.NewWriterLogger(&bytes.Buffer{}, logging.LevelInfo), Dependencies{Notifier: notifier})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Forwarded-For", "6.6.6.6")
			req.RemoteAddr = tt.remoteAddr
			w := httptest.NewRecorder()
			srv.Router().ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, notifier.lastIP())
		})
	}
}

func TestInvalidTrustedProxies(t *testing.T) {
	cfg := testConfig("")
	cfg.TrustedProxies = []string{"not-a-cidr"}

	_, err := NewServer(cfg, logging.NewWriterLogger(&bytes.Buffer{}, logging.LevelInfo), Dependencies{Notifier: &recordingNotifier{}})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, "")

	w := request(srv, http.MethodGet, "/health", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"webhook_configured":false`)
}

func TestStartStopsOnCancel(t *testing.T) {
	srv, _ := newTestServer(t, "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
