package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/denischpt/portfolio/internal/api/dto/common"
	"github.com/denischpt/portfolio/internal/api/middleware"
	"github.com/denischpt/portfolio/internal/i18n"
	"github.com/denischpt/portfolio/internal/logging"
	"github.com/denischpt/portfolio/internal/models"
	"github.com/denischpt/portfolio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeNotifier struct {
	mu         sync.Mutex
	configured bool
	err        error
	calls      int
	last       models.ContactSubmission
	lastInfo   *service.ContactMessageInfo
}

func (f *fakeNotifier) Configured() bool { return f.configured }

func (f *fakeNotifier) SendContactMessage(_ context.Context, sub models.ContactSubmission, info *service.ContactMessageInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = sub
	f.lastInfo = info
	return f.err
}

func (f *fakeNotifier) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type relayFixture struct {
	router *gin.Engine
	logs   *bytes.Buffer
}

func newRelay(t *testing.T, cfg ContactHandlerConfig) relayFixture {
	t.Helper()
	logs := &bytes.Buffer{}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewWriterLogger(logs, logging.LevelInfo)
	}

	handler := NewContactHandler(cfg)
	handler.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC) }

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Language(language.French))
	router.Any("/api/contact", handler.Submit)
	return relayFixture{router: router, logs: logs}
}

func (r relayFixture) do(method, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.router.ServeHTTP(w, req)
	return w
}

func decodeStatus(t *testing.T, w *httptest.ResponseRecorder) common.StatusResponse {
	t.Helper()
	var resp common.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

const validBody = `{"name":"  Al  ","email":"Al@Example.COM","message":"  Hello there "}`

func TestSubmitPreflight(t *testing.T) {
	// Preflight is answered before the webhook configuration is looked at
	notifier := &fakeNotifier{}
	relay := newRelay(t, ContactHandlerConfig{Notifier: notifier})

	w := relay.do(http.MethodOptions, "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Zero(t, notifier.Calls())
}

func TestSubmitMethodNotAllowed(t *testing.T) {
	notifier := &fakeNotifier{configured: true}
	relay := newRelay(t, ContactHandlerConfig{Notifier: notifier})

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			w := relay.do(method, validBody, nil)

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			resp := decodeStatus(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, "Méthode non autorisée", resp.Error)
		})
	}
	assert.Zero(t, notifier.Calls())
}

func TestSubmitNotConfigured(t *testing.T) {
	notifier := &fakeNotifier{configured: false}
	relay := newRelay(t, ContactHandlerConfig{Notifier: notifier})

	// Configuration is checked before the body, so invalid input gets the same answer
	for _, body := range []string{validBody, `{"name":"A"}`} {
		relay.logs.Reset()
		w := relay.do(http.MethodPost, body, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeStatus(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, i18n.Text(language.French, i18n.KeyServiceMisconfigured), resp.Error)
		assert.Equal(t, 1, strings.Count(relay.logs.String(), "[ERROR]"))
		assert.Contains(t, relay.logs.String(), "DISCORD_WEBHOOK_URL")
	}
	assert.Zero(t, notifier.Calls())
}

func TestGuardRunsBeforeRateLimit(t *testing.T) {
	tests := []struct {
		name       string
		configured bool
		want       []int
	}{
		{"misconfigured relay never throttled", false, []int{http.StatusInternalServerError, http.StatusInternalServerError, http.StatusInternalServerError}},
		{"configured relay throttled past burst", true, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &fakeNotifier{configured: tt.configured}
			handler := NewContactHandler(ContactHandlerConfig{
				Notifier: notifier,
				Logger:   logging.NewWriterLogger(&bytes.Buffer{}, logging.LevelInfo),
			})

			router := gin.New()
			router.Use(middleware.Language(language.French))
			router.Any("/api/contact",
				handler.Guard,
				middleware.RateLimitMiddleware(middleware.RateLimitConfig{RPS: 0.001, Burst: 1}),
				handler.Submit,
			)
			relay := relayFixture{router: router}

			for i, want := range tt.want {
				assert.Equal(t, want, relay.do(http.MethodPost, validBody, nil).Code, "request %d", i)
			}
			// Preflights are answered by the guard
			assert.Equal(t, http.StatusOK, relay.do(http.MethodOptions, "", nil).Code)
		})
	}
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want i18n.Key
	}{
		{"empty body", ``, i18n.KeyNameTooShort},
		{"empty object", `{}`, i18n.KeyNameTooShort},
		{"name padded to one char", `{"name":" a ","email":"a@b.co","message":"Hello"}`, i18n.KeyNameTooShort},
		{"name checked before email", `{"name":"A","email":"bad","message":"Hi"}`, i18n.KeyNameTooShort},
		{"bad email", `{"name":"Al","email":"a@b","message":"Hello"}`, i18n.KeyInvalidEmail},
		{"email with space", `{"name":"Al","email":"a b@c.co","message":"Hello"}`, i18n.KeyInvalidEmail},
		{"padded email checked before trimming", `{"name":"Al","email":"  a@b.co ","message":"Hello"}`, i18n.KeyInvalidEmail},
		{"short message", `{"name":"Al","email":"a@b.co","message":"Hiya"}`, i18n.KeyMessageTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &fakeNotifier{configured: true}
			relay := newRelay(t, ContactHandlerConfig{Notifier: notifier})

			w := relay.do(http.MethodPost, tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeStatus(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, i18n.Text(language.French, tt.want), resp.Error)
			assert.Zero(t, notifier.Calls())
		})
	}
}

func TestSubmitInvalidJSON(t *testing.T) {
	notifier := &fakeNotifier{configured: true}
	relay := newRelay(t, ContactHandlerConfig{Notifier: notifier})

	w := relay.do(http.MethodPost, `{"name":`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, i18n.Text(language.French, i18n.KeyInvalidBody), decodeStatus(t, w).Error)
	assert.Zero(t, notifier.Calls())
}

func TestSubmitSuccess(t *testing.T) {
	notifier := &fakeNotifier{configured: true}
	relay := newRelay(t, ContactHandlerConfig{Notifier: notifier})

	w := relay.do(http.MethodPost, validBody, map[string]string{
		"X-Forwarded-For": "203.0.113.7, 10.0.0.1",
		"User-Agent":      "test-agent",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeStatus(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "Message envoyé avec succès!", resp.Message)
	assert.Empty(t, resp.Error)

	require.Equal(t, 1, notifier.Calls())
	assert.Equal(t, models.ContactSubmission{Name: "Al", Email: "al@example.com", Message: "Hello there"}, notifier.last)
	assert.Equal(t, "203.0.113.7", notifier.lastInfo.IPAddress)
	assert.Equal(t, "test-agent", notifier.lastInfo.UserAgent)
	assert.NotEmpty(t, notifier.lastInfo.RequestID)

	logs := relay.logs.String()
	assert.Contains(t, logs, "a***@example.com")
	assert.NotContains(t, logs, "al@example.com")
}

func TestSubmitLocalizedEnglish(t *testing.T) {
	notifier := &fakeNotifier{configured: true}
	relay := newRelay(t, ContactHandlerConfig{Notifier: notifier})

	w := relay.do(http.MethodPost, validBody, map[string]string{"Accept-Language": "en-GB,en;q=0.9"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Message sent successfully!", decodeStatus(t, w).Message)
}

func TestSubmitSinkRejected(t *testing.T) {
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream overloaded", http.StatusServiceUnavailable)
	}))
	defer sink.Close()

	discord := service.NewDiscordService(service.DiscordConfig{WebhookURL: sink.URL, Timeout: 2 * time.Second})
	relay := newRelay(t, ContactHandlerConfig{Notifier: discord})

	w := relay.do(http.MethodPost, validBody, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeStatus(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, i18n.Text(language.French, i18n.KeySendFailed), resp.Error)
	assert.NotContains(t, w.Body.String(), "503")
	assert.NotContains(t, w.Body.String(), "upstream")

	assert.Contains(t, relay.logs.String(), "503")
}

func TestSubmitSinkUnreachable(t *testing.T) {
	notifier := &fakeNotifier{
		configured: true,
		err:        errors.Join(service.ErrSinkUnreachable, errors.New("dial tcp: connection refused")),
	}
	relay := newRelay(t, ContactHandlerConfig{Notifier: notifier})

	w := relay.do(http.MethodPost, validBody, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, i18n.Text(language.French, i18n.KeyUnexpectedError), decodeStatus(t, w).Error)
	assert.NotContains(t, w.Body.String(), "dial tcp")
	assert.Contains(t, relay.logs.String(), "connection refused")
}

func TestSubmitCaptcha(t *testing.T) {
	verifier := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		ok := r.PostForm.Get("response") == "good-token"
		_ = json.NewEncoder(w).Encode(map[string]any{"success": ok, "score": 0.9})
	}))
	defer verifier.Close()

	tests := []struct {
		name      string
		body      string
		wantCode  int
		wantCalls int
	}{
		{"missing token", validBody, http.StatusBadRequest, 0},
		{"rejected token", `{"name":"Al","email":"a@b.co","message":"Hello","recaptcha_token":"bad"}`, http.StatusBadRequest, 0},
		{"valid token", `{"name":"Al","email":"a@b.co","message":"Hello","recaptcha_token":"good-token"}`, http.StatusOK, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &fakeNotifier{configured: true}
			relay := newRelay(t, ContactHandlerConfig{
				Notifier:          notifier,
				Recaptcha:         service.NewRecaptchaService("secret", verifier.URL, time.Second),
				RecaptchaMinScore: 0.5,
			})

			w := relay.do(http.MethodPost, tt.body, nil)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantCalls, notifier.Calls())
			if tt.wantCode == http.StatusBadRequest {
				assert.Equal(t, i18n.Text(language.French, i18n.KeyCaptchaFailed), decodeStatus(t, w).Error)
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	router := gin.New()
	router.Use(middleware.Language(language.French))
	router.GET("/health", NewHealthHandler(&fakeNotifier{configured: true}).Check)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["webhook_configured"])
}
