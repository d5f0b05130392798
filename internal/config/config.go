package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the contact relay
type Config struct {
	// Server Configuration
	Environment    string   `env:"ENV" envDefault:"development"`
	Port           string   `env:"SERVER_PORT" envDefault:"3001"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFile        string   `env:"LOG_FILE"`
	LogRequests    bool     `env:"LOG_REQUESTS" envDefault:"false"`

	// CORS Configuration
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"https://denischpt-portfolio.fr,https://www.denischpt-portfolio.fr"`
	DeploymentHost string   `env:"VERCEL_URL"`

	// Webhook Configuration
	WebhookURL           string        `env:"DISCORD_WEBHOOK_URL"`
	WebhookTimeout       time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"10s"`
	WebhookUsername      string        `env:"WEBHOOK_USERNAME" envDefault:"Portfolio Bot"`
	NotificationFooter   string        `env:"NOTIFICATION_FOOTER" envDefault:"Portfolio Contact Form - denischpt-portfolio.fr"`
	NotificationTimeZone string        `env:"NOTIFICATION_TIMEZONE" envDefault:"Europe/Paris"`
	DefaultLocale        string        `env:"DEFAULT_LOCALE" envDefault:"fr"`

	// Abuse Protection
	RateLimitRPS       float64 `env:"CONTACT_RATE_LIMIT_RPS" envDefault:"1"`
	RateLimitBurst     int     `env:"CONTACT_RATE_LIMIT_BURST" envDefault:"5"`
	RecaptchaSecretKey string  `env:"RECAPTCHA_SECRET_KEY"`
	RecaptchaMinScore  float64 `env:"RECAPTCHA_MIN_SCORE" envDefault:"0.5"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// ClientConfig configures the transport client and form controller
type ClientConfig struct {
	APIURL         string        `env:"CONTACT_API_URL" envDefault:"http://localhost:3001/api/contact"`
	SendingEnabled bool          `env:"CONTACT_SENDING_ENABLED" envDefault:"true"`
	Locale         string        `env:"CONTACT_LOCALE" envDefault:"fr"`
	Timeout        time.Duration `env:"CONTACT_TIMEOUT" envDefault:"10s"`
	ResetDelay     time.Duration `env:"CONTACT_RESET_DELAY" envDefault:"3s"`
}

// loadDotEnv loads the first .env file found. godotenv never overrides
// variables already present in the process environment.
func loadDotEnv() {
	envLocations := []string{".env"}

	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}
}

// Load loads the relay configuration from environment variables and .env files
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.WebhookURL = strings.TrimSpace(cfg.WebhookURL)

	if cfg.WebhookTimeout <= 0 {
		return nil, fmt.Errorf("WEBHOOK_TIMEOUT must be positive, got %s", cfg.WebhookTimeout)
	}
	if cfg.RateLimitRPS < 0 || cfg.RateLimitBurst < 0 {
		return nil, fmt.Errorf("rate limit settings must be non-negative")
	}

	// Ensure log directory exists
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	return cfg, nil
}

// LoadClient loads the transport client configuration
func LoadClient() (*ClientConfig, error) {
	loadDotEnv()

	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse client config: %w", err)
	}
	if strings.TrimSpace(cfg.APIURL) == "" {
		return nil, fmt.Errorf("CONTACT_API_URL is required")
	}
	return cfg, nil
}

// IsProduction reports whether the relay runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// WebhookConfigured reports whether a webhook destination is set
func (c *Config) WebhookConfigured() bool {
	return c.WebhookURL != ""
}

// CORSOrigins returns the static allowed origins plus the deployment host,
// when one is known.
func (c *Config) CORSOrigins() []string {
	origins := make([]string, 0, len(c.AllowedOrigins)+1)
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}

	host := strings.TrimSpace(c.DeploymentHost)
	if host != "" {
		host = strings.TrimPrefix(host, "https://")
		host = strings.TrimPrefix(host, "http://")
		origins = append(origins, "https://"+strings.TrimRight(host, "/"))
	}
	return origins
}
