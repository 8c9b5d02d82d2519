package infra

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"development" validate:"oneof=development production test"`
	AppVersion string `env:"APP_VERSION" envDefault:"1.0.0"`
	Port       string `env:"PORT" envDefault:"5173" validate:"required,numeric"`

	LingoAPIKey  string `env:"LINGODOTDEV_API_KEY"`
	LingoBaseURL string `env:"LINGO_BASE_URL" envDefault:"https://engine.lingo.dev" validate:"url"`

	IntentProvider string `env:"INTENT_PROVIDER" envDefault:"openai" validate:"oneof=openai gemini"`
	OpenAIAPIKey   string `env:"OPENAI_API_KEY"`
	OpenAIModel    string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL  string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1" validate:"url"`
	GeminiAPIKey   string `env:"GEMINI_API_KEY"`
	GeminiModel    string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	StabilityAPIKey       string `env:"STABILITY_API_KEY"`
	StabilityBaseURL      string `env:"STABILITY_BASE_URL" envDefault:"https://api.stability.ai" validate:"url"`
	StabilityOutputFormat string `env:"STABILITY_OUTPUT_FORMAT" envDefault:"png" validate:"oneof=png jpeg webp"`

	ProviderTimeout  time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"60s" validate:"gt=0"`
	HTTPReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"150s" validate:"gt=0"`
	HTTPIdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s" validate:"gt=0"`

	RateLimitPerMin    int      `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30" validate:"gte=0"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
	GeoIPDBPath        string   `env:"GEOIP_DB_PATH"`
	// TrustProxyHeaders takes the client IP from X-Forwarded-For/X-Real-IP.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
}

var configValidator = validator.New()

// LoadConfig loads configuration from environment variables and applies defaults where needed.
// Provider keys are optional here: a missing key is reported by the health
// endpoint and fails the first call that needs it.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.LingoAPIKey = strings.TrimSpace(cfg.LingoAPIKey)
	cfg.OpenAIAPIKey = strings.TrimSpace(cfg.OpenAIAPIKey)
	cfg.GeminiAPIKey = strings.TrimSpace(cfg.GeminiAPIKey)
	cfg.StabilityAPIKey = strings.TrimSpace(cfg.StabilityAPIKey)
	cfg.IntentProvider = strings.ToLower(strings.TrimSpace(cfg.IntentProvider))
	cfg.StabilityOutputFormat = strings.ToLower(strings.TrimSpace(cfg.StabilityOutputFormat))
	origins := cfg.CORSAllowedOrigins[:0]
	for _, origin := range cfg.CORSAllowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	cfg.CORSAllowedOrigins = origins

	if err := configValidator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IntentAPIKey returns the credential of the configured intent provider.
func (c *Config) IntentAPIKey() string {
	if c.IntentProvider == "gemini" {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}
