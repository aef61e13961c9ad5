// Package config loads and validates the API configuration from the
// environment using Viper. main loads .env with godotenv before calling Load.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// JWTSecret signs and verifies every bearer token. Required.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// AuthEnforcePassword turns on bcrypt checks at login. Off by default,
	// in which case a known active email is enough to log in.
	AuthEnforcePassword bool `mapstructure:"AUTH_ENFORCE_PASSWORD"`
	BcryptCost          int  `mapstructure:"BCRYPT_COST"`

	// RabbitMQURL enables lead events when set.
	RabbitMQURL       string `mapstructure:"RABBITMQ_URL"`
	LeadWorkerEnabled bool   `mapstructure:"LEAD_WORKER_ENABLED"`

	KommoAPIToken string `mapstructure:"KOMMO_API_TOKEN"`
	KommoBaseURL  string `mapstructure:"KOMMO_BASE_URL"`

	MailHost       string `mapstructure:"MAIL_HOST"`
	MailPort       int    `mapstructure:"MAIL_PORT"`
	MailUser       string `mapstructure:"MAIL_USER"`
	MailPass       string `mapstructure:"MAIL_PASS"`
	MailFrom       string `mapstructure:"MAIL_FROM"`
	LeadAlertEmail string `mapstructure:"LEAD_ALERT_EMAIL"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RateLimitPerMinute int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	// TrustProxyHeaders takes the client IP from X-Forwarded-For or
	// X-Real-IP. Enable only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool `mapstructure:"TRUST_PROXY_HEADERS"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	StaleIngestionAfter    time.Duration `mapstructure:"STALE_INGESTION_AFTER"`
	StaleIngestionInterval time.Duration `mapstructure:"STALE_INGESTION_INTERVAL"`
	ShutdownTimeout        time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

// Load builds Config from the environment. Every key needs a default so
// AutomaticEnv picks it up during Unmarshal.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3001")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("AUTH_ENFORCE_PASSWORD", false)
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LEAD_WORKER_ENABLED", true)
	v.SetDefault("KOMMO_API_TOKEN", "")
	v.SetDefault("KOMMO_BASE_URL", "https://api.kommo.com")
	v.SetDefault("MAIL_HOST", "")
	v.SetDefault("MAIL_PORT", 587)
	v.SetDefault("MAIL_USER", "")
	v.SetDefault("MAIL_PASS", "")
	v.SetDefault("MAIL_FROM", "")
	v.SetDefault("LEAD_ALERT_EMAIL", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 100)
	v.SetDefault("TRUST_PROXY_HEADERS", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("STALE_INGESTION_AFTER", 30*time.Minute)
	v.SetDefault("STALE_INGESTION_INTERVAL", time.Minute)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("config: JWT_SECRET must be set")
	}
	if c.Port == "" {
		return errors.New("config: PORT must be set")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return errors.New("config: BCRYPT_COST must be between 4 and 31")
	}
	if c.RateLimitPerMinute <= 0 {
		return errors.New("config: RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.StaleIngestionAfter <= 0 || c.StaleIngestionInterval <= 0 {
		return errors.New("config: STALE_INGESTION_AFTER and STALE_INGESTION_INTERVAL must be positive")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config: LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// AllowedOrigins splits the comma-separated CORS_ALLOWED_ORIGINS.
func (c *Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (c *Config) MailEnabled() bool {
	return c.MailHost != "" && c.LeadAlertEmail != ""
}

func (c *Config) KommoEnabled() bool {
	return c.KommoAPIToken != ""
}
