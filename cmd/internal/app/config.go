package app

import (
	"fmt"
	"strings"
	"time"

	"warasin/cmd/internal/auth/web"
	"warasin/cmd/security/token"
)

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	// Env is "development" or "production".
	Env string

	HTTPAddr  string
	LogLevel  string
	LogFormat string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MaxHeaderBytes    int

	MetricsEnabled bool

	Token token.Config
	Auth  web.Config
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() (Config, error) {
	tokCfg, err := token.LoadConfigFromEnv()
	if err != nil {
		return Config{}, fmt.Errorf("token config: %w", err)
	}

	return Config{
		Env:       strings.ToLower(EnvString("WARASIN_ENV", "development")),
		HTTPAddr:  EnvString("WARASIN_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel:  EnvString("WARASIN_LOG_LEVEL", "info"),
		LogFormat: EnvString("WARASIN_LOG_FORMAT", "json"),

		ReadHeaderTimeout: EnvDuration("WARASIN_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("WARASIN_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("WARASIN_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("WARASIN_HTTP_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:   EnvDuration("WARASIN_HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxHeaderBytes:    EnvInt("WARASIN_HTTP_MAX_HEADER_BYTES", 1<<20),

		MetricsEnabled: EnvBool("WARASIN_METRICS_ENABLED", true),

		Token: tokCfg,
		Auth:  web.LoadConfigFromEnv(),
	}, nil
}

// Production reports whether the gateway runs with production guardrails.
func (c Config) Production() bool {
	return c.Env == "production" || c.Env == "prod"
}
