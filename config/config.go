package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingAPIKey EXCHANGE_API_KEY is not set
var ErrMissingAPIKey = errors.New("EXCHANGE_API_KEY is not set")

// Config holds application configuration.
type Config struct {
	// APIKey exchangerate-api.com key
	APIKey string
	// APIURL base URL of the rate provider
	APIURL string
	// APITimeout HTTP timeout for provider calls
	APITimeout time.Duration

	// ListenAddr address the HTTP server binds to
	ListenAddr string

	// LogLevel one of debug, info, warn, error
	LogLevel string
	// LogFormat logfmt or json
	LogFormat string
}

// Load reads configuration from the environment, after loading a .env file if there is one.
// Real environment variables win over the .env file.
func Load(envFiles ...string) (*Config, error) {
	// a missing .env file is fine
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.SetDefault("EXCHANGE_API_KEY", "")
	v.SetDefault("EXCHANGE_API_URL", "https://v6.exchangerate-api.com/v6")
	v.SetDefault("EXCHANGE_API_TIMEOUT", "5s")
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "logfmt")
	v.AutomaticEnv()

	cfg := &Config{
		APIKey:     v.GetString("EXCHANGE_API_KEY"),
		APIURL:     v.GetString("EXCHANGE_API_URL"),
		ListenAddr: v.GetString("LISTEN_ADDR"),
		LogLevel:   strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:  strings.ToLower(v.GetString("LOG_FORMAT")),
	}

	timeout, err := time.ParseDuration(v.GetString("EXCHANGE_API_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("EXCHANGE_API_TIMEOUT: %w", err)
	}
	cfg.APITimeout = timeout

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values Load cannot default
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("EXCHANGE_API_TIMEOUT must be positive, got %v", c.APITimeout)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL: unknown level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "logfmt", "json":
	default:
		return fmt.Errorf("LOG_FORMAT: unknown format %q", c.LogFormat)
	}
	return nil
}
