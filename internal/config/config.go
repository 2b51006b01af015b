// Package config loads process-wide settings once at startup.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds everything the adapter reads from the environment. Provider
// credentials are not here: callers send them with every request.
type Config struct {
	Port     string
	LogLevel string

	// Inbound auth for the order endpoints.
	APIKey string

	// Relay target for normalized webhook events.
	RelayURL     string
	RelaySecret  string
	RelayTimeout time.Duration

	ProviderBaseURL       string
	ProviderWebhookSecret string
	ProviderTimeout       time.Duration

	// Optional; when set the event feed uses Redis pub/sub.
	RedisURL string
}

const (
	DefaultRelayURL    = "https://api.ssppos.com/webhooks/external"
	DefaultProviderURL = "https://openapi.doordash.com"
)

// Load reads an optional .env file, an optional adapter.yaml and the process
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("adapter")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("PORT", "3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SSP_WEBHOOK_URL", DefaultRelayURL)
	v.SetDefault("DOORDASH_API_URL", DefaultProviderURL)
	v.SetDefault("PROVIDER_TIMEOUT", 10*time.Second)
	v.SetDefault("RELAY_TIMEOUT", 5*time.Second)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read adapter.yaml")
		}
	}

	cfg := &Config{
		Port:                  v.GetString("PORT"),
		LogLevel:              v.GetString("LOG_LEVEL"),
		APIKey:                v.GetString("SSP_API_KEY"),
		RelayURL:              v.GetString("SSP_WEBHOOK_URL"),
		RelaySecret:           v.GetString("SSP_WEBHOOK_SECRET"),
		RelayTimeout:          v.GetDuration("RELAY_TIMEOUT"),
		ProviderBaseURL:       strings.TrimRight(v.GetString("DOORDASH_API_URL"), "/"),
		ProviderWebhookSecret: v.GetString("DOORDASH_WEBHOOK_SECRET"),
		ProviderTimeout:       v.GetDuration("PROVIDER_TIMEOUT"),
		RedisURL:              v.GetString("REDIS_URL"),
	}
	if cfg.ProviderTimeout <= 0 {
		return nil, errors.Errorf("PROVIDER_TIMEOUT must be > 0, got %s", cfg.ProviderTimeout)
	}
	if cfg.RelayTimeout <= 0 {
		return nil, errors.Errorf("RELAY_TIMEOUT must be > 0, got %s", cfg.RelayTimeout)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + c.Port }
