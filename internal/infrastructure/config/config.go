package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all host configuration.
type Config struct {
	Server    ServerConfig
	Editor    EditorConfig
	Discovery DiscoveryConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8600"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// EditorConfig holds the Office Online embed configuration.
type EditorConfig struct {
	// URL is the static editor URL, used when discovery is disabled.
	URL string `envconfig:"EDITOR_URL"`
	// Origin restricts outbound postMessage delivery.
	Origin string `envconfig:"EDITOR_ORIGIN"`
	// ServiceID tags telemetry records.
	ServiceID string `envconfig:"SERVICE_ID" default:"office_online"`
	// AppType selects the editor app: word, excel, powerpoint.
	AppType string `envconfig:"APP_TYPE" default:"excel"`
	// FileExtension is appended to renamed files in the document title.
	FileExtension string `envconfig:"FILE_EXTENSION" default:"xlsx"`
	// Locale selects the string catalog entry.
	Locale string `envconfig:"LOCALE" default:"en"`
}

// DiscoveryConfig holds discovery service configuration.
type DiscoveryConfig struct {
	BaseURL  string        `envconfig:"DISCOVERY_URL"`
	Enabled  bool          `envconfig:"DISCOVERY_ENABLED" default:"false"`
	CacheTTL time.Duration `envconfig:"DISCOVERY_CACHE_TTL" default:"12h"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"50"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"100"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints the struct tags cannot express.
func (c *Config) Validate() error {
	if !c.Discovery.Enabled && c.Editor.URL == "" {
		return fmt.Errorf("EDITOR_URL is required when discovery is disabled")
	}
	if c.Discovery.Enabled && c.Discovery.BaseURL == "" {
		return fmt.Errorf("DISCOVERY_URL is required when discovery is enabled")
	}
	return nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8600",
			Host: "0.0.0.0",
		},
		Editor: EditorConfig{
			ServiceID:     "office_online",
			AppType:       "excel",
			FileExtension: "xlsx",
			Locale:        "en",
		},
		Discovery: DiscoveryConfig{
			Enabled:  false,
			CacheTTL: 12 * time.Hour,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
			Enabled:           true,
		},
	}
}
