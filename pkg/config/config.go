package config

import (
	"context"
	"time"
)

// Config represents the complete configuration of the products client.
type Config struct {
	API     APIConfig     `koanf:"api"     validate:"required"`
	CLI     CLIConfig     `koanf:"cli"`
	Runtime RuntimeConfig `koanf:"runtime" validate:"required"`
	UI      UIConfig      `koanf:"ui"      validate:"required"`
}

// APIConfig describes how the client reaches the products REST API.
type APIConfig struct {
	BaseURL string        `koanf:"base_url" validate:"required,http_url" env:"PRODUCTS_API_BASE_URL"`
	Timeout time.Duration `koanf:"timeout"  validate:"min=0"             env:"PRODUCTS_API_TIMEOUT"`
	Debug   bool          `koanf:"debug"                                  env:"PRODUCTS_API_DEBUG"`
}

// CLIConfig contains command line behavior configuration.
type CLIConfig struct {
	DefaultFormat string `koanf:"default_format" validate:"oneof=json tui auto" env:"PRODUCTS_CLI_DEFAULT_FORMAT"`
	Interactive   bool   `koanf:"interactive"                                   env:"PRODUCTS_CLI_INTERACTIVE"`
	NoColor       bool   `koanf:"no_color"                                      env:"PRODUCTS_CLI_NO_COLOR"`
}

// RuntimeConfig contains logging configuration.
type RuntimeConfig struct {
	LogLevel  string `koanf:"log_level"  validate:"oneof=debug info warn error disabled" env:"PRODUCTS_LOG_LEVEL"`
	LogJSON   bool   `koanf:"log_json"                                                   env:"PRODUCTS_LOG_JSON"`
	LogSource bool   `koanf:"log_source"                                                 env:"PRODUCTS_LOG_SOURCE"`
	LogFile   string `koanf:"log_file"                                                   env:"PRODUCTS_LOG_FILE"`
}

// UIConfig contains presentation settings of the products view.
type UIConfig struct {
	NotificationTimeout time.Duration `koanf:"notification_timeout" validate:"gt=0"  env:"PRODUCTS_UI_NOTIFICATION_TIMEOUT"`
	PageSize            int           `koanf:"page_size"            validate:"min=1" env:"PRODUCTS_UI_PAGE_SIZE"`
}

// Service defines the interface for configuration management.
type Service interface {
	// Load loads configuration from the specified sources with precedence order.
	Load(ctx context.Context, sources ...Source) (*Config, error)
	// Validate checks if the configuration meets all validation requirements.
	Validate(config *Config) error
	// GetSource returns the source type for a specific configuration key.
	GetSource(key string) SourceType
}

// Source defines the interface for configuration sources.
type Source interface {
	// Load reads configuration from the source.
	Load() (map[string]any, error)
	// Type returns the source type identifier.
	Type() SourceType
}

// SourceType identifies the type of configuration source.
type SourceType string

const (
	SourceCLI     SourceType = "cli"
	SourceYAML    SourceType = "yaml"
	SourceEnv     SourceType = "env"
	SourceDefault SourceType = "default"
)

// Metadata contains metadata about configuration sources.
type Metadata struct {
	Sources  map[string]SourceType `json:"sources"`
	LoadedAt time.Time             `json:"loaded_at"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:3000/api",
			Timeout: 0,
		},
		CLI: CLIConfig{
			DefaultFormat: "auto",
		},
		Runtime: RuntimeConfig{
			LogLevel: "info",
		},
		UI: UIConfig{
			NotificationTimeout: 6 * time.Second,
			PageSize:            5,
		},
	}
}
