package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Source      SourceConfig  `toml:"source"`
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// SourceConfig contains settings for the static JSON data host.
type SourceConfig struct {
	BaseURL    string `toml:"base_url"`
	Timeout    string `toml:"timeout"`
	RetryCount int    `toml:"retry_count"`
	RetryDelay string `toml:"retry_delay"`
	RateLimit  int    `toml:"rate_limit"` // requests per second against the data host
}

// GetTimeout parses and returns the request timeout duration.
func (c *SourceConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GetRetryDelay parses and returns the delay between retry attempts.
func (c *SourceConfig) GetRetryDelay() time.Duration {
	d, err := time.ParseDuration(c.RetryDelay)
	if err != nil {
		return time.Second
	}
	return d
}

// StorageConfig contains storage layer settings.
type StorageConfig struct {
	Badger     BadgerConfig `toml:"badger"`
	DefaultTTL string       `toml:"default_ttl"`
	QuotesTTL  string       `toml:"quotes_ttl"`
}

// GetDefaultTTL parses the default cache TTL.
func (c *StorageConfig) GetDefaultTTL() time.Duration {
	d, err := time.ParseDuration(c.DefaultTTL)
	if err != nil {
		return time.Hour
	}
	return d
}

// GetQuotesTTL parses the quotations cache TTL.
func (c *StorageConfig) GetQuotesTTL() time.Duration {
	d, err := time.ParseDuration(c.QuotesTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// BadgerConfig contains BadgerDB-specific settings.
type BadgerConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files. Missing files are skipped.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	config.Environment = normalizeEnvironment(config.Environment)

	return config, nil
}

// applyEnvOverrides applies LAOLIU_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("LAOLIU_ENV"); env != "" {
		config.Environment = env
	}
	if host := os.Getenv("LAOLIU_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("LAOLIU_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if url := os.Getenv("LAOLIU_BASE_URL"); url != "" {
		config.Source.BaseURL = url
	}
	if path := os.Getenv("LAOLIU_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}
	if level := os.Getenv("LAOLIU_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// IsDevMode returns true when running in development mode. Dev mode
// short-circuits the fetch client to bundled fixture data and must never
// be enabled in production.
func (c *Config) IsDevMode() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "dev"
}

// normalizeEnvironment maps environment aliases to their canonical short
// forms: "development" -> "dev", "production" -> "prod".
func normalizeEnvironment(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "development":
		return "dev"
	case "production":
		return "prod"
	default:
		return env
	}
}

// Validate reports missing or invalid mandatory configuration.
func (c *Config) Validate() []string {
	var issues []string
	if c.Source.BaseURL == "" {
		issues = append(issues, "source.base_url must be set")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}
	if c.Storage.Badger.Path == "" {
		issues = append(issues, "storage.badger.path must be set")
	}
	return issues
}
