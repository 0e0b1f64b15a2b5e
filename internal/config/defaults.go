package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "prod",
		Server: ServerConfig{
			Port: 4310,
			Host: "localhost",
		},
		Source: SourceConfig{
			BaseURL:    "https://vileo06.github.io/investliu",
			Timeout:    "10s",
			RetryCount: 2,
			RetryDelay: "1s",
			RateLimit:  10,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/investliu",
			},
			DefaultTTL: "1h",
			QuotesTTL:  "24h",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "./logs/investliu.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}
