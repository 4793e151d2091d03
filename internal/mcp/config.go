package mcp

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the configuration for the MCP server
type Config struct {
	StoragePath      string `env:"STORAGE_PATH" env-default:"./storage" env-description:"Storage directory path"`
	StorageTTL       string `env:"STORAGE_TTL" env-default:"24h" env-description:"Default TTL for artifact cleanup (e.g., 24h, 1h30m)"`
	CleanupInterval  string `env:"CLEANUP_INTERVAL" env-default:"1h" env-description:"Interval of the background cleanup, 0 disables it"`
	Port             int    `env:"PORT" env-default:"8080" env-description:"HTTP server port"`
	LogDebug         bool   `env:"DEBUG" env-default:"false" env-description:"Enable debug logging"`
	MaxUploadMB      int    `env:"MAX_UPLOAD_MB" env-default:"100" env-description:"Largest accepted input PDF in megabytes, 0 for no limit"`
	Concurrency      int    `env:"CONCURRENCY" env-default:"4" env-description:"Parallel page serializations per split"`
	StrictValidation bool   `env:"STRICT_VALIDATION" env-default:"false" env-description:"Reject PDFs that only pass relaxed validation"`
	RedactPreview    bool   `env:"REDACT_PREVIEW" env-default:"true" env-description:"Mask emails, phone and card numbers in text previews"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Durations parses the TTL and cleanup interval
func (c Config) Durations() (ttl, interval time.Duration, err error) {
	ttl, err = time.ParseDuration(c.StorageTTL)
	if err != nil {
		return 0, 0, fmt.Errorf("parse TTL: %w", err)
	}
	interval, err = time.ParseDuration(c.CleanupInterval)
	if err != nil {
		return 0, 0, fmt.Errorf("parse cleanup interval: %w", err)
	}
	return ttl, interval, nil
}

// WithStoragePath sets the storage path
func (c Config) WithStoragePath(path string) Config {
	c.StoragePath = path
	return c
}

// WithStorageTTL sets the storage TTL
func (c Config) WithStorageTTL(ttl string) Config {
	c.StorageTTL = ttl
	return c
}

// WithCleanupInterval sets the background cleanup interval
func (c Config) WithCleanupInterval(interval string) Config {
	c.CleanupInterval = interval
	return c
}

// WithPort sets the server port
func (c Config) WithPort(port int) Config {
	c.Port = port
	return c
}

// WithLogDebug enables or disables debug logging
func (c Config) WithLogDebug(debug bool) Config {
	c.LogDebug = debug
	return c
}
