// Package config loads application settings from environment variables,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Import   ImportConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `env:"PORT" default:"8080"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	FrontendPath    string        `env:"FRONTEND_DIST_PATH"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds the sqlite location and gorm log level.
type DatabaseConfig struct {
	Path     string `env:"DB_PATH" default:"./tcg_tracker.db"`
	LogLevel string `env:"GORM_LOG_LEVEL" default:"warn"`
}

// ImportConfig holds legacy import settings.
type ImportConfig struct {
	// RejectsDir is where reject CSVs for API imports are stored.
	RejectsDir string `env:"REJECTS_DIR" default:"./data/rejects"`

	// RulesFile is an optional YAML file extending the built-in lookup tables.
	RulesFile string `env:"IMPORT_RULES_FILE"`

	// RatePerMinute caps API import requests.
	RatePerMinute int `env:"IMPORT_RATE_PER_MINUTE" default:"6"`

	// CatalogCacheSize is the number of per-set card lists kept per run.
	CatalogCacheSize int `env:"CATALOG_CACHE_SIZE" default:"256"`

	// MaxUploadBytes limits the size of an uploaded CSV.
	MaxUploadBytes int64 `env:"IMPORT_MAX_UPLOAD_BYTES" default:"33554432"`
}

// LoggingConfig holds zap settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" default:"info"`
	Format string `env:"LOG_FORMAT" default:"console"`
}

// LoadDotEnv loads a .env file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration is usable and reports every problem
// at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Database.Path == "" {
		errs = append(errs, "DB_PATH is required")
	}
	if c.Import.RatePerMinute <= 0 {
		errs = append(errs, "IMPORT_RATE_PER_MINUTE must be positive")
	}
	if c.Import.CatalogCacheSize <= 0 {
		errs = append(errs, "CATALOG_CACHE_SIZE must be positive")
	}
	if c.Import.MaxUploadBytes <= 0 {
		errs = append(errs, "IMPORT_MAX_UPLOAD_BYTES must be positive")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be console or json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
