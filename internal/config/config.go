// Package config provides application configuration management.
// It loads settings from environment variables (with .env support) and
// provides defaults for the server, data files, collaborators, and the
// harvester.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data configuration
	DataDir             string        // Directory holding catalogs and the harvest cache
	KnowledgeBaseFile   string        // Curated knowledge base (load failure is fatal)
	RegionalCatalogFile string        // Harvested regional catalog (load failure degrades)
	CatalogReload       time.Duration // How often the server re-reads the regional catalog
	CacheTTL            time.Duration // TTL for cached per-source harvest batches

	// Chat configuration
	HistoryLimit     int           // Conversation turns kept per session
	SearchTimeout    time.Duration // Budget for the external search collaborator
	TranslateTimeout time.Duration // Budget for the translation collaborator

	// Google Custom Search collaborator (optional)
	GoogleAPIKey       string
	GoogleSearchEngine string

	// Harvester configuration
	HarvestTimeout    time.Duration
	HarvestMaxRetries int
	HarvestMinDelay   time.Duration // Politeness delay between source requests
	HarvestMaxDelay   time.Duration

	// Error tracking (optional)
	SentryDSN   string
	Environment string

	// Catalog snapshot backup to S3-compatible storage (optional)
	BackupEndpoint  string
	BackupBucket    string
	BackupAccessKey string
	BackupSecretKey string
	BackupKey       string
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then reads from env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		DataDir:             getEnv("DATA_DIR", "./data"),
		KnowledgeBaseFile:   getEnv("KNOWLEDGE_BASE_FILE", "knowledge_base.json"),
		RegionalCatalogFile: getEnv("REGIONAL_CATALOG_FILE", "maharashtra_colleges.json"),
		CatalogReload:       getDurationEnv("CATALOG_RELOAD_INTERVAL", 15*time.Minute),
		CacheTTL:            getDurationEnv("CACHE_TTL", 168*time.Hour), // 7 days

		HistoryLimit:     getIntEnv("HISTORY_LIMIT", 10),
		SearchTimeout:    getDurationEnv("SEARCH_TIMEOUT", 10*time.Second),
		TranslateTimeout: getDurationEnv("TRANSLATE_TIMEOUT", 10*time.Second),

		GoogleAPIKey:       getEnv("GOOGLE_API_KEY", ""),
		GoogleSearchEngine: getEnv("GOOGLE_SEARCH_ENGINE_ID", ""),

		HarvestTimeout:    getDurationEnv("HARVEST_TIMEOUT", 60*time.Second),
		HarvestMaxRetries: getIntEnv("HARVEST_MAX_RETRIES", 3),
		HarvestMinDelay:   getDurationEnv("HARVEST_MIN_DELAY", 2*time.Second),
		HarvestMaxDelay:   getDurationEnv("HARVEST_MAX_DELAY", 5*time.Second),

		SentryDSN:   getEnv("SENTRY_DSN", ""),
		Environment: getEnv("ENVIRONMENT", "production"),

		BackupEndpoint:  getEnv("BACKUP_S3_ENDPOINT", ""),
		BackupBucket:    getEnv("BACKUP_S3_BUCKET", ""),
		BackupAccessKey: getEnv("BACKUP_S3_ACCESS_KEY", ""),
		BackupSecretKey: getEnv("BACKUP_S3_SECRET_KEY", ""),
		BackupKey:       getEnv("BACKUP_S3_KEY", "snapshots/maharashtra_colleges.json.zst"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("DATA_DIR is required"))
	}
	if c.HistoryLimit <= 0 {
		errs = append(errs, fmt.Errorf("HISTORY_LIMIT must be positive, got %d", c.HistoryLimit))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must be positive, got %v", c.CacheTTL))
	}
	if c.HarvestMaxRetries < 0 {
		errs = append(errs, fmt.Errorf("HARVEST_MAX_RETRIES cannot be negative, got %d", c.HarvestMaxRetries))
	}
	if c.HarvestMinDelay > c.HarvestMaxDelay {
		errs = append(errs, fmt.Errorf("HARVEST_MIN_DELAY %v exceeds HARVEST_MAX_DELAY %v",
			c.HarvestMinDelay, c.HarvestMaxDelay))
	}
	if c.BackupEndpoint != "" && c.BackupBucket == "" {
		errs = append(errs, errors.New("BACKUP_S3_BUCKET is required when BACKUP_S3_ENDPOINT is set"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// KnowledgeBasePath returns the full path to the knowledge base file.
func (c *Config) KnowledgeBasePath() string {
	return filepath.Join(c.DataDir, c.KnowledgeBaseFile)
}

// RegionalCatalogPath returns the full path to the regional catalog file.
func (c *Config) RegionalCatalogPath() string {
	return filepath.Join(c.DataDir, c.RegionalCatalogFile)
}

// CachePath returns the full path to the harvest cache database.
func (c *Config) CachePath() string {
	return filepath.Join(c.DataDir, "harvest_cache.db")
}

// SearchEnabled reports whether the Google Custom Search collaborator is
// configured.
func (c *Config) SearchEnabled() bool {
	return c.GoogleAPIKey != "" && c.GoogleSearchEngine != ""
}

// BackupEnabled reports whether catalog snapshot upload is configured.
func (c *Config) BackupEnabled() bool {
	return c.BackupEndpoint != "" && c.BackupBucket != "" &&
		c.BackupAccessKey != "" && c.BackupSecretKey != ""
}

// getEnv retrieves an environment variable with a fallback default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves an integer environment variable with a fallback default.
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves a duration environment variable with a fallback default.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
