package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults should succeed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.HistoryLimit != 10 {
		t.Errorf("HistoryLimit = %d, want 10", cfg.HistoryLimit)
	}
	if cfg.CacheTTL != 168*time.Hour {
		t.Errorf("CacheTTL = %v, want 168h", cfg.CacheTTL)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("HISTORY_LIMIT", "5")
	t.Setenv("HARVEST_MIN_DELAY", "1s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.HistoryLimit != 5 {
		t.Errorf("HistoryLimit = %d, want 5", cfg.HistoryLimit)
	}
	if cfg.HarvestMinDelay != time.Second {
		t.Errorf("HarvestMinDelay = %v, want 1s", cfg.HarvestMinDelay)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Empty port", func(c *Config) { c.Port = "" }},
		{"Zero history limit", func(c *Config) { c.HistoryLimit = 0 }},
		{"Negative retries", func(c *Config) { c.HarvestMaxRetries = -1 }},
		{"Min delay above max", func(c *Config) {
			c.HarvestMinDelay = 10 * time.Second
			c.HarvestMaxDelay = time.Second
		}},
		{"Backup endpoint without bucket", func(c *Config) {
			c.BackupEndpoint = "https://accountid.r2.cloudflarestorage.com"
			c.BackupBucket = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should have failed")
			}
		})
	}
}

func TestSearchEnabled(t *testing.T) {
	cfg := &Config{}
	if cfg.SearchEnabled() {
		t.Error("search should be disabled without credentials")
	}

	cfg.GoogleAPIKey = "key"
	if cfg.SearchEnabled() {
		t.Error("search needs both key and engine id")
	}

	cfg.GoogleSearchEngine = "cx"
	if !cfg.SearchEnabled() {
		t.Error("search should be enabled with both credentials")
	}
}
