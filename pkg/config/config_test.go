package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Port != "8090" {
		t.Errorf("Expected Port to be 8090, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Gateway.MinRequestInterval != 500*time.Millisecond {
		t.Errorf("Expected MinRequestInterval to be 500ms, got %s", cfg.Gateway.MinRequestInterval)
	}

	if cfg.Gateway.MaxRetries != 3 {
		t.Errorf("Expected MaxRetries to be 3, got %d", cfg.Gateway.MaxRetries)
	}

	if cfg.Batch.Workers != 8 {
		t.Errorf("Expected Batch.Workers to be 8, got %d", cfg.Batch.Workers)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("ENV", "production")
	os.Setenv("GATEWAY_MIN_INTERVAL", "250ms")
	os.Setenv("GATEWAY_QUOTE_TTL", "30s")
	os.Setenv("BATCH_WORKERS", "16")
	os.Setenv("LOG_LEVEL", "info")

	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("ENV")
		os.Unsetenv("GATEWAY_MIN_INTERVAL")
		os.Unsetenv("GATEWAY_QUOTE_TTL")
		os.Unsetenv("BATCH_WORKERS")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.Gateway.MinRequestInterval != 250*time.Millisecond {
		t.Errorf("Expected MinRequestInterval to be 250ms, got %s", cfg.Gateway.MinRequestInterval)
	}

	if cfg.Gateway.QuoteTTL != 30*time.Second {
		t.Errorf("Expected QuoteTTL to be 30s, got %s", cfg.Gateway.QuoteTTL)
	}

	if cfg.Batch.Workers != 16 {
		t.Errorf("Expected Batch.Workers to be 16, got %d", cfg.Batch.Workers)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel to be info, got %s", cfg.LogLevel)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "invalid env",
			modify: func(c *Config) {
				c.Env = "testing"
			},
			wantErr: true,
		},
		{
			name: "db enabled without url",
			modify: func(c *Config) {
				c.Database.Enabled = true
				c.Database.URL = ""
			},
			wantErr: true,
		},
		{
			name: "zero min interval",
			modify: func(c *Config) {
				c.Gateway.MinRequestInterval = 0
			},
			wantErr: true,
		},
		{
			name: "zero workers",
			modify: func(c *Config) {
				c.Batch.Workers = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Env: "development",
				Gateway: GatewayConfig{
					MinRequestInterval: 500 * time.Millisecond,
				},
				Batch: BatchConfig{Workers: 8},
			}
			tt.modify(cfg)

			err := cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
