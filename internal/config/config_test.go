package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testConfig = `
app_name: jobtrack-test
run_mode: release

server:
  host: 127.0.0.1
  port: 9090

data:
  mongo_uri: mongodb://db.internal:27017
  database: jobtrack_test

auth:
  jwt_secret: unit-test-secret
  token_expiry: 2h

email:
  provider: smtp
  smtp:
    host: smtp.internal
    port: "587"
    from: noreply@internal

notify:
  workers: 2
  queue_size: 32
`

func writeTestConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// TestLoadConfig verifies values are read from the file.
func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeTestConfig(t))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.AppName != "jobtrack-test" {
		t.Errorf("AppName = %q, want %q", cfg.AppName, "jobtrack-test")
	}
	if !cfg.IsProd() {
		t.Error("IsProd() = false for release mode, want true")
	}
	if cfg.Host != "127.0.0.1" || cfg.Port != 9090 {
		t.Errorf("addr = %s:%d, want 127.0.0.1:9090", cfg.Host, cfg.Port)
	}
	if cfg.Data.MongoURI != "mongodb://db.internal:27017" {
		t.Errorf("MongoURI = %q", cfg.Data.MongoURI)
	}
	if cfg.Data.Database != "jobtrack_test" {
		t.Errorf("Database = %q", cfg.Data.Database)
	}
	if cfg.Auth.JWTSecret != "unit-test-secret" {
		t.Errorf("JWTSecret = %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.TokenExpiry != 2*time.Hour {
		t.Errorf("TokenExpiry = %v, want 2h", cfg.Auth.TokenExpiry)
	}
	if cfg.Email.Provider != "smtp" {
		t.Errorf("email provider = %q, want smtp", cfg.Email.Provider)
	}
	if cfg.Email.SMTP.Host != "smtp.internal" {
		t.Errorf("smtp host = %q", cfg.Email.SMTP.Host)
	}
	if cfg.Notify.Workers != 2 || cfg.Notify.QueueSize != 32 {
		t.Errorf("notify = %+v, want 2 workers / 32 queue", cfg.Notify)
	}
}

// TestLoadConfigDefaults verifies defaults fill in omitted keys.
func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("app_name: minimal\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want default 8080", cfg.Port)
	}
	if cfg.Data.Database != "jobtrack" {
		t.Errorf("Database = %q, want default jobtrack", cfg.Data.Database)
	}
	if cfg.Auth.TokenExpiry != 24*time.Hour {
		t.Errorf("TokenExpiry = %v, want default 24h", cfg.Auth.TokenExpiry)
	}
	if cfg.IsProd() {
		t.Error("IsProd() = true for default mode, want false")
	}
}

// TestLoadConfigMissingFile verifies a missing file is an error.
func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadConfig(missing file) succeeded, want error")
	}
}
