package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Run from an empty directory so no taskdeck.toml is picked up.
	t.Chdir(t.TempDir())

	cfg, err := LoadWithEnv("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("expected addr %q, got %q", DefaultAddr, cfg.Server.Addr)
	}
	if cfg.Auth.SessionLifetime != 30*24*time.Hour {
		t.Errorf("expected 30 day sessions, got %s", cfg.Auth.SessionLifetime)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("expected bcrypt cost 10, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Server.RequestTimeout != 10*time.Second {
		t.Errorf("expected 10s request timeout, got %s", cfg.Server.RequestTimeout)
	}
	if cfg.Production() {
		t.Error("expected development by default")
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
env = "production"

[server]
addr = ":8080"
request_timeout = "3s"
allowed_origins = ["https://app.example.com"]

[database]
path = "/var/lib/taskdeck/data.db"

[auth]
session_lifetime = "72h"
bcrypt_cost = 12

[log]
level = "debug"
format = "json"
`)

	cfg, err := LoadWithEnv(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.Production() {
		t.Error("expected production")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected addr :8080, got %q", cfg.Server.Addr)
	}
	if cfg.Server.RequestTimeout != 3*time.Second {
		t.Errorf("expected 3s, got %s", cfg.Server.RequestTimeout)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://app.example.com" {
		t.Errorf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Database.Path != "/var/lib/taskdeck/data.db" {
		t.Errorf("unexpected database path %q", cfg.Database.Path)
	}
	if cfg.Auth.SessionLifetime != 72*time.Hour || cfg.Auth.BcryptCost != 12 {
		t.Errorf("unexpected auth config %+v", cfg.Auth)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("expected json logs, got %q", cfg.Log.Format)
	}

	// Fields missing from the file keep their defaults.
	if cfg.Server.IdleTimeout != DefaultIdleTimeout {
		t.Errorf("expected default idle timeout, got %s", cfg.Server.IdleTimeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":8080"

[database]
path = "file.db"
`)

	cfg, err := LoadWithEnv(path, map[string]string{
		"TASKDECK_ENV":             "production",
		"TASKDECK_DATABASE_PATH":   "env.db",
		"TASKDECK_ALLOWED_ORIGINS": "http://a.test,http://b.test",
		"TASKDECK_BCRYPT_COST":     "11",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected file addr to survive, got %q", cfg.Server.Addr)
	}
	if cfg.Database.Path != "env.db" {
		t.Errorf("expected env database path, got %q", cfg.Database.Path)
	}
	if !cfg.Production() {
		t.Error("expected production from env")
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Errorf("expected 2 origins, got %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Auth.BcryptCost != 11 {
		t.Errorf("expected bcrypt cost 11, got %d", cfg.Auth.BcryptCost)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.toml"), nil)
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeConfig(t, `[server`)
	_, err := LoadWithEnv(path, nil)
	if err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := LoadWithEnv("", map[string]string{"TASKDECK_REQUEST_TIMEOUT": "soon"})
	if err == nil {
		t.Fatal("expected error for malformed duration")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad env", func(c *Config) { c.Env = "staging" }, "invalid env"},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "address"},
		{"empty database", func(c *Config) { c.Database.Path = "" }, "database path"},
		{"zero request timeout", func(c *Config) { c.Server.RequestTimeout = 0 }, "request_timeout"},
		{"zero session lifetime", func(c *Config) { c.Auth.SessionLifetime = 0 }, "session_lifetime"},
		{"negative busy timeout", func(c *Config) { c.Database.BusyTimeout = -time.Second }, "busy_timeout"},
		{"bcrypt too cheap", func(c *Config) { c.Auth.BcryptCost = 2 }, "bcrypt_cost"},
		{"bcrypt too expensive", func(c *Config) { c.Auth.BcryptCost = 32 }, "bcrypt_cost"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}
