package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

const (
	// ConfigFileName is the config file looked up in the working directory
	// when no path is given.
	ConfigFileName = "taskdeck.toml"

	EnvDevelopment = "development"
	EnvProduction  = "production"

	DefaultAddr            = "localhost:3001"
	DefaultDatabasePath    = "taskdeck.db"
	DefaultBusyTimeout     = 5 * time.Second
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultRequestTimeout  = 10 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultSessionLifetime = 30 * 24 * time.Hour
	DefaultBcryptCost      = 10
)

// Config is the server configuration. Values are layered: built-in defaults,
// then the TOML file, then TASKDECK_* environment variables. Command-line
// flags are applied on top by the caller.
type Config struct {
	Env      string         `toml:"env" env:"TASKDECK_ENV"`
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig is the [server] section.
type ServerConfig struct {
	Addr            string        `toml:"addr" env:"TASKDECK_ADDR"`
	ReadTimeout     time.Duration `toml:"read_timeout" env:"TASKDECK_READ_TIMEOUT"`
	WriteTimeout    time.Duration `toml:"write_timeout" env:"TASKDECK_WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `toml:"idle_timeout" env:"TASKDECK_IDLE_TIMEOUT"`
	RequestTimeout  time.Duration `toml:"request_timeout" env:"TASKDECK_REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" env:"TASKDECK_SHUTDOWN_TIMEOUT"`
	AllowedOrigins  []string      `toml:"allowed_origins" env:"TASKDECK_ALLOWED_ORIGINS" envSeparator:","`
}

// DatabaseConfig is the [database] section.
type DatabaseConfig struct {
	Path        string        `toml:"path" env:"TASKDECK_DATABASE_PATH"`
	BusyTimeout time.Duration `toml:"busy_timeout" env:"TASKDECK_DATABASE_BUSY_TIMEOUT"`
}

// AuthConfig is the [auth] section.
type AuthConfig struct {
	SessionLifetime time.Duration `toml:"session_lifetime" env:"TASKDECK_SESSION_LIFETIME"`
	BcryptCost      int           `toml:"bcrypt_cost" env:"TASKDECK_BCRYPT_COST"`
}

// LogConfig is the [log] section.
type LogConfig struct {
	Level  string `toml:"level" env:"TASKDECK_LOG_LEVEL"`
	Format string `toml:"format" env:"TASKDECK_LOG_FORMAT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Env: EnvDevelopment,
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			RequestTimeout:  DefaultRequestTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Database: DatabaseConfig{
			Path:        DefaultDatabasePath,
			BusyTimeout: DefaultBusyTimeout,
		},
		Auth: AuthConfig{
			SessionLifetime: DefaultSessionLifetime,
			BcryptCost:      DefaultBcryptCost,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration from path and the process environment. An
// empty path falls back to ConfigFileName in the working directory, which may
// be absent.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, envMap())
}

// LoadWithEnv is Load with an explicit environment.
func LoadWithEnv(path string, environ map[string]string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = ConfigFileName
	}
	if err := cfg.mergeFile(path, explicit); err != nil {
		return nil, err
	}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), c); err != nil {
		return fmt.Errorf("failed to parse config TOML: %w", err)
	}
	return nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("invalid env %q: must be %s or %s", c.Env, EnvDevelopment, EnvProduction)
	}
	if c.Server.Addr == "" {
		return errors.New("server address cannot be empty")
	}
	if c.Database.Path == "" {
		return errors.New("database path cannot be empty")
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"read_timeout", c.Server.ReadTimeout},
		{"write_timeout", c.Server.WriteTimeout},
		{"idle_timeout", c.Server.IdleTimeout},
		{"request_timeout", c.Server.RequestTimeout},
		{"shutdown_timeout", c.Server.ShutdownTimeout},
		{"session_lifetime", c.Auth.SessionLifetime},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("invalid %s %s: must be positive", d.name, d.value)
		}
	}
	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("invalid busy_timeout %s: must not be negative", c.Database.BusyTimeout)
	}

	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("invalid bcrypt_cost %d: must be between %d and %d", c.Auth.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log format %q: must be text or json", c.Log.Format)
	}
	return nil
}

// Production reports whether the server runs in production mode.
func (c *Config) Production() bool {
	return c.Env == EnvProduction
}

// SlogLevel parses the configured level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", l.Level)
	}
	return level, nil
}

func envMap() map[string]string {
	return env.ToMap(os.Environ())
}
