// Package config loads string-analyzer configuration with Viper.
//
// Sources, lowest precedence first: built-in defaults, an optional config
// file (format from its extension), STRING_ANALYZER_* environment variables,
// and flags bound by the CLI.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/rcliao/string-analyzer/internal/errors"
	"github.com/rcliao/string-analyzer/internal/store"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "STRING_ANALYZER"

// Config is the full service configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	RateLimit    float64       `mapstructure:"rate_limit"`
	RateBurst    int           `mapstructure:"rate_burst"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.rate_limit", 0)
	v.SetDefault("server.rate_burst", 20)
	v.SetDefault("store.backend", store.BackendMemory)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// New returns a Viper instance with defaults and environment overrides.
// A non-empty configPath is read as a config file.
func New(configPath string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
		}
	}
	return v, nil
}

// Load reads configuration from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values Viper cannot type-check.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.InvalidInputf("server.addr must not be empty")
	}
	if c.Server.RateLimit < 0 {
		return errors.InvalidInputf("server.rate_limit must not be negative, got %v", c.Server.RateLimit)
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		return errors.InvalidInputf("server.rate_burst must be at least 1 when rate limiting, got %d", c.Server.RateBurst)
	}
	switch c.Store.Backend {
	case store.BackendMemory, store.BackendSQLite:
	default:
		return errors.InvalidInputf("store.backend must be %q or %q, got %q",
			store.BackendMemory, store.BackendSQLite, c.Store.Backend)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.InvalidInputf("log.level: %v", err)
	}
	if c.Metrics.Enabled {
		if err := validateMetricsPath(c.Metrics.Path); err != nil {
			return err
		}
	}
	return nil
}

// apiPaths are served by the HTTP API and cannot host metrics.
var apiPaths = []string{"/", "/strings", "/healthz"}

func validateMetricsPath(path string) error {
	if !strings.HasPrefix(path, "/") {
		return errors.InvalidInputf("metrics.path must start with /, got %q", path)
	}
	if strings.ContainsAny(path, "{} \t\n") {
		return errors.InvalidInputf("metrics.path must be a literal path, got %q", path)
	}
	clean := strings.TrimSuffix(path, "/")
	for _, p := range apiPaths {
		if path == p || clean == p {
			return errors.InvalidInputf("metrics.path %q collides with an API route", path)
		}
	}
	if strings.HasPrefix(path, "/strings/") {
		return errors.InvalidInputf("metrics.path %q collides with an API route", path)
	}
	return nil
}
