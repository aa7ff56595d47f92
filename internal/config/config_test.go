package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/string-analyzer/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	v, err := New("")
	require.NoError(t, err)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Zero(t, cfg.Server.RateLimit)
	assert.Equal(t, 20, cfg.Server.RateBurst)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("STRING_ANALYZER_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("STRING_ANALYZER_STORE_BACKEND", "sqlite")
	t.Setenv("STRING_ANALYZER_LOG_JSON", "true")

	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
addr = ":3000"
write_timeout = "30s"

[log]
level = "debug"

[metrics]
enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "memory", cfg.Store.Backend)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server:  ServerConfig{Addr: ":8080"},
			Store:   StoreConfig{Backend: "memory"},
			Log:     LogConfig{Level: "info"},
			Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
		}
	}

	cfg := base()
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Store.Backend = "redis"
	assert.Equal(t, errors.KindInvalidInput, errors.KindOf(cfg.Validate()))

	cfg = base()
	cfg.Server.Addr = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Log.Level = "chatty"
	assert.Error(t, cfg.Validate())

	for _, path := range []string{"metrics", "/", "/healthz", "/strings", "/strings/", "/strings/stats", "/{x}"} {
		cfg = base()
		cfg.Metrics.Path = path
		assert.Equal(t, errors.KindInvalidInput, errors.KindOf(cfg.Validate()), "path %q", path)
	}

	cfg = base()
	cfg.Metrics.Path = "/internal/metrics"
	assert.NoError(t, cfg.Validate())

	cfg.Metrics.Path = "metrics"

	cfg.Metrics.Enabled = false
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Server.RateLimit = -1
	assert.Error(t, cfg.Validate())

	cfg.Server.RateLimit = 5
	assert.Error(t, cfg.Validate())
	cfg.Server.RateBurst = 1
	assert.NoError(t, cfg.Validate())
}
