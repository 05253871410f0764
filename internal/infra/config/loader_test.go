package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tally/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader := NewLoaderWithGlobalDir("", t.TempDir())

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_GlobalConfigOnly(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), `
[store]
backend = "sqlite"
path = "/tmp/tally.db"

[timer]
flush = "stop"
`)

	cfg, err := NewLoaderWithGlobalDir("", globalDir).Load()
	require.NoError(t, err)

	assert.Equal(t, domain.BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "/tmp/tally.db", cfg.Store.Path)
	assert.Equal(t, domain.FlushOnStop, cfg.Timer.Flush)
	// Untouched keys keep defaults
	assert.Equal(t, domain.DefaultStoreKey, cfg.Store.Key)
	assert.Equal(t, domain.DefaultRedisAddr, cfg.Store.Redis.Addr)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_ExplicitOverridesGlobal(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), `
[store]
backend = "sqlite"
key = "global"

[log]
level = "debug"
`)
	explicit := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, explicit, `
[store]
backend = "redis"

[store.redis]
addr = "redis:6379"
db = 2
`)

	cfg, err := NewLoaderWithGlobalDir(explicit, globalDir).Load()
	require.NoError(t, err)

	assert.Equal(t, domain.BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "global", cfg.Store.Key)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, domain.DefaultRedisPrefix, cfg.Store.Redis.Prefix)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoader_Load_ExplicitMissing(t *testing.T) {
	_, err := NewLoaderWithGlobalDir(filepath.Join(t.TempDir(), "nope.toml"), t.TempDir()).Load()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), "[store\nbackend=")

	_, err := NewLoaderWithGlobalDir("", globalDir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestLoader_Load_UnknownKeysWarn(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), `
[store]
backend = "file"
colour = "blue"

[extra]
x = 1
`)

	cfg, err := NewLoaderWithGlobalDir("", globalDir).Load()
	require.NoError(t, err)

	joined := strings.Join(cfg.Warnings, "\n")
	assert.Contains(t, joined, "store.colour")
	assert.Contains(t, joined, "extra")
}

func TestLoader_Load_InvalidValuesFallBack(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), `
[store]
backend = "mongo"
key = "  "

[timer]
flush = "sometimes"

[log]
level = "loud"
`)

	cfg, err := NewLoaderWithGlobalDir("", globalDir).Load()
	require.NoError(t, err)

	assert.Equal(t, domain.BackendFile, cfg.Store.Backend)
	assert.Equal(t, domain.DefaultStoreKey, cfg.Store.Key)
	assert.Equal(t, domain.FlushEveryTick, cfg.Timer.Flush)
	assert.Equal(t, domain.DefaultLogLevel, cfg.Log.Level)
	assert.Len(t, cfg.Warnings, 3)
}

func TestNewLoader_UsesEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, "/from/env.toml")
	assert.Equal(t, "/from/env.toml", NewLoader("").explicitPath)
	assert.Equal(t, "/flag.toml", NewLoader("/flag.toml").explicitPath)
}

func TestDefaultDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	dir, err := DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg/data", "tally"), dir)
}

func TestKnownLevel(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error", "WARN"} {
		assert.True(t, knownLevel(lvl), lvl)
	}
	for _, lvl := range []string{"", "trace", "loud"} {
		assert.False(t, knownLevel(lvl), lvl)
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	cfg.Store.Backend = domain.BackendRedis
	cfg.Warnings = []string{"not rendered"}

	out, err := Marshal(cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "not rendered")

	path := filepath.Join(t.TempDir(), "c.toml")
	writeFile(t, path, string(out))
	loaded, err := NewLoaderWithGlobalDir(path, "").Load()
	require.NoError(t, err)
	assert.Equal(t, domain.BackendRedis, loaded.Store.Backend)
	assert.Empty(t, loaded.Warnings)
}
