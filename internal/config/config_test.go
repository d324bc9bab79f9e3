package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	fs := Flags()
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "localhost:8594", cfg.Addr)
	assert.Equal(t, "braingym.db", cfg.DBPath)
	assert.Equal(t, "repos", cfg.ReposDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFlagsOverride(t *testing.T) {
	fs := Flags()
	require.NoError(t, fs.Parse([]string{"--addr", "127.0.0.1:9000", "--log-level", "debug"}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BRAINGYM_LOG_LEVEL", "warn")

	fs := Flags()
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "braingym.yml")
	require.NoError(t, os.WriteFile(path, []byte("addr: 127.0.0.1:7777\ndb: custom.db\n"), 0o644))

	fs := Flags()
	require.NoError(t, fs.Parse([]string{"--config", path}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7777", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	// Unset keys keep their flag defaults.
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	fs := Flags()
	require.NoError(t, fs.Parse([]string{"--log-level", "loud"}))

	_, err := Load(fs)
	assert.Error(t, err)
}
