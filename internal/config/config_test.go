package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "нет-такого.toml"))
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8000", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "dark", cfg.Theme)
	assert.NotEmpty(t, cfg.LogFile)
	assert.NotEmpty(t, cfg.GuestStorePath)
}

func TestFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_url = "https://shop.example.com"
request_timeout_seconds = 15
theme = "light"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com", cfg.APIURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "light", cfg.Theme)
	// Unset keys keep their defaults.
	assert.NotEmpty(t, cfg.GuestStorePath)
}

func TestMalformedFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("api_url = [неправильно"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestTildeExpansion(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`log_file = "~/logs/shopfront.log"`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "shopfront.log"), cfg.LogFile)
}
