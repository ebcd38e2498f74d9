// Package config loads the shopfront configuration file.
// Settings live in ~/.config/shopfront/config.toml; every field has a
// working default, so a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings shopfront needs.
type Config struct {
	APIURL         string
	RequestTimeout time.Duration
	LogFile        string
	GuestStorePath string
	Theme          string
}

const (
	defaultConfigPath = "~/.config/shopfront/config.toml"
	defaultAPIURL     = "http://127.0.0.1:8000"
	defaultLogFile    = "~/.local/share/shopfront/shopfront.log"
	defaultGuestStore = "~/.local/share/shopfront/favorites.toml"
	defaultTimeout    = 5 * time.Second
	defaultTheme      = "dark"
)

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	raw, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var doc struct {
		APIURL         string `toml:"api_url"`
		TimeoutSeconds int    `toml:"request_timeout_seconds"`
		LogFile        string `toml:"log_file"`
		GuestStore     string `toml:"guest_store"`
		Theme          string `toml:"theme"`
	}
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(doc.APIURL); v != "" {
		cfg.APIURL = v
	}
	if doc.TimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(doc.TimeoutSeconds) * time.Second
	}
	if v := strings.TrimSpace(doc.LogFile); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(doc.GuestStore); v != "" {
		cfg.GuestStorePath = v
	}
	if v := strings.TrimSpace(doc.Theme); v != "" {
		cfg.Theme = v
	}

	cfg.LogFile = mustExpand(cfg.LogFile)
	cfg.GuestStorePath = mustExpand(cfg.GuestStorePath)
	return cfg, nil
}

func defaults() Config {
	return Config{
		APIURL:         defaultAPIURL,
		RequestTimeout: defaultTimeout,
		LogFile:        defaultLogFile,
		GuestStorePath: defaultGuestStore,
		Theme:          defaultTheme,
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
