package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/multicaret/internal/config/loader"
)

// Load returns the defaults overlaid with the file at path and the
// environment, validated. An empty path or a missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup LookupFunc) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := loader.Load(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}
	if err := ApplyEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultDir returns the user configuration directory.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "multicaret")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "multicaret")
}

// DefaultPath returns the first of config.toml, config.yaml and
// config.yml that exists in DefaultDir, or config.toml when none does.
func DefaultPath() string {
	return findConfig(DefaultDir())
}

func findConfig(dir string) string {
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(dir, "config.toml")
}
