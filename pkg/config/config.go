// Package config handles loading and saving curio configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/curio/config.yaml
//   - State:   ~/.local/state/curio/ (profile cache)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// APIConfig holds connection settings for the CRM backend.
type APIConfig struct {
	BaseURL   string `yaml:"base_url,omitempty"`
	Token     string `yaml:"token,omitempty"`      // inline token; TokenPath wins when both set
	TokenPath string `yaml:"token_path,omitempty"` // file containing the bearer token
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	Theme     string `yaml:"theme,omitempty"`      // dark, light, auto
	StartPage string `yaml:"start_page,omitempty"` // page shown on launch
}

// WalkthroughConfig controls the guided tour.
type WalkthroughConfig struct {
	Disabled  bool   `yaml:"disabled,omitempty"`   // never auto-start tours
	StepsPath string `yaml:"steps_path,omitempty"` // YAML overriding the built-in steps
}

// Config is the top-level configuration for curio.
type Config struct {
	API         APIConfig         `yaml:"api,omitempty"`
	UI          UIConfig          `yaml:"ui,omitempty"`
	Walkthrough WalkthroughConfig `yaml:"walkthrough,omitempty"`
	Offline     bool              `yaml:"offline,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8420",
		},
		UI: UIConfig{
			Theme:     "auto",
			StartPage: "dashboard",
		},
	}
}

// ConfigDir returns the XDG config directory for curio.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "curio")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "curio")
}

// StateDir returns the XDG state directory for curio.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "curio")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "curio")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// CachePath returns the path of the local profile cache database.
func CachePath() string {
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "profile.db")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.API.TokenPath = expandHome(cfg.API.TokenPath)
	cfg.Walkthrough.StepsPath = expandHome(cfg.Walkthrough.StepsPath)

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ResolveToken returns the bearer token for the backend. A token file
// takes precedence over the inline value, and the CURIO_TOKEN
// environment variable beats both.
func (c Config) ResolveToken() (string, error) {
	if tok := os.Getenv("CURIO_TOKEN"); tok != "" {
		return tok, nil
	}
	if c.API.TokenPath != "" {
		data, err := os.ReadFile(c.API.TokenPath)
		if err != nil {
			return "", fmt.Errorf("reading token file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return c.API.Token, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
