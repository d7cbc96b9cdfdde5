// Package config loads and persists the small per-user settings file used by
// the submit tool: the server URL and the student's email.
// The file lives at ~/.aibootcamp/config.json. It is loaded once at startup
// into an explicit value and passed down the call chain; nothing reads it as
// ambient state afterwards. Credentials are never written to it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultServerURL is used when neither a flag nor a saved config provides
// a server.
const DefaultServerURL = "http://localhost"

const (
	dirName  = ".aibootcamp"
	fileName = "config.json"
)

// Config is the persisted settings value.
type Config struct {
	ServerURL string `json:"server_url"`
	Email     string `json:"email"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{ServerURL: DefaultServerURL}
}

// Dir returns the per-user settings directory (~/.aibootcamp).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Path resolves the config file location, honoring an explicit override.
func Path(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the config file ("" means the default path). A missing file
// yields defaults; a corrupt file yields defaults after a warning on stderr.
func Load(path string) *Config {
	cfg := DefaultConfig()
	path, err := Path(path)
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring corrupt config %s: %v\n", path, err)
		return DefaultConfig()
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	return cfg
}

// Save writes cfg to the config file ("" means the default path), creating
// the settings directory as needed. The file is user-only readable.
func Save(cfg *Config, path string) error {
	path, err := Path(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// TempDir returns the scratch directory used for archives awaiting upload
// (~/.aibootcamp/temp), creating it if needed.
func TempDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	tmp := filepath.Join(dir, "temp")
	if err := os.MkdirAll(tmp, 0755); err != nil {
		return "", fmt.Errorf("cannot create temp directory: %w", err)
	}
	return tmp, nil
}
