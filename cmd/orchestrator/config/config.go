// Package config holds user preferences for the orchestrator client.
// Precedence: command-line flag > environment > config file > default.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds user preferences.
type Config struct {
	APIURL string `json:"api_url" env:"ORCHESTRATOR_API_URL"`
	Theme  string `json:"theme" env:"ORCHESTRATOR_THEME"` // "light", "dark" or "auto"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		APIURL: "http://localhost:8000/api",
		Theme:  "auto",
	}
}

// Dir returns the directory where config and logs are stored.
func Dir() (string, error) {
	// Prefer a project-local .orchestrator directory if present or creatable.
	if cwd, err := os.Getwd(); err == nil {
		localDir := filepath.Join(cwd, ".orchestrator")
		if stat, err := os.Stat(localDir); (err == nil && stat.IsDir()) || os.IsNotExist(err) {
			return localDir, nil
		}
	}

	// Fallback to home-level config.
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".orchestrator"), nil
}

// File returns the full path to the config file.
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LogDir returns the directory log files are written to.
func LogDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}

// Load reads the configuration from disk, then overlays environment
// variables. A missing file is not an error; the defaults apply.
func Load() (Config, error) {
	cfg := DefaultConfig()

	path, err := File()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults
	case err != nil:
		return cfg, err
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return DefaultConfig(), err
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration to disk.
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	path, err := File()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
