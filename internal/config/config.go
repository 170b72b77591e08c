// Package config holds the serve mode's environment configuration and the
// CLI defaults file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config configures the HTTP serve mode. All values come from the
// environment.
type Config struct {
	Port string

	// APIKey enables bearer auth on the /api routes when set.
	APIKey string

	// Upload limits
	MaxUploadBytes int64
}

func Load() Config {
	return Config{
		Port:           envOr("MDP_PORT", "8091"),
		APIKey:         os.Getenv("MDP_API_KEY"),
		MaxUploadBytes: envInt64("MDP_MAX_UPLOAD_BYTES", 10485760), // 10MB
	}
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("MDP_PORT must not be empty")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("MDP_PORT must be numeric: %q", c.Port)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MDP_MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

// Defaults are optional CLI defaults read from ~/.mdp.yaml (or an explicit
// --config path). Missing file means zero defaults.
type Defaults struct {
	// Diary is the diary file used when a command gets no path argument.
	Diary string `yaml:"diary"`
	// SearchMode is the default term combination: "and" or "or".
	SearchMode string `yaml:"search_mode"`
	// TaskFilter is the default tasks view: "all", "finished", "unfinished".
	TaskFilter string `yaml:"task_filter"`
}

// LoadDefaults reads the defaults file at path, or ~/.mdp.yaml when path is
// empty. A missing file yields zero defaults, not an error.
func LoadDefaults(path string) (Defaults, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Defaults{}, nil
		}
		path = filepath.Join(home, ".mdp.yaml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults{}, nil
		}
		return Defaults{}, fmt.Errorf("read config: %w", err)
	}
	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Defaults{}, fmt.Errorf("parse config: %w", err)
	}
	return d, nil
}
