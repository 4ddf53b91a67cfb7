package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const DefaultPrefsPath = "~/.config/framedata/prefs.yaml"

// Config holds settings read from FRAMEDATA_* environment variables
type Config struct {
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogDev      bool   `envconfig:"LOG_DEV" default:"false"`
	PrefsPath   string `envconfig:"PREFS" default:"~/.config/framedata/prefs.yaml"`
	MetricsFile string `envconfig:"METRICS_FILE"`
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("framedata", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// PrefsPath returns the preferences path from FRAMEDATA_PREFS,
// falling back to DefaultPrefsPath.
func PrefsPath() string {
	if env := os.Getenv("FRAMEDATA_PREFS"); env != "" {
		return env
	}
	return DefaultPrefsPath
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
