// Package prefsfile stores user preferences in a YAML file
package prefsfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"framedata/internal/config"
	"framedata/internal/domain"
	"framedata/internal/ports"
)

// Store implements ports.PrefsStore on a single YAML file
type Store struct {
	path   string
	logger *zap.Logger
}

// Ensure Store implements PrefsStore
var _ ports.PrefsStore = (*Store)(nil)

// New creates a store for path. A leading ~ is expanded to the home directory.
func New(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	expanded, err := config.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	return &Store{
		path:   expanded,
		logger: logger.With(zap.String("component", "prefsfile")),
	}, nil
}

// Path returns the resolved file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the preferences. A missing file yields the defaults; keys absent
// from the file keep their default values.
func (s *Store) Load() (domain.Prefs, error) {
	prefs := domain.DefaultPrefs()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no preferences file, using defaults", zap.String("path", s.path))
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("failed to read preferences: %w", err)
	}

	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return domain.DefaultPrefs(), fmt.Errorf("failed to parse preferences %s: %w", s.path, err)
	}

	if prefs.ProxyMode == "" {
		prefs.ProxyMode = domain.ModeAuto
	}
	mode, err := domain.ParseProxyMode(string(prefs.ProxyMode))
	if err != nil {
		return domain.DefaultPrefs(), fmt.Errorf("invalid preferences %s: %w", s.path, err)
	}
	prefs.ProxyMode = mode
	return prefs, nil
}

// Save writes the preferences atomically through a temporary file in the
// same directory.
func (s *Store) Save(prefs domain.Prefs) error {
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace preferences: %w", err)
	}

	s.logger.Info("preferences saved",
		zap.String("path", s.path),
		zap.String("mode", string(prefs.ProxyMode)),
		zap.Int("default_proxy", prefs.DefaultProxy))
	return nil
}
