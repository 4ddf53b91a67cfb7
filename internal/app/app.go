// Package app wires the configuration, logger, registry and adapters shared by
// the framedata binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"framedata/internal/adapters/browserhost"
	"framedata/internal/adapters/metrics"
	"framedata/internal/adapters/prefsfile"
	"framedata/internal/config"
	"framedata/internal/logging"
	"framedata/internal/registry"
)

// App holds the wired components of one process
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *registry.Registry
	Host     *browserhost.Host
	Prefs    *prefsfile.Store
	Metrics  *metrics.Collector
}

// New wires an App from cfg
func New(cfg *config.Config) (*App, error) {
	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Development: cfg.LogDev})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	prefs, err := prefsfile.New(cfg.PrefsPath, logger)
	if err != nil {
		return nil, err
	}

	notifier := registry.NewNotifier(logger)
	reg := registry.New(notifier, logger)
	collector := metrics.NewCollector("framedata", reg, logger)
	notifier.Subscribe(collector)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Registry: reg,
		Host:     browserhost.New(reg, logger),
		Prefs:    prefs,
		Metrics:  collector,
	}, nil
}

// ReplayFile applies the events of the JSON-lines file at path
func (a *App) ReplayFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open event log: %w", err)
	}
	defer f.Close()

	n, err := a.Host.Replay(ctx, f)
	if err != nil {
		return n, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// Close writes the metrics file when one is configured and flushes the logger
func (a *App) Close() error {
	var errs []error
	if a.Config.MetricsFile != "" {
		path, err := config.ExpandHome(a.Config.MetricsFile)
		if err == nil {
			err = a.Metrics.WriteTextfile(path)
		}
		errs = append(errs, err)
	}
	// Sync on stderr fails on some platforms and is not worth reporting
	_ = a.Logger.Sync()
	return errors.Join(errs...)
}
