package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"framedata/internal/app"
	"framedata/internal/config"
)

var (
	prefsPath string
	eventLogs []string
	logLevel  string
	current   *app.App
)

var rootCmd = &cobra.Command{
	Use:   "framedata",
	Short: "Inspect browser window and frame bookkeeping",
	Long: `framedata mirrors a browser's window and frame tree from recorded
host events and keeps the per-window location records an auto-proxy
extension attaches to it.

Event logs given with --events are replayed before every command, so the
query commands see the recorded session.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("prefs") {
			cfg.PrefsPath = prefsPath
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}

		current, err = app.New(cfg)
		if err != nil {
			return err
		}
		for _, path := range eventLogs {
			if _, err := current.ReplayFile(cmd.Context(), path); err != nil {
				return err
			}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if current == nil {
			return nil
		}
		return current.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&prefsPath, "prefs", "p", config.PrefsPath(), "path to the preferences file")
	rootCmd.PersistentFlags().StringArrayVarP(&eventLogs, "events", "e", nil, "JSON-lines event log to replay first (repeatable)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// GetApp returns the initialized application
func GetApp() *app.App {
	return current
}
