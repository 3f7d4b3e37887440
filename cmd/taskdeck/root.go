package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "taskdeck personal task tracker",
	Long: `A personal task tracker served over a JSON HTTP API.

Configuration is read from taskdeck.toml (or --config), then TASKDECK_*
environment variables, then command-line flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

// Global flags
var (
	configPath string
	dbPath     string
	jsonOutput bool
)

// cfg is the resolved configuration, set before any subcommand runs.
var cfg *config.Config

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the TOML config file (default ./taskdeck.toml if present)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the SQLite database (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
}

// configError marks failures to resolve configuration.
type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

func loadConfig(cmd *cobra.Command) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return &configError{err: err}
	}
	if cmd.Flags().Changed("db") {
		loaded.Database.Path = dbPath
	}
	if err := applyServeFlags(cmd, loaded); err != nil {
		return &configError{err: err}
	}
	if err := loaded.Validate(); err != nil {
		return &configError{err: err}
	}
	cfg = loaded
	return nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		handleError(err)
	}
}

func isConfigError(err error) bool {
	var ce *configError
	return errors.As(err, &ce)
}

func handleError(err error) {
	if err == nil {
		return
	}

	printError(os.Stderr, err, jsonOutput)
	os.Exit(mapErrorToExitCode(err))
}
