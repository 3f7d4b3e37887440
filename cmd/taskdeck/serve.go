package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/metrics"
	"github.com/taskdeck/taskdeck/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the taskdeck HTTP server until interrupted.

Pending migrations are applied before the listener opens. SIGINT and SIGTERM
trigger a graceful shutdown.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		router := api.NewRouter(api.Dependencies{
			DB:             a.db,
			Sessions:       a.sessions,
			Auth:           a.auth,
			Tasks:          a.tasks,
			Metrics:        metrics.New(),
			Logger:         a.logger,
			Production:     cfg.Production(),
			AllowedOrigins: cfg.Server.AllowedOrigins,
			RequestTimeout: cfg.Server.RequestTimeout,
		})

		srv := server.New(server.Options{
			Addr:            cfg.Server.Addr,
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			IdleTimeout:     cfg.Server.IdleTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
		}, router, a.db, a.logger)

		a.logger.Info("starting taskdeck", "env", cfg.Env, "database", cfg.Database.Path)
		return srv.ListenAndServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Address to listen on (overrides config)")
	serveCmd.Flags().String("env", "", "Environment: development or production (overrides config)")
	serveCmd.Flags().StringSlice("allowed-origin", nil, "Origin allowed to call the API with credentials (repeatable)")
}

// applyServeFlags copies explicitly set serve flags over the loaded config.
func applyServeFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if flags.Lookup("addr") == nil {
		return nil
	}

	if flags.Changed("addr") {
		addr, err := flags.GetString("addr")
		if err != nil {
			return err
		}
		c.Server.Addr = addr
	}
	if flags.Changed("env") {
		env, err := flags.GetString("env")
		if err != nil {
			return err
		}
		c.Env = env
	}
	if flags.Changed("allowed-origin") {
		origins, err := flags.GetStringSlice("allowed-origin")
		if err != nil {
			return fmt.Errorf("invalid --allowed-origin: %w", err)
		}
		c.Server.AllowedOrigins = origins
	}
	return nil
}
