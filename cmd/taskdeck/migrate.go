package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		version, err := store.SchemaVersion(cmd.Context(), a.db)
		if err != nil {
			return err
		}

		printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Database %s is at schema version %d", cfg.Database.Path, version),
			map[string]interface{}{"version": version}, jsonOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
