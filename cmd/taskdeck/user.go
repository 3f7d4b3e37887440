package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userDeactivateCmd = &cobra.Command{
	Use:   "deactivate <email>",
	Short: "Deactivate an account",
	Long: `Soft-deactivate the account registered to email. Its data is kept, login
is refused and its sessions are deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetActive(cmd, args[0], false)
	},
}

var userActivateCmd = &cobra.Command{
	Use:   "activate <email>",
	Short: "Reactivate a deactivated account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetActive(cmd, args[0], true)
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userDeactivateCmd)
	userCmd.AddCommand(userActivateCmd)
}

func runSetActive(cmd *cobra.Command, email string, active bool) error {
	a, err := openApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.auth.SetActive(cmd.Context(), email, active); err != nil {
		return err
	}

	state := "deactivated"
	if active {
		state = "activated"
	}
	printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Account %s %s", email, state),
		map[string]interface{}{"email": email, "active": active}, jsonOutput)
	return nil
}
