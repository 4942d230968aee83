package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Checks the given credentials against the API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		me, err := newClient().Me(cmd.Context())
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s)\n", me.Email, me.Role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
