package cmd

import (
	"github.com/spf13/cobra"

	"github.com/smartstore/store-system/internal/client"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := newClient().ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, users)
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get EMAIL",
	Short: "Show one user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := newClient().GetUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, user)
	},
}

var registerReq client.RegisterUserRequest

var usersRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := newClient().RegisterUser(cmd.Context(), registerReq)
		if err != nil {
			return err
		}
		return printJSON(cmd, user)
	},
}

var updateUserReq client.UpdateUserRequest

var usersUpdateCmd = &cobra.Command{
	Use:   "update EMAIL",
	Short: "Change a user's password or name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := newClient().UpdateUser(cmd.Context(), args[0], updateUserReq)
		if err != nil {
			return err
		}
		return printJSON(cmd, user)
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete EMAIL",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newClient().DeleteUser(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd, usersGetCmd, usersRegisterCmd, usersUpdateCmd, usersDeleteCmd)

	f := usersRegisterCmd.Flags()
	f.StringVar(&registerReq.Email, "new-email", "", "email of the new account")
	f.StringVar(&registerReq.Password, "new-password", "", "password of the new account")
	f.StringVar(&registerReq.Name, "name", "", "display name")
	f.StringVar(&registerReq.Role, "role", "", "ADMIN, MANAGER or USER")
	_ = usersRegisterCmd.MarkFlagRequired("new-email")
	_ = usersRegisterCmd.MarkFlagRequired("new-password")
	_ = usersRegisterCmd.MarkFlagRequired("name")

	usersUpdateCmd.Flags().StringVar(&updateUserReq.Password, "new-password", "", "new password")
	usersUpdateCmd.Flags().StringVar(&updateUserReq.Name, "name", "", "new display name")
}
