package main

import (
	"fmt"

	"github.com/excellence-hub/excellence/internal/app"
	"github.com/spf13/cobra"
)

func newPasswdCmd(c *cli) *cobra.Command {
	var flags identityFlags
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change an account password",
		Long:  "Prompts for the current password, the new password and its confirmation without echoing them.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := flags.identity()
			if err != nil {
				return err
			}

			oldPassword, err := c.readPassword("Current password: ")
			if err != nil {
				return err
			}
			newPassword, err := c.readPassword("New password: ")
			if err != nil {
				return err
			}
			confirmPassword, err := c.readPassword("Confirm new password: ")
			if err != nil {
				return err
			}

			return c.withApp(cmd, func(a *app.App) error {
				if err := a.Credentials.ChangePassword(cmd.Context(), id, oldPassword, newPassword, confirmPassword); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "password changed for %s\n", id.Describe())
				return nil
			})
		},
	}
	flags.register(cmd, true)
	return cmd
}
