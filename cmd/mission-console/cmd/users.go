package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/mission-console/internal/service/users"
)

func newUsersCommand() *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts.",
	}

	passwdCmd := &cobra.Command{
		Use:   "passwd [user]",
		Short: "Change the password of an account.",
		Long: `Prompts twice for a new password and sets it on the account.

The account defaults to the configured user name. Both entries must match.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			var username string
			if len(args) > 0 {
				username = args[0]
			}

			return users.Passwd(ctx, &users.PasswdOptions{
				Target:   target(),
				Username: username,
				Out:      cmd.OutOrStdout(),
			})
		},
	}

	usersCmd.AddCommand(passwdCmd)

	return usersCmd
}
