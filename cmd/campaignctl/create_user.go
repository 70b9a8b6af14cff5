package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"campaign-manager/application/commands"
	"campaign-manager/application/commands/handlers"
)

func newCreateUserCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create-user <name> <email> <password> [role]",
		Short: "Register an operator account",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := "user"
			if len(args) == 4 {
				role = args[3]
			}

			ctx := cmd.Context()
			container, err := loadContainer(ctx)
			if err != nil {
				return err
			}
			defer container.Shutdown()

			result, err := container.CommandBus.Send(ctx, commands.CreateUserCommand{
				Name:     args[0],
				Email:    args[1],
				Password: args[2],
				Role:     role,
			})
			if err != nil {
				return err
			}

			user := result.(handlers.CreateUserResult)
			fmt.Fprintf(cmd.OutOrStdout(), "User %s created with role %s\n", user.Email, user.Role)
			return nil
		},
	}
}
