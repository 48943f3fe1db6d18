package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage external users",
		Long:    "Manage end users of your application connected through Pipedream Connect",
	}

	cmd.AddCommand(newUsersDeleteCommand())

	return cmd
}

func newUsersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete EXTERNAL_USER_ID",
		Short: "Delete an external user",
		Long:  "Delete an external user along with all their connected accounts and deployed triggers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			err = client.Users().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("deleting external user: %w", err)
			}

			fmt.Printf("Deleted external user %s\n", args[0])

			return nil
		},
	}
}
