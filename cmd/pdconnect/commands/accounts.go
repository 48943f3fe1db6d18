package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pipedream-labs/connect-go/internal/constants"
	"github.com/pipedream-labs/connect-go/pkg/connect"
)

// NewAccountsCommand creates the accounts command group.
func NewAccountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account"},
		Short:   "Manage connected accounts",
		Long:    "List, inspect, and delete accounts connected through Pipedream Connect",
	}

	cmd.AddCommand(newAccountsListCommand())
	cmd.AddCommand(newAccountsGetCommand())
	cmd.AddCommand(newAccountsDeleteCommand())
	cmd.AddCommand(newAccountsDeleteByAppCommand())

	return cmd
}

// AccountsListOptions holds the options for listing accounts.
type AccountsListOptions struct {
	App            string
	OAuthAppID     string
	ExternalUserID string
	Limit          int
	Cursor         string
}

func newAccountsListCommand() *cobra.Command {
	var opts AccountsListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List connected accounts",
		Long:  "List connected accounts in the project, optionally filtered by app or user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccountsListCommand(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.App, "app", "", "filter by app ID or name slug")
	cmd.Flags().StringVar(&opts.OAuthAppID, "oauth-app-id", "", "filter by OAuth app ID")
	cmd.Flags().StringVar(&opts.ExternalUserID, "user", "", "filter by external user ID")
	cmd.Flags().IntVar(&opts.Limit, "limit", constants.StandardPageSize, "results per page")
	cmd.Flags().StringVar(&opts.Cursor, "cursor", "", "pagination cursor")

	return cmd
}

func runAccountsListCommand(cmd *cobra.Command, opts AccountsListOptions) error {
	client, err := CreateClient(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	accounts, err := client.Accounts().List(cmd.Context(), &connect.AccountListOptions{
		ListOptions: connect.ListOptions{
			Limit:  opts.Limit,
			Cursor: opts.Cursor,
		},
		App:            opts.App,
		OAuthAppID:     opts.OAuthAppID,
		ExternalUserID: opts.ExternalUserID,
	})
	if err != nil {
		return fmt.Errorf("listing accounts: %w", err)
	}

	if handled, err := renderStructured(accounts); handled {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "App", "External User", "Healthy", "Created")

	for _, account := range accounts.Data {
		_ = table.Append(account.ID, account.App.Name, account.ExternalID, boolString(account.Healthy), account.CreatedAt)
	}

	_ = table.Render()

	if accounts.PageInfo.EndCursor != "" {
		fmt.Printf("\nNext cursor: %s\n", accounts.PageInfo.EndCursor)
	}

	return nil
}

func newAccountsGetCommand() *cobra.Command {
	var includeCredentials bool

	cmd := &cobra.Command{
		Use:   "get ACCOUNT_ID",
		Short: "Get a connected account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			account, err := client.Accounts().Get(cmd.Context(), args[0], includeCredentials)
			if err != nil {
				return fmt.Errorf("getting account: %w", err)
			}

			if handled, err := renderStructured(account); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")

			_ = table.Append("ID", account.ID)
			_ = table.Append("App", account.App.Name)
			_ = table.Append("External User", account.ExternalID)
			_ = table.Append("Healthy", boolString(account.Healthy))
			_ = table.Append("Created", account.CreatedAt)
			_ = table.Append("Updated", account.UpdatedAt)

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().BoolVar(&includeCredentials, "include-credentials", false, "include account credentials (handle with care)")

	return cmd
}

func newAccountsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ACCOUNT_ID",
		Short: "Delete a connected account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			err = client.Accounts().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("deleting account: %w", err)
			}

			fmt.Printf("Deleted account %s\n", args[0])

			return nil
		},
	}
}

func newAccountsDeleteByAppCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-by-app APP_ID",
		Short: "Delete all connected accounts for an app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			err = client.Accounts().DeleteByApp(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("deleting accounts for app: %w", err)
			}

			fmt.Printf("Deleted all accounts for app %s\n", args[0])

			return nil
		},
	}
}
