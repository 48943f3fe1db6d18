package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pipedream-labs/connect-go/pkg/connect"
)

// NewTokensCommand creates the tokens command group.
func NewTokensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tokens",
		Aliases: []string{"token"},
		Short:   "Manage connect tokens",
		Long:    "Mint short-lived connect tokens that let end users link accounts",
	}

	cmd.AddCommand(newTokensCreateCommand())

	return cmd
}

// TokensCreateOptions holds the options for minting a connect token.
type TokensCreateOptions struct {
	ExternalUserID     string
	AllowedOrigins     []string
	SuccessRedirectURI string
	ErrorRedirectURI   string
	WebhookURI         string
}

func newTokensCreateCommand() *cobra.Command {
	var opts TokensCreateOptions

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a connect token",
		Long:  "Create a short-lived connect token for an external user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokensCreateCommand(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ExternalUserID, "user", "", "external user ID (required)")
	cmd.Flags().StringSliceVar(&opts.AllowedOrigins, "allowed-origin", nil, "allowed web origin (repeatable)")
	cmd.Flags().StringVar(&opts.SuccessRedirectURI, "success-redirect", "", "redirect URI after successful connection")
	cmd.Flags().StringVar(&opts.ErrorRedirectURI, "error-redirect", "", "redirect URI after failed connection")
	cmd.Flags().StringVar(&opts.WebhookURI, "webhook", "", "webhook URI notified on connection events")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runTokensCreateCommand(cmd *cobra.Command, opts TokensCreateOptions) error {
	client, err := CreateClient(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	token, err := client.Tokens().Create(cmd.Context(), &connect.ConnectTokenCreateRequest{
		ExternalUserID:     opts.ExternalUserID,
		AllowedOrigins:     opts.AllowedOrigins,
		SuccessRedirectURI: opts.SuccessRedirectURI,
		ErrorRedirectURI:   opts.ErrorRedirectURI,
		WebhookURI:         opts.WebhookURI,
	})
	if err != nil {
		return fmt.Errorf("creating connect token: %w", err)
	}

	if handled, err := renderStructured(token); handled {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Token", token.Token)
	_ = table.Append("Expires At", token.ExpiresAt)
	_ = table.Append("Connect Link URL", token.ConnectLinkURL)

	_ = table.Render()

	return nil
}
