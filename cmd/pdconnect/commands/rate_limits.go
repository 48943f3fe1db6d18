package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pipedream-labs/connect-go/pkg/connect"
)

// NewRateLimitsCommand creates the rate-limits command group.
func NewRateLimitsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rate-limits",
		Aliases: []string{"rate-limit"},
		Short:   "Manage connect token rate limits",
	}

	cmd.AddCommand(newRateLimitsCreateCommand())

	return cmd
}

func newRateLimitsCreateCommand() *cobra.Command {
	var (
		windowSizeSeconds int
		requestsPerWindow int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a rate limit",
		Long:  "Define a rate limit window and get a token to apply it to connect token usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			token, err := client.RateLimits().Create(cmd.Context(), &connect.RateLimitCreateRequest{
				WindowSizeSeconds: windowSizeSeconds,
				RequestsPerWindow: requestsPerWindow,
			})
			if err != nil {
				return fmt.Errorf("creating rate limit: %w", err)
			}

			if handled, err := renderStructured(token); handled {
				return err
			}

			fmt.Printf("Rate limit token: %s\n", token.Token)

			return nil
		},
	}

	cmd.Flags().IntVar(&windowSizeSeconds, "window", 0, "window size in seconds (required)")
	cmd.Flags().IntVar(&requestsPerWindow, "requests", 0, "requests allowed per window (required)")
	_ = cmd.MarkFlagRequired("window")
	_ = cmd.MarkFlagRequired("requests")

	return cmd
}
