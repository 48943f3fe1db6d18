package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pipedream-labs/connect-go/pkg/connect"
)

// NewActionsCommand creates the actions command group.
func NewActionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "actions",
		Aliases: []string{"action"},
		Short:   "Run action components",
		Long:    "Invoke action components on behalf of external users",
	}

	cmd.AddCommand(newActionsRunCommand())

	return cmd
}

// ActionsRunOptions holds the options for running an action.
type ActionsRunOptions struct {
	ExternalUserID string
	Props          string
	DynamicPropsID string
}

func newActionsRunCommand() *cobra.Command {
	var opts ActionsRunOptions

	cmd := &cobra.Command{
		Use:   "run ACTION_KEY",
		Short: "Run an action",
		Long:  "Run an action component with the given configured props",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActionsRunCommand(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.ExternalUserID, "user", "", "external user ID (required)")
	cmd.Flags().StringVar(&opts.Props, "props", "", "configured props as a JSON object")
	cmd.Flags().StringVar(&opts.DynamicPropsID, "dynamic-props-id", "", "ID from a previous props reload")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runActionsRunCommand(cmd *cobra.Command, actionKey string, opts ActionsRunOptions) error {
	client, err := CreateClient(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	props, err := parseJSONProps(opts.Props)
	if err != nil {
		return err
	}

	result, err := client.Actions().Run(cmd.Context(), &connect.RunActionRequest{
		ActionKey:       actionKey,
		ExternalUserID:  opts.ExternalUserID,
		ConfiguredProps: props,
		DynamicPropsID:  opts.DynamicPropsID,
	})
	if err != nil {
		return fmt.Errorf("running action: %w", err)
	}

	if handled, err := renderStructured(result); handled {
		return err
	}

	// The return value and exports carry arbitrary JSON; table output
	// does not fit, so always render JSON here.
	return renderJSON(result)
}
