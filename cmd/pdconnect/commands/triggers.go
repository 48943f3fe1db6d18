package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pipedream-labs/connect-go/internal/constants"
	"github.com/pipedream-labs/connect-go/pkg/connect"
)

// NewTriggersCommand creates the triggers command group.
func NewTriggersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "triggers",
		Aliases: []string{"trigger"},
		Short:   "Manage deployed triggers",
		Long:    "Deploy trigger components and manage their lifecycle and listeners",
	}

	cmd.AddCommand(newTriggersDeployCommand())
	cmd.AddCommand(newTriggersListCommand())
	cmd.AddCommand(newTriggersGetCommand())
	cmd.AddCommand(newTriggersDeleteCommand())
	cmd.AddCommand(newTriggersEventsCommand())
	cmd.AddCommand(newTriggersWebhooksCommand())
	cmd.AddCommand(newTriggersWorkflowsCommand())

	return cmd
}

// TriggersDeployOptions holds the options for deploying a trigger.
type TriggersDeployOptions struct {
	ExternalUserID string
	Props          string
	WebhookURL     string
	WorkflowID     string
	DynamicPropsID string
}

func newTriggersDeployCommand() *cobra.Command {
	var opts TriggersDeployOptions

	cmd := &cobra.Command{
		Use:   "deploy TRIGGER_KEY",
		Short: "Deploy a trigger",
		Long:  "Deploy a trigger component for an external user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTriggersDeployCommand(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.ExternalUserID, "user", "", "external user ID (required)")
	cmd.Flags().StringVar(&opts.Props, "props", "", "configured props as a JSON object")
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "webhook URL receiving trigger events")
	cmd.Flags().StringVar(&opts.WorkflowID, "workflow-id", "", "workflow ID (p_...) receiving trigger events")
	cmd.Flags().StringVar(&opts.DynamicPropsID, "dynamic-props-id", "", "ID from a previous props reload")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runTriggersDeployCommand(cmd *cobra.Command, triggerKey string, opts TriggersDeployOptions) error {
	client, err := CreateClient(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	props, err := parseJSONProps(opts.Props)
	if err != nil {
		return err
	}

	trigger, err := client.Triggers().Deploy(cmd.Context(), &connect.DeployTriggerRequest{
		TriggerKey:      triggerKey,
		ExternalUserID:  opts.ExternalUserID,
		ConfiguredProps: props,
		WebhookURL:      opts.WebhookURL,
		WorkflowID:      opts.WorkflowID,
		DynamicPropsID:  opts.DynamicPropsID,
	})
	if err != nil {
		return fmt.Errorf("deploying trigger: %w", err)
	}

	if handled, err := renderStructured(trigger); handled {
		return err
	}

	renderTriggerTable(trigger)

	return nil
}

func newTriggersListCommand() *cobra.Command {
	var (
		externalUserID string
		limit          int
		cursor         string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deployed triggers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			triggers, err := client.Triggers().List(cmd.Context(), &connect.DeployedTriggerListOptions{
				ListOptions: connect.ListOptions{
					Limit:  limit,
					Cursor: cursor,
				},
				ExternalUserID: externalUserID,
			})
			if err != nil {
				return fmt.Errorf("listing deployed triggers: %w", err)
			}

			if handled, err := renderStructured(triggers); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Component", "Active", "Created")

			for _, trigger := range triggers.Data {
				_ = table.Append(trigger.ID, trigger.Name, trigger.ComponentID, boolString(trigger.Active), formatUnix(trigger.CreatedAt))
			}

			_ = table.Render()

			if triggers.PageInfo.EndCursor != "" {
				fmt.Printf("\nNext cursor: %s\n", triggers.PageInfo.EndCursor)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&externalUserID, "user", "", "external user ID (required)")
	cmd.Flags().IntVar(&limit, "limit", constants.StandardPageSize, "results per page")
	cmd.Flags().StringVar(&cursor, "cursor", "", "pagination cursor")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newTriggersGetCommand() *cobra.Command {
	var externalUserID string

	cmd := &cobra.Command{
		Use:   "get DEPLOYED_TRIGGER_ID",
		Short: "Get a deployed trigger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			trigger, err := client.Triggers().Get(cmd.Context(), args[0], externalUserID)
			if err != nil {
				return fmt.Errorf("getting deployed trigger: %w", err)
			}

			if handled, err := renderStructured(trigger); handled {
				return err
			}

			renderTriggerTable(trigger)

			return nil
		},
	}

	cmd.Flags().StringVar(&externalUserID, "user", "", "external user ID (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newTriggersDeleteCommand() *cobra.Command {
	var (
		externalUserID   string
		ignoreHookErrors bool
	)

	cmd := &cobra.Command{
		Use:   "delete DEPLOYED_TRIGGER_ID",
		Short: "Delete a deployed trigger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			err = client.Triggers().Delete(cmd.Context(), args[0], externalUserID, ignoreHookErrors)
			if err != nil {
				return fmt.Errorf("deleting deployed trigger: %w", err)
			}

			fmt.Printf("Deleted trigger %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&externalUserID, "user", "", "external user ID (required)")
	cmd.Flags().BoolVar(&ignoreHookErrors, "ignore-hook-errors", false, "ignore errors from the deactivation hook")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newTriggersEventsCommand() *cobra.Command {
	var (
		externalUserID string
		limit          int
	)

	cmd := &cobra.Command{
		Use:   "events DEPLOYED_TRIGGER_ID",
		Short: "List recent trigger events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			events, err := client.Triggers().ListEvents(cmd.Context(), args[0], externalUserID, limit)
			if err != nil {
				return fmt.Errorf("listing trigger events: %w", err)
			}

			if handled, err := renderStructured(events); handled {
				return err
			}

			// Event payloads are arbitrary JSON.
			return renderJSON(events)
		},
	}

	cmd.Flags().StringVar(&externalUserID, "user", "", "external user ID (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of events")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newTriggersWebhooksCommand() *cobra.Command {
	var (
		externalUserID string
		update         []string
		clear          bool
	)

	cmd := &cobra.Command{
		Use:   "webhooks DEPLOYED_TRIGGER_ID",
		Short: "Show or update trigger webhook listeners",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			var webhooks *connect.WebhookURLs

			switch {
			case clear:
				webhooks, err = client.Triggers().UpdateWebhooks(cmd.Context(), args[0], externalUserID, []string{})
			case len(update) > 0:
				webhooks, err = client.Triggers().UpdateWebhooks(cmd.Context(), args[0], externalUserID, update)
			default:
				webhooks, err = client.Triggers().GetWebhooks(cmd.Context(), args[0], externalUserID)
			}

			if err != nil {
				return fmt.Errorf("managing trigger webhooks: %w", err)
			}

			if handled, err := renderStructured(webhooks); handled {
				return err
			}

			if len(webhooks.WebhookURLs) == 0 {
				fmt.Println("No webhook listeners")

				return nil
			}

			fmt.Println(strings.Join(webhooks.WebhookURLs, "\n"))

			return nil
		},
	}

	cmd.Flags().StringVar(&externalUserID, "user", "", "external user ID (required)")
	cmd.Flags().StringSliceVar(&update, "set", nil, "replace the webhook URL list (repeatable)")
	cmd.Flags().BoolVar(&clear, "clear", false, "remove all webhook listeners")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newTriggersWorkflowsCommand() *cobra.Command {
	var (
		externalUserID string
		update         []string
		clear          bool
	)

	cmd := &cobra.Command{
		Use:   "workflows DEPLOYED_TRIGGER_ID",
		Short: "Show or update trigger workflow listeners",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			var workflows *connect.WorkflowIDs

			switch {
			case clear:
				workflows, err = client.Triggers().UpdateWorkflows(cmd.Context(), args[0], externalUserID, []string{})
			case len(update) > 0:
				workflows, err = client.Triggers().UpdateWorkflows(cmd.Context(), args[0], externalUserID, update)
			default:
				workflows, err = client.Triggers().GetWorkflows(cmd.Context(), args[0], externalUserID)
			}

			if err != nil {
				return fmt.Errorf("managing trigger workflows: %w", err)
			}

			if handled, err := renderStructured(workflows); handled {
				return err
			}

			if len(workflows.WorkflowIDs) == 0 {
				fmt.Println("No workflow listeners")

				return nil
			}

			fmt.Println(strings.Join(workflows.WorkflowIDs, "\n"))

			return nil
		},
	}

	cmd.Flags().StringVar(&externalUserID, "user", "", "external user ID (required)")
	cmd.Flags().StringSliceVar(&update, "set", nil, "replace the workflow ID list (repeatable)")
	cmd.Flags().BoolVar(&clear, "clear", false, "remove all workflow listeners")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func renderTriggerTable(trigger *connect.DeployedTrigger) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("ID", trigger.ID)
	_ = table.Append("Name", trigger.Name)
	_ = table.Append("Component", trigger.ComponentID)
	_ = table.Append("Owner", trigger.OwnerID)
	_ = table.Append("Active", boolString(trigger.Active))
	_ = table.Append("Created", formatUnix(trigger.CreatedAt))
	_ = table.Append("Updated", formatUnix(trigger.UpdatedAt))

	_ = table.Render()
}
