package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pipedream-labs/connect-go/internal/constants"
	"github.com/pipedream-labs/connect-go/pkg/connect"
)

// NewComponentsCommand creates the components command group.
func NewComponentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "components",
		Aliases: []string{"component"},
		Short:   "Browse the component registry",
		Long:    "List and inspect triggers, actions, and other components in the registry",
	}

	cmd.AddCommand(newComponentsListCommand())
	cmd.AddCommand(newComponentsGetCommand())
	cmd.AddCommand(newComponentsReloadPropsCommand())

	return cmd
}

// ComponentsListOptions holds the options for listing components.
type ComponentsListOptions struct {
	Type   string
	App    string
	Query  string
	Limit  int
	Cursor string
}

func newComponentsListCommand() *cobra.Command {
	var opts ComponentsListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registry components",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComponentsListCommand(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", string(connect.ComponentTypeComponents), "component type (triggers, actions, components)")
	cmd.Flags().StringVar(&opts.App, "app", "", "filter by app ID or name slug")
	cmd.Flags().StringVar(&opts.Query, "query", "", "search components by key and name")
	cmd.Flags().IntVar(&opts.Limit, "limit", constants.StandardPageSize, "results per page")
	cmd.Flags().StringVar(&opts.Cursor, "cursor", "", "pagination cursor")

	return cmd
}

func runComponentsListCommand(cmd *cobra.Command, opts ComponentsListOptions) error {
	client, err := CreateClient(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	components, err := client.Components().List(cmd.Context(), connect.ComponentType(opts.Type), &connect.ComponentListOptions{
		ListOptions: connect.ListOptions{
			Limit:  opts.Limit,
			Cursor: opts.Cursor,
		},
		App:   opts.App,
		Query: opts.Query,
	})
	if err != nil {
		return fmt.Errorf("listing components: %w", err)
	}

	if handled, err := renderStructured(components); handled {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Key", "Name", "Version", "Description")

	for _, component := range components.Data {
		_ = table.Append(component.Key, component.Name, component.Version, component.Description)
	}

	_ = table.Render()

	if components.PageInfo.EndCursor != "" {
		fmt.Printf("\nNext cursor: %s\n", components.PageInfo.EndCursor)
	}

	return nil
}

func newComponentsGetCommand() *cobra.Command {
	var componentType string

	cmd := &cobra.Command{
		Use:   "get COMPONENT_KEY",
		Short: "Get a registry component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			component, err := client.Components().Get(cmd.Context(), connect.ComponentType(componentType), args[0])
			if err != nil {
				return fmt.Errorf("getting component: %w", err)
			}

			if handled, err := renderStructured(component); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")

			_ = table.Append("Key", component.Key)
			_ = table.Append("Name", component.Name)
			_ = table.Append("Version", component.Version)
			_ = table.Append("Description", component.Description)

			_ = table.Render()

			if len(component.ConfigurableProps) > 0 {
				fmt.Println("\nConfigurable props:")

				propsTable := tablewriter.NewWriter(os.Stdout)
				propsTable.Header("Name", "Type", "Optional", "Label")

				for _, prop := range component.ConfigurableProps {
					_ = propsTable.Append(prop.Name, prop.Type, boolString(prop.Optional), prop.Label)
				}

				_ = propsTable.Render()
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&componentType, "type", string(connect.ComponentTypeComponents), "component type (triggers, actions, components)")

	return cmd
}

// ReloadPropsOptions holds the options for reloading component props.
type ReloadPropsOptions struct {
	Type           string
	ExternalUserID string
	Props          string
	DynamicPropsID string
}

func newComponentsReloadPropsCommand() *cobra.Command {
	var opts ReloadPropsOptions

	cmd := &cobra.Command{
		Use:   "reload-props COMPONENT_KEY",
		Short: "Reload a component's dynamic props",
		Long:  "Re-evaluate a component's configurable props against the configured values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComponentsReloadPropsCommand(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", string(connect.ComponentTypeComponents), "component type (triggers, actions, components)")
	cmd.Flags().StringVar(&opts.ExternalUserID, "user", "", "external user ID (required)")
	cmd.Flags().StringVar(&opts.Props, "props", "", "configured props as a JSON object")
	cmd.Flags().StringVar(&opts.DynamicPropsID, "dynamic-props-id", "", "ID from a previous props reload")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runComponentsReloadPropsCommand(cmd *cobra.Command, key string, opts ReloadPropsOptions) error {
	client, err := CreateClient(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	props, err := parseJSONProps(opts.Props)
	if err != nil {
		return err
	}

	result, err := client.Components().ReloadProps(cmd.Context(), connect.ComponentType(opts.Type), &connect.ReloadPropsRequest{
		ComponentKey:    key,
		ExternalUserID:  opts.ExternalUserID,
		ConfiguredProps: props,
		DynamicPropsID:  opts.DynamicPropsID,
	})
	if err != nil {
		return fmt.Errorf("reloading component props: %w", err)
	}

	if handled, err := renderStructured(result); handled {
		return err
	}

	fmt.Printf("Dynamic props ID: %s\n", result.DynamicProps.ID)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Type", "Optional", "Label")

	for _, prop := range result.DynamicProps.ConfigurableProps {
		_ = table.Append(prop.Name, prop.Type, boolString(prop.Optional), prop.Label)
	}

	_ = table.Render()

	for _, reloadErr := range result.Errors {
		fmt.Fprintf(os.Stderr, "Error: %s\n", reloadErr)
	}

	return nil
}
