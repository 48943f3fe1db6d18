package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pipedream-labs/connect-go/internal/constants"
	"github.com/pipedream-labs/connect-go/pkg/connect"
	"github.com/pipedream-labs/connect-go/pkg/pdclient"
)

// Output formats.
const (
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
	OutputFormatTable = "table"
)

// NotAvailable fills table cells without a value.
const NotAvailable = "N/A"

// CreateClient builds a connect.Client from viper configuration: CLI flags,
// PD_* environment variables, and the config file, in that order.
func CreateClient(ctx context.Context) (connect.Client, error) {
	projectID := viper.GetString("project")
	if projectID == "" {
		return nil, constants.ErrNoProjectConfigured
	}

	clientID := viper.GetString("client_id")
	clientSecret := viper.GetString("client_secret")
	accessToken := viper.GetString("access_token")

	if accessToken == "" && (clientID == "" || clientSecret == "") {
		return nil, constants.ErrNoCredentialsConfigured
	}

	environment := viper.GetString("environment")
	if environment != "" && !validEnvironment(environment) {
		return nil, fmt.Errorf("%w: %s", constants.ErrInvalidEnvironment, environment)
	}

	config := &connect.Config{
		APIEndpoint:  viper.GetString("api"),
		ProjectID:    projectID,
		Environment:  connect.Environment(environment),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		AccessToken:  accessToken,
	}

	if viper.GetBool("verbose") {
		logger, err := connect.NewDevelopmentLogger()
		if err != nil {
			return nil, fmt.Errorf("building logger: %w", err)
		}

		config.Debug = true
		config.Logger = logger
	}

	client, err := pdclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

func validEnvironment(environment string) bool {
	switch connect.Environment(environment) {
	case connect.EnvironmentDevelopment, connect.EnvironmentProduction:
		return true
	default:
		return false
	}
}

// renderJSON writes v to stdout as indented JSON.
func renderJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}

// renderYAML writes v to stdout as YAML.
func renderYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(constants.JSONIndentSize)

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	return encoder.Close()
}

// renderStructured writes v as JSON or YAML when the output flag asks for
// it, reporting whether it handled the output.
func renderStructured(v interface{}) (bool, error) {
	switch output := viper.GetString("output"); output {
	case OutputFormatJSON:
		return true, renderJSON(v)
	case OutputFormatYAML:
		return true, renderYAML(v)
	case OutputFormatTable, "":
		return false, nil
	default:
		return true, fmt.Errorf("%w: %s", constants.ErrUnknownOutputFormat, output)
	}
}

// formatUnix renders a unix timestamp for table output.
func formatUnix(ts int64) string {
	if ts == 0 {
		return NotAvailable
	}

	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}

// boolString renders a bool for table output.
func boolString(v bool) string {
	if v {
		return "yes"
	}

	return "no"
}

// parseJSONProps decodes a --props JSON object argument.
func parseJSONProps(raw string) (map[string]interface{}, error) {
	if raw == "" {
		return map[string]interface{}{}, nil
	}

	var props map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &props); err != nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrPropsNotJSON, err)
	}

	return props, nil
}
