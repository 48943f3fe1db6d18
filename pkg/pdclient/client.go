// Package pdclient provides the main entry point for creating Pipedream
// Connect API clients.
package pdclient

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pipedream-labs/connect-go/internal/client"
	"github.com/pipedream-labs/connect-go/internal/constants"
	"github.com/pipedream-labs/connect-go/pkg/connect"
)

// New creates a new Connect API client.
func New(ctx context.Context, config *connect.Config) (connect.Client, error) {
	if config == nil {
		return nil, connect.ErrConfigRequired
	}

	// Normalize API endpoint
	apiEndpoint := config.APIEndpoint
	if apiEndpoint == "" {
		apiEndpoint = constants.DefaultAPIEndpoint
	}

	apiEndpoint = strings.TrimSuffix(apiEndpoint, "/")
	if !strings.HasPrefix(apiEndpoint, "http://") && !strings.HasPrefix(apiEndpoint, "https://") {
		apiEndpoint = "https://" + apiEndpoint
	}

	config.APIEndpoint = apiEndpoint

	if config.ProjectID == "" {
		return nil, connect.ErrProjectIDRequired
	}

	if config.AccessToken == "" && (config.ClientID == "" || config.ClientSecret == "") {
		return nil, connect.ErrCredentialsRequired
	}

	cli, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// NewWithClientCredentials creates a client using the OAuth
// client_credentials grant against the default API endpoint.
func NewWithClientCredentials(ctx context.Context, projectID, clientID, clientSecret string, environment connect.Environment) (connect.Client, error) {
	return New(ctx, &connect.Config{
		ProjectID:    projectID,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Environment:  environment,
	})
}

// NewFromEnvironment creates a client from PD_* environment variables:
// PD_PROJECT_ID, PD_CLIENT_ID, PD_CLIENT_SECRET, and optionally
// PD_ENVIRONMENT and PD_API_URL.
func NewFromEnvironment(ctx context.Context) (connect.Client, error) {
	return New(ctx, &connect.Config{
		APIEndpoint:  os.Getenv("PD_API_URL"),
		ProjectID:    os.Getenv("PD_PROJECT_ID"),
		ClientID:     os.Getenv("PD_CLIENT_ID"),
		ClientSecret: os.Getenv("PD_CLIENT_SECRET"),
		Environment:  connect.Environment(os.Getenv("PD_ENVIRONMENT")),
	})
}
