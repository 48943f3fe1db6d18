package client

import (
	internalhttp "github.com/pipedream-labs/connect-go/internal/http"
)

// TestProjectID is the project used by test clients.
const TestProjectID = "proj_test123"

// NewTestClient creates a client against baseURL without a token manager,
// for use with httptest servers.
func NewTestClient(baseURL string) *Client {
	httpClient := internalhttp.NewClient(baseURL, nil)

	client := &Client{
		httpClient: httpClient,
		projectID:  TestProjectID,
	}

	client.initializeResourceClients()

	return client
}
