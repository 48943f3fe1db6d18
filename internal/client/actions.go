package client

import (
	"context"
	"fmt"

	internalhttp "github.com/pipedream-labs/connect-go/internal/http"
	"github.com/pipedream-labs/connect-go/pkg/connect"
)

// ActionsClient implements connect.ActionsClient.
type ActionsClient struct {
	httpClient *internalhttp.Client
	projectID  string
}

// NewActionsClient creates a new actions client.
func NewActionsClient(httpClient *internalhttp.Client, projectID string) *ActionsClient {
	return &ActionsClient{
		httpClient: httpClient,
		projectID:  projectID,
	}
}

// Run implements connect.ActionsClient.Run.
func (c *ActionsClient) Run(ctx context.Context, request *connect.RunActionRequest) (*connect.ActionResult, error) {
	if request == nil || request.ActionKey == "" {
		return nil, connect.ErrActionKeyRequired
	}

	if request.ExternalUserID == "" {
		return nil, connect.ErrExternalUserIDRequired
	}

	path := projectPath(c.projectID, "/actions/run")

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("running action: %w", err)
	}

	var result connect.ActionResult

	err = decodeJSON(resp, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing action result: %w", err)
	}

	return &result, nil
}
