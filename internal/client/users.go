package client

import (
	"context"
	"fmt"

	internalhttp "github.com/pipedream-labs/connect-go/internal/http"
	"github.com/pipedream-labs/connect-go/pkg/connect"
)

// UsersClient implements connect.UsersClient.
type UsersClient struct {
	httpClient *internalhttp.Client
	projectID  string
}

// NewUsersClient creates a new external users client.
func NewUsersClient(httpClient *internalhttp.Client, projectID string) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
		projectID:  projectID,
	}
}

// Delete implements connect.UsersClient.Delete.
func (c *UsersClient) Delete(ctx context.Context, externalUserID string) error {
	if externalUserID == "" {
		return connect.ErrExternalUserIDRequired
	}

	path := projectPath(c.projectID, "/users/"+externalUserID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting external user: %w", err)
	}

	return nil
}
