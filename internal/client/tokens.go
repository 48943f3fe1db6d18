package client

import (
	"context"
	"fmt"

	internalhttp "github.com/pipedream-labs/connect-go/internal/http"
	"github.com/pipedream-labs/connect-go/pkg/connect"
)

// TokensClient implements connect.TokensClient.
type TokensClient struct {
	httpClient *internalhttp.Client
	projectID  string
}

// NewTokensClient creates a new connect tokens client.
func NewTokensClient(httpClient *internalhttp.Client, projectID string) *TokensClient {
	return &TokensClient{
		httpClient: httpClient,
		projectID:  projectID,
	}
}

// Create implements connect.TokensClient.Create.
func (c *TokensClient) Create(ctx context.Context, request *connect.ConnectTokenCreateRequest) (*connect.ConnectToken, error) {
	if request == nil || request.ExternalUserID == "" {
		return nil, connect.ErrExternalUserIDRequired
	}

	path := projectPath(c.projectID, "/tokens")

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating connect token: %w", err)
	}

	var token connect.ConnectToken

	err = decodeJSON(resp, &token)
	if err != nil {
		return nil, fmt.Errorf("parsing connect token: %w", err)
	}

	if token.Token == "" || token.ExpiresAt == "" || token.ConnectLinkURL == "" {
		return nil, fmt.Errorf("parsing connect token: %w", unexpectedResponse(resp, "connect token"))
	}

	return &token, nil
}
