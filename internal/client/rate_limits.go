package client

import (
	"context"
	"fmt"

	internalhttp "github.com/pipedream-labs/connect-go/internal/http"
	"github.com/pipedream-labs/connect-go/pkg/connect"
)

// RateLimitsClient implements connect.RateLimitsClient.
//
// Rate limits are account-level, not project-scoped, so this client does
// not carry a project ID.
type RateLimitsClient struct {
	httpClient *internalhttp.Client
}

// NewRateLimitsClient creates a new rate limits client.
func NewRateLimitsClient(httpClient *internalhttp.Client) *RateLimitsClient {
	return &RateLimitsClient{
		httpClient: httpClient,
	}
}

// Create implements connect.RateLimitsClient.Create.
func (c *RateLimitsClient) Create(ctx context.Context, request *connect.RateLimitCreateRequest) (*connect.RateLimitToken, error) {
	if request == nil || request.WindowSizeSeconds <= 0 {
		return nil, connect.ErrWindowSizeInvalid
	}

	if request.RequestsPerWindow <= 0 {
		return nil, connect.ErrRequestsPerWindowInvalid
	}

	resp, err := c.httpClient.Post(ctx, "/connect/rate_limits", request)
	if err != nil {
		return nil, fmt.Errorf("creating rate limit: %w", err)
	}

	var token connect.RateLimitToken

	err = decodeJSON(resp, &token)
	if err != nil {
		return nil, fmt.Errorf("parsing rate limit token: %w", err)
	}

	if token.Token == "" {
		return nil, fmt.Errorf("parsing rate limit token: %w", unexpectedResponse(resp, "rate limit"))
	}

	return &token, nil
}
