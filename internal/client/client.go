// Package client implements the connect.Client interface on top of the
// internal HTTP transport.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/pipedream-labs/connect-go/internal/auth"
	"github.com/pipedream-labs/connect-go/internal/constants"
	internalhttp "github.com/pipedream-labs/connect-go/internal/http"
	"github.com/pipedream-labs/connect-go/pkg/connect"
)

// Client is the concrete implementation of connect.Client.
type Client struct {
	httpClient   *internalhttp.Client
	tokenManager auth.TokenManager
	projectID    string

	tokens     *TokensClient
	accounts   *AccountsClient
	users      *UsersClient
	components *ComponentsClient
	actions    *ActionsClient
	triggers   *TriggersClient
	rateLimits *RateLimitsClient
}

// New creates a client from config. Config validation and endpoint
// normalization happen in the pdclient package; this constructor expects a
// complete config.
func New(ctx context.Context, config *connect.Config) (*Client, error) {
	if config == nil {
		return nil, connect.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, connect.ErrAPIEndpointRequired
	}

	if config.ProjectID == "" {
		return nil, connect.ErrProjectIDRequired
	}

	tokenManager, err := createTokenManager(config)
	if err != nil {
		return nil, err
	}

	httpClient, err := buildHTTPClient(config, tokenManager)
	if err != nil {
		return nil, err
	}

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		projectID:    config.ProjectID,
	}

	client.initializeResourceClients()

	return client, nil
}

// createTokenManager picks the auth strategy from config. A static access
// token takes precedence over client credentials.
func createTokenManager(config *connect.Config) (auth.TokenManager, error) {
	if config.AccessToken != "" {
		return &staticTokenManager{token: config.AccessToken}, nil
	}

	if config.ClientID != "" && config.ClientSecret != "" {
		tokenURL := config.TokenURL
		if tokenURL == "" {
			tokenURL = config.APIEndpoint + constants.OAuthTokenPath
		}

		return auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     tokenURL,
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
		}), nil
	}

	return nil, connect.ErrCredentialsRequired
}

func buildHTTPClient(config *connect.Config, tokenManager auth.TokenManager) (*internalhttp.Client, error) {
	opts := []internalhttp.Option{}

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.Environment != "" {
		opts = append(opts, internalhttp.WithEnvironment(string(config.Environment)))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, internalhttp.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		waitMin := config.RetryWaitMin
		if waitMin <= 0 {
			waitMin = constants.DefaultRetryWaitMin
		}

		waitMax := config.RetryWaitMax
		if waitMax <= 0 {
			waitMax = constants.DefaultRetryWaitMax
		}

		opts = append(opts, internalhttp.WithRetryConfig(config.RetryMax, waitMin, waitMax))
	}

	if config.Interceptors != nil {
		opts = append(opts, internalhttp.WithInterceptors(config.Interceptors))
	}

	if config.Cache != nil {
		cache, err := connect.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("building cache: %w", err)
		}

		opts = append(opts, internalhttp.WithCache(cache, config.Cache.TTL()))
	}

	return internalhttp.NewClient(config.APIEndpoint, tokenManager, opts...), nil
}

// initializeResourceClients wires the per-resource clients to the shared
// transport.
func (c *Client) initializeResourceClients() {
	c.tokens = NewTokensClient(c.httpClient, c.projectID)
	c.accounts = NewAccountsClient(c.httpClient, c.projectID)
	c.users = NewUsersClient(c.httpClient, c.projectID)
	c.components = NewComponentsClient(c.httpClient, c.projectID)
	c.actions = NewActionsClient(c.httpClient, c.projectID)
	c.triggers = NewTriggersClient(c.httpClient, c.projectID)
	c.rateLimits = NewRateLimitsClient(c.httpClient)
}

// Tokens returns the connect tokens client.
func (c *Client) Tokens() connect.TokensClient {
	return c.tokens
}

// Accounts returns the accounts client.
func (c *Client) Accounts() connect.AccountsClient {
	return c.accounts
}

// Users returns the external users client.
func (c *Client) Users() connect.UsersClient {
	return c.users
}

// Components returns the component registry client.
func (c *Client) Components() connect.ComponentsClient {
	return c.components
}

// Actions returns the actions client.
func (c *Client) Actions() connect.ActionsClient {
	return c.actions
}

// Triggers returns the triggers client.
func (c *Client) Triggers() connect.TriggersClient {
	return c.triggers
}

// RateLimits returns the rate limits client.
func (c *Client) RateLimits() connect.RateLimitsClient {
	return c.rateLimits
}

// GetToken returns the current access token.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", auth.ErrNoCredentials
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("getting token: %w", err)
	}

	return token, nil
}

// Close releases the connection pool and any cache backend.
func (c *Client) Close() error {
	return c.httpClient.Close()
}

// projectPath builds a project-scoped API path.
func projectPath(projectID, suffix string) string {
	return "/connect/" + projectID + suffix
}

// staticTokenManager serves a fixed token that never refreshes.
type staticTokenManager struct {
	token string
}

func (m *staticTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, nil
}

func (m *staticTokenManager) RefreshToken(ctx context.Context) (string, error) {
	return m.token, nil
}

func (m *staticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}
