package client

import (
	"context"
	"fmt"
	"net/url"

	internalhttp "github.com/pipedream-labs/connect-go/internal/http"
	"github.com/pipedream-labs/connect-go/pkg/connect"
)

// AccountsClient implements connect.AccountsClient.
type AccountsClient struct {
	httpClient *internalhttp.Client
	projectID  string
}

// NewAccountsClient creates a new accounts client.
func NewAccountsClient(httpClient *internalhttp.Client, projectID string) *AccountsClient {
	return &AccountsClient{
		httpClient: httpClient,
		projectID:  projectID,
	}
}

// List implements connect.AccountsClient.List.
func (c *AccountsClient) List(ctx context.Context, opts *connect.AccountListOptions) (*connect.ListResponse[connect.Account], error) {
	path := projectPath(c.projectID, "/accounts")

	resp, err := c.httpClient.Get(ctx, path, opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	// The data field arrives either as a plain array or nested under an
	// "accounts" key. AccountListEnvelope absorbs both.
	var envelope connect.AccountListEnvelope

	err = decodeJSON(resp, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing accounts list: %w", err)
	}

	return &connect.ListResponse[connect.Account]{
		PageInfo: envelope.PageInfo,
		Data:     envelope.Data,
	}, nil
}

// Get implements connect.AccountsClient.Get.
func (c *AccountsClient) Get(ctx context.Context, accountID string, includeCredentials bool) (*connect.Account, error) {
	if accountID == "" {
		return nil, connect.ErrAccountIDRequired
	}

	path := projectPath(c.projectID, "/accounts/"+accountID)

	var query url.Values
	if includeCredentials {
		query = url.Values{"include_credentials": []string{"true"}}
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}

	var envelope connect.DataEnvelope[connect.Account]

	err = decodeJSON(resp, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing account: %w", err)
	}

	if envelope.Data.ID == "" {
		return nil, fmt.Errorf("parsing account: %w", unexpectedResponse(resp, "account"))
	}

	return &envelope.Data, nil
}

// Delete implements connect.AccountsClient.Delete.
func (c *AccountsClient) Delete(ctx context.Context, accountID string) error {
	if accountID == "" {
		return connect.ErrAccountIDRequired
	}

	path := projectPath(c.projectID, "/accounts/"+accountID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	return nil
}

// DeleteByApp implements connect.AccountsClient.DeleteByApp.
func (c *AccountsClient) DeleteByApp(ctx context.Context, appID string) error {
	if appID == "" {
		return connect.ErrAppIDRequired
	}

	path := projectPath(c.projectID, "/apps/"+appID+"/accounts")

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting accounts for app: %w", err)
	}

	return nil
}
