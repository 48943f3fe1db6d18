package client

import (
	"context"
	"fmt"

	internalhttp "github.com/pipedream-labs/connect-go/internal/http"
	"github.com/pipedream-labs/connect-go/pkg/connect"
)

// ComponentsClient implements connect.ComponentsClient.
type ComponentsClient struct {
	httpClient *internalhttp.Client
	projectID  string
}

// NewComponentsClient creates a new component registry client.
func NewComponentsClient(httpClient *internalhttp.Client, projectID string) *ComponentsClient {
	return &ComponentsClient{
		httpClient: httpClient,
		projectID:  projectID,
	}
}

// List implements connect.ComponentsClient.List.
func (c *ComponentsClient) List(ctx context.Context, componentType connect.ComponentType, opts *connect.ComponentListOptions) (*connect.ListResponse[connect.ComponentSummary], error) {
	if !componentType.Valid() {
		return nil, fmt.Errorf("%w: %s", connect.ErrInvalidComponentType, componentType)
	}

	path := projectPath(c.projectID, "/"+string(componentType))

	resp, err := c.httpClient.Get(ctx, path, opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", componentType, err)
	}

	var list connect.ListResponse[connect.ComponentSummary]

	err = decodeJSON(resp, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list: %w", componentType, err)
	}

	return &list, nil
}

// Get implements connect.ComponentsClient.Get.
func (c *ComponentsClient) Get(ctx context.Context, componentType connect.ComponentType, key string) (*connect.Component, error) {
	if !componentType.Valid() {
		return nil, fmt.Errorf("%w: %s", connect.ErrInvalidComponentType, componentType)
	}

	if key == "" {
		return nil, connect.ErrComponentKeyRequired
	}

	path := projectPath(c.projectID, "/"+string(componentType)+"/"+key)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting component: %w", err)
	}

	var envelope connect.DataEnvelope[connect.Component]

	err = decodeJSON(resp, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing component: %w", err)
	}

	if envelope.Data.Key == "" || envelope.Data.ConfigurableProps == nil {
		return nil, fmt.Errorf("parsing component: %w", unexpectedResponse(resp, "component"))
	}

	return &envelope.Data, nil
}

// ReloadProps implements connect.ComponentsClient.ReloadProps.
func (c *ComponentsClient) ReloadProps(ctx context.Context, componentType connect.ComponentType, request *connect.ReloadPropsRequest) (*connect.ReloadPropsResult, error) {
	if !componentType.Valid() {
		return nil, fmt.Errorf("%w: %s", connect.ErrInvalidComponentType, componentType)
	}

	if request == nil || request.ComponentKey == "" {
		return nil, connect.ErrComponentKeyRequired
	}

	if request.ExternalUserID == "" {
		return nil, connect.ErrExternalUserIDRequired
	}

	path := projectPath(c.projectID, "/"+string(componentType)+"/props")

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("reloading component props: %w", err)
	}

	var result connect.ReloadPropsResult

	err = decodeJSON(resp, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing reloaded props: %w", err)
	}

	return &result, nil
}
