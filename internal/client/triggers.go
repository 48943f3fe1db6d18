package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	internalhttp "github.com/pipedream-labs/connect-go/internal/http"
	"github.com/pipedream-labs/connect-go/pkg/connect"
)

// TriggersClient implements connect.TriggersClient.
type TriggersClient struct {
	httpClient *internalhttp.Client
	projectID  string
}

// NewTriggersClient creates a new triggers client.
func NewTriggersClient(httpClient *internalhttp.Client, projectID string) *TriggersClient {
	return &TriggersClient{
		httpClient: httpClient,
		projectID:  projectID,
	}
}

// Deploy implements connect.TriggersClient.Deploy.
func (c *TriggersClient) Deploy(ctx context.Context, request *connect.DeployTriggerRequest) (*connect.DeployedTrigger, error) {
	if request == nil || request.TriggerKey == "" {
		return nil, connect.ErrTriggerKeyRequired
	}

	if request.ExternalUserID == "" {
		return nil, connect.ErrExternalUserIDRequired
	}

	// Events go to a webhook or a workflow, not both. Neither is also
	// fine; some triggers deliver internally.
	if request.WebhookURL != "" && request.WorkflowID != "" {
		return nil, connect.ErrWebhookWorkflowConflict
	}

	path := projectPath(c.projectID, "/triggers/deploy")

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("deploying trigger: %w", err)
	}

	var envelope connect.DataEnvelope[connect.DeployedTrigger]

	err = decodeJSON(resp, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing deployed trigger: %w", err)
	}

	if envelope.Data.ID == "" || envelope.Data.ComponentID == "" {
		return nil, fmt.Errorf("parsing deployed trigger: %w", unexpectedResponse(resp, "deployed trigger"))
	}

	return &envelope.Data, nil
}

// List implements connect.TriggersClient.List.
func (c *TriggersClient) List(ctx context.Context, opts *connect.DeployedTriggerListOptions) (*connect.ListResponse[connect.DeployedTrigger], error) {
	if opts == nil || opts.ExternalUserID == "" {
		return nil, connect.ErrExternalUserIDRequired
	}

	path := projectPath(c.projectID, "/deployed-triggers")

	resp, err := c.httpClient.Get(ctx, path, opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing deployed triggers: %w", err)
	}

	var list connect.ListResponse[connect.DeployedTrigger]

	err = decodeJSON(resp, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing deployed triggers list: %w", err)
	}

	return &list, nil
}

// Get implements connect.TriggersClient.Get.
func (c *TriggersClient) Get(ctx context.Context, deployedTriggerID, externalUserID string) (*connect.DeployedTrigger, error) {
	if err := requireTriggerArgs(deployedTriggerID, externalUserID); err != nil {
		return nil, err
	}

	path := projectPath(c.projectID, "/deployed-triggers/"+deployedTriggerID)
	query := url.Values{"external_user_id": []string{externalUserID}}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting deployed trigger: %w", err)
	}

	var envelope connect.DataEnvelope[connect.DeployedTrigger]

	err = decodeJSON(resp, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing deployed trigger: %w", err)
	}

	return &envelope.Data, nil
}

// Delete implements connect.TriggersClient.Delete.
func (c *TriggersClient) Delete(ctx context.Context, deployedTriggerID, externalUserID string, ignoreHookErrors bool) error {
	if err := requireTriggerArgs(deployedTriggerID, externalUserID); err != nil {
		return err
	}

	path := projectPath(c.projectID, "/deployed-triggers/"+deployedTriggerID)

	query := url.Values{"external_user_id": []string{externalUserID}}
	if ignoreHookErrors {
		query.Set("ignoreHookErrors", "true")
	}

	_, err := c.httpClient.DeleteQuery(ctx, path, query)
	if err != nil {
		return fmt.Errorf("deleting deployed trigger: %w", err)
	}

	return nil
}

// ListEvents implements connect.TriggersClient.ListEvents.
func (c *TriggersClient) ListEvents(ctx context.Context, deployedTriggerID, externalUserID string, limit int) ([]connect.TriggerEvent, error) {
	if err := requireTriggerArgs(deployedTriggerID, externalUserID); err != nil {
		return nil, err
	}

	path := projectPath(c.projectID, "/deployed-triggers/"+deployedTriggerID+"/events")

	query := url.Values{"external_user_id": []string{externalUserID}}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing trigger events: %w", err)
	}

	var envelope connect.DataEnvelope[[]connect.TriggerEvent]

	err = decodeJSON(resp, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing trigger events: %w", err)
	}

	return envelope.Data, nil
}

// GetWebhooks implements connect.TriggersClient.GetWebhooks.
func (c *TriggersClient) GetWebhooks(ctx context.Context, deployedTriggerID, externalUserID string) (*connect.WebhookURLs, error) {
	if err := requireTriggerArgs(deployedTriggerID, externalUserID); err != nil {
		return nil, err
	}

	path := projectPath(c.projectID, "/deployed-triggers/"+deployedTriggerID+"/webhooks")
	query := url.Values{"external_user_id": []string{externalUserID}}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting trigger webhooks: %w", err)
	}

	var webhooks connect.WebhookURLs

	err = decodeJSON(resp, &webhooks)
	if err != nil {
		return nil, fmt.Errorf("parsing trigger webhooks: %w", err)
	}

	return &webhooks, nil
}

// UpdateWebhooks implements connect.TriggersClient.UpdateWebhooks.
func (c *TriggersClient) UpdateWebhooks(ctx context.Context, deployedTriggerID, externalUserID string, webhookURLs []string) (*connect.WebhookURLs, error) {
	if err := requireTriggerArgs(deployedTriggerID, externalUserID); err != nil {
		return nil, err
	}

	path := projectPath(c.projectID, "/deployed-triggers/"+deployedTriggerID+"/webhooks")
	query := url.Values{"external_user_id": []string{externalUserID}}
	body := connect.WebhookURLs{WebhookURLs: webhookURLs}

	resp, err := c.httpClient.PutQuery(ctx, path, query, body)
	if err != nil {
		return nil, fmt.Errorf("updating trigger webhooks: %w", err)
	}

	var webhooks connect.WebhookURLs

	err = decodeJSON(resp, &webhooks)
	if err != nil {
		return nil, fmt.Errorf("parsing trigger webhooks: %w", err)
	}

	return &webhooks, nil
}

// GetWorkflows implements connect.TriggersClient.GetWorkflows.
func (c *TriggersClient) GetWorkflows(ctx context.Context, deployedTriggerID, externalUserID string) (*connect.WorkflowIDs, error) {
	if err := requireTriggerArgs(deployedTriggerID, externalUserID); err != nil {
		return nil, err
	}

	path := projectPath(c.projectID, "/deployed-triggers/"+deployedTriggerID+"/workflows")
	query := url.Values{"external_user_id": []string{externalUserID}}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting trigger workflows: %w", err)
	}

	var workflows connect.WorkflowIDs

	err = decodeJSON(resp, &workflows)
	if err != nil {
		return nil, fmt.Errorf("parsing trigger workflows: %w", err)
	}

	return &workflows, nil
}

// UpdateWorkflows implements connect.TriggersClient.UpdateWorkflows.
func (c *TriggersClient) UpdateWorkflows(ctx context.Context, deployedTriggerID, externalUserID string, workflowIDs []string) (*connect.WorkflowIDs, error) {
	if err := requireTriggerArgs(deployedTriggerID, externalUserID); err != nil {
		return nil, err
	}

	path := projectPath(c.projectID, "/deployed-triggers/"+deployedTriggerID+"/workflows")
	query := url.Values{"external_user_id": []string{externalUserID}}
	body := connect.WorkflowIDs{WorkflowIDs: workflowIDs}

	resp, err := c.httpClient.PutQuery(ctx, path, query, body)
	if err != nil {
		return nil, fmt.Errorf("updating trigger workflows: %w", err)
	}

	var workflows connect.WorkflowIDs

	err = decodeJSON(resp, &workflows)
	if err != nil {
		return nil, fmt.Errorf("parsing trigger workflows: %w", err)
	}

	return &workflows, nil
}

func requireTriggerArgs(deployedTriggerID, externalUserID string) error {
	if deployedTriggerID == "" {
		return connect.ErrDeployedTriggerIDRequired
	}

	if externalUserID == "" {
		return connect.ErrExternalUserIDRequired
	}

	return nil
}
