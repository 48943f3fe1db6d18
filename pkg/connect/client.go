package connect

import (
	"context"
	"time"
)

// TokensClient mints connect tokens for external end users.
type TokensClient interface {
	Create(ctx context.Context, request *ConnectTokenCreateRequest) (*ConnectToken, error)
}

// AccountsClient manages connected accounts within the project.
type AccountsClient interface {
	List(ctx context.Context, opts *AccountListOptions) (*ListResponse[Account], error)
	Get(ctx context.Context, accountID string, includeCredentials bool) (*Account, error)
	Delete(ctx context.Context, accountID string) error
	DeleteByApp(ctx context.Context, appID string) error
}

// UsersClient manages external end users.
type UsersClient interface {
	// Delete removes an end user, all their connected accounts, and any
	// deployed triggers.
	Delete(ctx context.Context, externalUserID string) error
}

// ComponentsClient reads the component registry.
type ComponentsClient interface {
	List(ctx context.Context, componentType ComponentType, opts *ComponentListOptions) (*ListResponse[ComponentSummary], error)
	Get(ctx context.Context, componentType ComponentType, key string) (*Component, error)
	ReloadProps(ctx context.Context, componentType ComponentType, request *ReloadPropsRequest) (*ReloadPropsResult, error)
}

// ActionsClient invokes action components on behalf of external users.
type ActionsClient interface {
	Run(ctx context.Context, request *RunActionRequest) (*ActionResult, error)
}

// TriggersClient deploys and manages trigger instances.
type TriggersClient interface {
	Deploy(ctx context.Context, request *DeployTriggerRequest) (*DeployedTrigger, error)
	List(ctx context.Context, opts *DeployedTriggerListOptions) (*ListResponse[DeployedTrigger], error)
	Get(ctx context.Context, deployedTriggerID, externalUserID string) (*DeployedTrigger, error)
	Delete(ctx context.Context, deployedTriggerID, externalUserID string, ignoreHookErrors bool) error
	ListEvents(ctx context.Context, deployedTriggerID, externalUserID string, limit int) ([]TriggerEvent, error)
	GetWebhooks(ctx context.Context, deployedTriggerID, externalUserID string) (*WebhookURLs, error)
	UpdateWebhooks(ctx context.Context, deployedTriggerID, externalUserID string, webhookURLs []string) (*WebhookURLs, error)
	GetWorkflows(ctx context.Context, deployedTriggerID, externalUserID string) (*WorkflowIDs, error)
	UpdateWorkflows(ctx context.Context, deployedTriggerID, externalUserID string, workflowIDs []string) (*WorkflowIDs, error)
}

// RateLimitsClient defines rate limits for connect token usage.
type RateLimitsClient interface {
	Create(ctx context.Context, request *RateLimitCreateRequest) (*RateLimitToken, error)
}

// Client is the full Connect API surface.
type Client interface {
	Tokens() TokensClient
	Accounts() AccountsClient
	Users() UsersClient
	Components() ComponentsClient
	Actions() ActionsClient
	Triggers() TriggersClient
	RateLimits() RateLimitsClient

	// GetToken returns the current access token, minting or refreshing it
	// if necessary.
	GetToken(ctx context.Context) (string, error)

	// Close releases the underlying connection pool and any cache backend.
	// The client must not be used after Close.
	Close() error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a connect.Client.
//
// # Authentication
//
// Provide either ClientID/ClientSecret (OAuth client_credentials grant
// against the token endpoint) or a pre-minted AccessToken. When both are
// set the static token wins. With client credentials the token is cached
// in memory and re-minted shortly before expiry; concurrent calls racing
// on an expired token may each trigger a redundant (harmless) refresh.
//
// # Scoping
//
// ProjectID is required and appears in every project-scoped path.
// Environment, when set, is sent as the X-PD-Environment header.
type Config struct {
	// APIEndpoint is the base URL for the Connect API. pdclient.New
	// defaults it to https://api.pipedream.com/v1 and normalizes the
	// scheme and trailing slash.
	APIEndpoint string

	// ProjectID scopes all project-level operations (e.g. "proj_abc123").
	ProjectID string

	// Environment selects development or production deployed resources.
	Environment Environment

	// ClientID is the OAuth client ID for the client_credentials grant.
	ClientID string
	// ClientSecret is the OAuth client secret used with ClientID.
	ClientSecret string
	// AccessToken, if set, is used directly as a static Bearer token.
	AccessToken string
	// TokenURL overrides the OAuth token endpoint. Defaults to
	// APIEndpoint + "/oauth/token".
	TokenURL string

	// HTTPTimeout bounds each HTTP attempt. Context deadlines remain the
	// preferred way to bound whole operations.
	HTTPTimeout time.Duration
	// RetryMax is the maximum number of retries for transient failures
	// (>=500, 429, and connection errors). If 0, a default is used.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration

	// Debug enables verbose HTTP request/response logging when a Logger
	// is provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Cache optionally enables GET-response caching. Nil disables caching.
	Cache *CacheConfig

	// Interceptors optionally hook into every request and response.
	Interceptors *InterceptorChain
}
