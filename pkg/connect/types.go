package connect

import "encoding/json"

// Environment selects which deployed resources a project addresses.
type Environment string

// Known environments.
const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// ComponentType identifies a slice of the component registry.
type ComponentType string

// Known component types.
const (
	ComponentTypeTriggers   ComponentType = "triggers"
	ComponentTypeActions    ComponentType = "actions"
	ComponentTypeComponents ComponentType = "components"
)

// Valid reports whether t is one of the registry component types.
func (t ComponentType) Valid() bool {
	switch t {
	case ComponentTypeTriggers, ComponentTypeActions, ComponentTypeComponents:
		return true
	default:
		return false
	}
}

// PageInfo carries cursor pagination metadata on list responses.
type PageInfo struct {
	TotalCount  int    `json:"total_count"  yaml:"total_count"`
	Count       int    `json:"count"        yaml:"count"`
	StartCursor string `json:"start_cursor" yaml:"start_cursor"`
	EndCursor   string `json:"end_cursor"   yaml:"end_cursor"`
}

// ListResponse represents a cursor-paginated list response.
type ListResponse[T any] struct {
	PageInfo PageInfo `json:"page_info" yaml:"page_info"`
	Data     []T      `json:"data"      yaml:"data"`
}

// ConnectToken is a short-lived credential minted for an external end user
// to authorize account linking.
type ConnectToken struct {
	Token          string `json:"token"            yaml:"token"`
	ExpiresAt      string `json:"expires_at"       yaml:"expires_at"`
	ConnectLinkURL string `json:"connect_link_url" yaml:"connect_link_url"`
}

// ConnectTokenCreateRequest holds the arguments for minting a connect token.
type ConnectTokenCreateRequest struct {
	ExternalUserID     string   `json:"external_user_id"`
	AllowedOrigins     []string `json:"allowed_origins,omitempty"`
	SuccessRedirectURI string   `json:"success_redirect_uri,omitempty"`
	ErrorRedirectURI   string   `json:"error_redirect_uri,omitempty"`
	WebhookURI         string   `json:"webhook_uri,omitempty"`
}

// App describes the application a connected account belongs to.
type App struct {
	ID               string   `json:"id"                          yaml:"id"`
	Name             string   `json:"name"                        yaml:"name"`
	NameSlug         string   `json:"name_slug,omitempty"         yaml:"name_slug,omitempty"`
	AuthType         string   `json:"auth_type,omitempty"         yaml:"auth_type,omitempty"`
	Description      string   `json:"description,omitempty"       yaml:"description,omitempty"`
	ImgSrc           string   `json:"img_src,omitempty"           yaml:"img_src,omitempty"`
	CustomFieldsJSON string   `json:"custom_fields_json,omitempty" yaml:"custom_fields_json,omitempty"`
	Categories       []string `json:"categories,omitempty"        yaml:"categories,omitempty"`
}

// Account is a connected account owned by an external user.
type Account struct {
	ID              string                 `json:"id"                          yaml:"id"`
	Name            string                 `json:"name,omitempty"              yaml:"name,omitempty"`
	ExternalID      string                 `json:"external_id"                 yaml:"external_id"`
	Healthy         bool                   `json:"healthy"                     yaml:"healthy"`
	Dead            *bool                  `json:"dead,omitempty"              yaml:"dead,omitempty"`
	App             App                    `json:"app"                         yaml:"app"`
	CreatedAt       string                 `json:"created_at"                  yaml:"created_at"`
	UpdatedAt       string                 `json:"updated_at"                  yaml:"updated_at"`
	Credentials     map[string]interface{} `json:"credentials,omitempty"       yaml:"credentials,omitempty"`
	ExpiresAt       string                 `json:"expires_at,omitempty"        yaml:"expires_at,omitempty"`
	Error           interface{}            `json:"error,omitempty"             yaml:"error,omitempty"`
	LastRefreshedAt string                 `json:"last_refreshed_at,omitempty" yaml:"last_refreshed_at,omitempty"`
	NextRefreshAt   string                 `json:"next_refresh_at,omitempty"   yaml:"next_refresh_at,omitempty"`
}

// accountData tolerates both shapes the accounts list endpoint returns for
// its data field: a plain array, or an object nesting the array under
// "accounts".
type accountData []Account

func (d *accountData) UnmarshalJSON(raw []byte) error {
	var list []Account
	if err := json.Unmarshal(raw, &list); err == nil {
		*d = list

		return nil
	}

	var nested struct {
		Accounts []Account `json:"accounts"`
	}

	err := json.Unmarshal(raw, &nested)
	if err != nil {
		return err
	}

	*d = nested.Accounts

	return nil
}

// AccountListEnvelope is the raw accounts list response.
type AccountListEnvelope struct {
	PageInfo PageInfo    `json:"page_info"`
	Data     accountData `json:"data"`
}

// ComponentProp is a single property definition within a component.
type ComponentProp struct {
	Name           string                 `json:"name"                     yaml:"name"`
	Type           string                 `json:"type"                     yaml:"type"`
	Label          string                 `json:"label,omitempty"          yaml:"label,omitempty"`
	Description    string                 `json:"description,omitempty"    yaml:"description,omitempty"`
	App            string                 `json:"app,omitempty"            yaml:"app,omitempty"`
	Optional       bool                   `json:"optional,omitempty"       yaml:"optional,omitempty"`
	Default        interface{}            `json:"default,omitempty"        yaml:"default,omitempty"`
	RemoteOptions  *bool                  `json:"remoteOptions,omitempty"  yaml:"remoteOptions,omitempty"`
	Options        []interface{}          `json:"options,omitempty"        yaml:"options,omitempty"`
	CustomResponse bool                   `json:"customResponse,omitempty" yaml:"customResponse,omitempty"`
	UseQuery       bool                   `json:"useQuery,omitempty"       yaml:"useQuery,omitempty"`
	ReloadProps    bool                   `json:"reloadProps,omitempty"    yaml:"reloadProps,omitempty"`
	Static         map[string]interface{} `json:"static,omitempty"         yaml:"static,omitempty"`
}

// ComponentSummary is a registry listing entry.
type ComponentSummary struct {
	Name          string `json:"name"                     yaml:"name"`
	Version       string `json:"version"                  yaml:"version"`
	Key           string `json:"key"                      yaml:"key"`
	Description   string `json:"description,omitempty"    yaml:"description,omitempty"`
	ComponentType string `json:"component_type,omitempty" yaml:"component_type,omitempty"`
}

// Component is the full registry record, including configurable props.
type Component struct {
	ComponentSummary `yaml:",inline"`

	ConfigurableProps []ComponentProp `json:"configurable_props" yaml:"configurable_props"`
}

// DynamicProps is the prop structure returned after a props reload.
type DynamicProps struct {
	ID                string          `json:"id"                yaml:"id"`
	ConfigurableProps []ComponentProp `json:"configurableProps" yaml:"configurableProps"`
}

// ReloadPropsRequest holds the arguments for reloading component props.
type ReloadPropsRequest struct {
	ComponentKey    string                 `json:"id"`
	ExternalUserID  string                 `json:"external_user_id"`
	ConfiguredProps map[string]interface{} `json:"configured_props"`
	DynamicPropsID  string                 `json:"dynamic_props_id,omitempty"`
}

// ReloadPropsResult is the response to a props reload.
type ReloadPropsResult struct {
	DynamicProps DynamicProps  `json:"dynamicProps"           yaml:"dynamicProps"`
	Errors       []string      `json:"errors"                 yaml:"errors"`
	Observations []interface{} `json:"observations,omitempty" yaml:"observations,omitempty"`
}

// RunActionRequest holds the arguments for invoking an action component.
type RunActionRequest struct {
	ActionKey       string                 `json:"id"`
	ExternalUserID  string                 `json:"external_user_id"`
	ConfiguredProps map[string]interface{} `json:"configured_props"`
	DynamicPropsID  string                 `json:"dynamic_props_id,omitempty"`
}

// ActionResult carries an action's exports, observations, and return value.
type ActionResult struct {
	Exports map[string]interface{} `json:"exports" yaml:"exports"`
	Logs    []interface{}          `json:"os"      yaml:"os"`
	Ret     interface{}            `json:"ret"     yaml:"ret"`
}

// DeployTriggerRequest holds the arguments for deploying a trigger.
type DeployTriggerRequest struct {
	TriggerKey      string                 `json:"id"`
	ExternalUserID  string                 `json:"external_user_id"`
	ConfiguredProps map[string]interface{} `json:"configured_props"`
	WebhookURL      string                 `json:"webhook_url,omitempty"`
	WorkflowID      string                 `json:"workflowId,omitempty"`
	DynamicPropsID  string                 `json:"dynamic_props_id,omitempty"`
}

// DeployedTrigger is a running instance of a trigger component.
type DeployedTrigger struct {
	ID                string                 `json:"id"                 yaml:"id"`
	OwnerID           string                 `json:"owner_id"           yaml:"owner_id"`
	ComponentID       string                 `json:"component_id"       yaml:"component_id"`
	ConfigurableProps []ComponentProp        `json:"configurable_props" yaml:"configurable_props"`
	ConfiguredProps   map[string]interface{} `json:"configured_props"   yaml:"configured_props"`
	Active            bool                   `json:"active"             yaml:"active"`
	CreatedAt         int64                  `json:"created_at"         yaml:"created_at"`
	UpdatedAt         int64                  `json:"updated_at"         yaml:"updated_at"`
	Name              string                 `json:"name"               yaml:"name"`
	NameSlug          string                 `json:"name_slug"          yaml:"name_slug"`
}

// TriggerEvent is an event emitted by a deployed trigger.
type TriggerEvent struct {
	Payload   map[string]interface{} `json:"e"  yaml:"e"`
	Kind      string                 `json:"k"  yaml:"k"`
	Timestamp int64                  `json:"ts" yaml:"ts"`
	ID        string                 `json:"id" yaml:"id"`
}

// WebhookURLs is the set of webhook listeners on a deployed trigger.
type WebhookURLs struct {
	WebhookURLs []string `json:"webhook_urls" yaml:"webhook_urls"`
}

// WorkflowIDs is the set of workflow listeners on a deployed trigger.
type WorkflowIDs struct {
	WorkflowIDs []string `json:"workflow_ids" yaml:"workflow_ids"`
}

// RateLimitCreateRequest defines a rate limit window for connect tokens.
type RateLimitCreateRequest struct {
	WindowSizeSeconds int `json:"window_size_seconds"`
	RequestsPerWindow int `json:"requests_per_window"`
}

// RateLimitToken is the response to a rate limit definition.
type RateLimitToken struct {
	Token string `json:"token" yaml:"token"`
}

// DataEnvelope is the {"data": ...} wrapper many endpoints use.
type DataEnvelope[T any] struct {
	Data T `json:"data"`
}
