package connect

import (
	"net/url"
	"strconv"
)

// ListOptions carries the cursor pagination parameters shared by all list
// endpoints.
type ListOptions struct {
	// Limit is the maximum number of items per page. Zero means the
	// server default.
	Limit int
	// Cursor resumes listing from a previous page's end cursor.
	Cursor string
}

// ToValues converts the options into URL query values.
func (o *ListOptions) ToValues() url.Values {
	values := url.Values{}
	if o == nil {
		return values
	}

	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
	}

	if o.Cursor != "" {
		values.Set("cursor", o.Cursor)
	}

	return values
}

// AccountListOptions filters the accounts list.
type AccountListOptions struct {
	ListOptions

	// App filters by app ID or name slug (e.g. "slack" or "app_OkrhR1").
	App string
	// OAuthAppID filters accounts connected through one OAuth app.
	OAuthAppID string
	// ExternalUserID filters accounts owned by one end user.
	ExternalUserID string
	// IncludeCredentials includes account credentials in the response.
	// Handle with care.
	IncludeCredentials bool
}

// ToValues converts the options into URL query values.
func (o *AccountListOptions) ToValues() url.Values {
	if o == nil {
		return url.Values{}
	}

	values := o.ListOptions.ToValues()

	if o.App != "" {
		values.Set("app", o.App)
	}

	if o.OAuthAppID != "" {
		values.Set("oauth_app_id", o.OAuthAppID)
	}

	if o.ExternalUserID != "" {
		values.Set("external_user_id", o.ExternalUserID)
	}

	if o.IncludeCredentials {
		values.Set("include_credentials", "true")
	}

	return values
}

// ComponentListOptions filters the component registry list.
type ComponentListOptions struct {
	ListOptions

	// App filters by app ID or name slug.
	App string
	// Query searches components by key and name.
	Query string
}

// ToValues converts the options into URL query values.
func (o *ComponentListOptions) ToValues() url.Values {
	if o == nil {
		return url.Values{}
	}

	values := o.ListOptions.ToValues()

	if o.App != "" {
		values.Set("app", o.App)
	}

	if o.Query != "" {
		values.Set("q", o.Query)
	}

	return values
}

// DeployedTriggerListOptions filters the deployed triggers list.
// ExternalUserID is required.
type DeployedTriggerListOptions struct {
	ListOptions

	ExternalUserID string
}

// ToValues converts the options into URL query values.
func (o *DeployedTriggerListOptions) ToValues() url.Values {
	if o == nil {
		return url.Values{}
	}

	values := o.ListOptions.ToValues()

	if o.ExternalUserID != "" {
		values.Set("external_user_id", o.ExternalUserID)
	}

	return values
}
