package constants

import "time"

// API endpoints and headers.
const (
	// DefaultAPIEndpoint is the base URL for the Pipedream Connect API.
	DefaultAPIEndpoint = "https://api.pipedream.com/v1"

	// OAuthTokenPath is the path of the OAuth token endpoint, relative to the API base URL.
	OAuthTokenPath = "/oauth/token"

	// EnvironmentHeader carries the project environment on every request.
	EnvironmentHeader = "X-PD-Environment"

	// RequestIDHeader carries a client-generated request identifier.
	RequestIDHeader = "X-Request-ID"

	// DefaultUserAgent is sent when the caller does not override it.
	DefaultUserAgent = "connect-go"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as token exchange.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Token lifetime handling.
const (
	// TokenExpiryBuffer is subtracted from a token's lifetime so it is
	// refreshed slightly before the server-side expiry.
	TokenExpiryBuffer = 30 * time.Second

	// DefaultTokenTTL is assumed when the token response omits expires_in.
	DefaultTokenTTL = 3600 * time.Second
)

// Pagination defaults.
const (
	// StandardPageSize is the default page size for list commands.
	StandardPageSize = 50

	// MaxTriggerEventLimit is the largest event count the API returns per call.
	MaxTriggerEventLimit = 100
)

// Cache defaults.
const (
	// DefaultCacheSize is the maximum number of entries in the memory cache.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the lifetime of cached GET responses.
	DefaultCacheTTL = 1 * time.Minute
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// CLI output formatting.
const (
	// JSONIndentSize is the indent width for JSON and YAML output.
	JSONIndentSize = 2
)
