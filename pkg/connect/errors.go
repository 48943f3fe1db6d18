package connect

import (
	"encoding/json"
	"errors"
	"fmt"
)

// AuthError represents an authentication failure: bad client credentials, a
// rejected or expired token, or a 401/403 response from the API. Callers can
// use it to distinguish "must re-authenticate" from "operation failed".
type AuthError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.StatusCode == 0 {
		return "authentication failed: " + e.Message
	}

	return fmt.Sprintf("authentication failed: %s (status: %d)", e.Message, e.StatusCode)
}

// APIError represents any non-authentication failure from the API: bad
// request, not found, server error, or a malformed response body.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return "API request failed: " + e.Message
	}

	return fmt.Sprintf("API request failed: %s (status: %d)", e.Message, e.StatusCode)
}

// Invalid-input errors, raised by local argument validation before any
// network call is made.
var (
	ErrExternalUserIDRequired    = errors.New("external user id is required")
	ErrAccountIDRequired         = errors.New("account id is required")
	ErrAppIDRequired             = errors.New("app id is required")
	ErrComponentKeyRequired      = errors.New("component key is required")
	ErrActionKeyRequired         = errors.New("action key is required")
	ErrTriggerKeyRequired        = errors.New("trigger key is required")
	ErrDeployedTriggerIDRequired = errors.New("deployed trigger id is required")
	ErrInvalidComponentType      = errors.New("component type must be 'triggers', 'actions', or 'components'")
	ErrWebhookWorkflowConflict   = errors.New("provide either a webhook URL or a workflow id, not both")
	ErrWindowSizeInvalid         = errors.New("window size must be a positive number of seconds")
	ErrRequestsPerWindowInvalid  = errors.New("requests per window must be positive")
)

// Configuration errors.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
	ErrProjectIDRequired   = errors.New("project id is required")
	ErrCredentialsRequired = errors.New("client id and client secret (or an access token) are required")
)

// IsAuthError reports whether err is (or wraps) an authentication error.
func IsAuthError(err error) bool {
	authErr := &AuthError{}

	return errors.As(err, &authErr)
}

// IsAPIError reports whether err is (or wraps) a general API error.
func IsAPIError(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr)
}

// IsNotFound reports whether err is an API error with a 404 status.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}

	return false
}

// errorEnvelope matches the error shapes the API is known to return:
// {"error": {"message": "..."}} and {"error": "..."}.
type errorEnvelope struct {
	Error json.RawMessage `json:"error"`
}

// ParseErrorMessage extracts a human-readable message from an API error
// body. It returns an empty string when the body carries no recognizable
// error shape.
func ParseErrorMessage(body []byte) string {
	var envelope errorEnvelope

	err := json.Unmarshal(body, &envelope)
	if err != nil || len(envelope.Error) == 0 {
		return ""
	}

	var message string
	if json.Unmarshal(envelope.Error, &message) == nil {
		return message
	}

	var detail struct {
		Message string `json:"message"`
	}

	if json.Unmarshal(envelope.Error, &detail) == nil {
		return detail.Message
	}

	return ""
}
