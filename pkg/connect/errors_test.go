package connect_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pipedream-labs/connect-go/pkg/connect"
)

func TestAuthError_Error(t *testing.T) {
	t.Parallel()

	err := &connect.AuthError{StatusCode: 401, Message: "invalid client credentials"}
	assert.Equal(t, "authentication failed: invalid client credentials (status: 401)", err.Error())

	err = &connect.AuthError{Message: "network error during token retrieval"}
	assert.Equal(t, "authentication failed: network error during token retrieval", err.Error())
}

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	err := &connect.APIError{StatusCode: 404, Message: "account not found"}
	assert.Equal(t, "API request failed: account not found (status: 404)", err.Error())

	err = &connect.APIError{Message: "failed to decode response"}
	assert.Equal(t, "API request failed: failed to decode response", err.Error())
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	authErr := &connect.AuthError{StatusCode: 401, Message: "bad token"}
	apiErr := &connect.APIError{StatusCode: 404, Message: "not found"}
	wrapped := fmt.Errorf("getting account: %w", apiErr)

	assert.True(t, connect.IsAuthError(authErr))
	assert.False(t, connect.IsAuthError(apiErr))
	assert.True(t, connect.IsAuthError(fmt.Errorf("outer: %w", authErr)))

	assert.True(t, connect.IsAPIError(apiErr))
	assert.True(t, connect.IsAPIError(wrapped))
	assert.False(t, connect.IsAPIError(authErr))

	assert.True(t, connect.IsNotFound(wrapped))
	assert.False(t, connect.IsNotFound(&connect.APIError{StatusCode: 500}))
	assert.False(t, connect.IsNotFound(errors.New("plain error")))
}

func TestParseErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "nested error object",
			body:     `{"error": {"message": "Account not found"}}`,
			expected: "Account not found",
		},
		{
			name:     "plain error string",
			body:     `{"error": "invalid_client"}`,
			expected: "invalid_client",
		},
		{
			name:     "no error key",
			body:     `{"data": []}`,
			expected: "",
		},
		{
			name:     "not JSON",
			body:     `<html>Bad Gateway</html>`,
			expected: "",
		},
		{
			name:     "empty body",
			body:     ``,
			expected: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, connect.ParseErrorMessage([]byte(tt.body)))
		})
	}
}
