package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipedream-labs/connect-go/internal/client"
	"github.com/pipedream-labs/connect-go/pkg/connect"
)

// newBodyServer returns a server that answers every request with 200 OK
// and the given body.
func newBodyServer(body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(body))
	}))
}

func TestMalformedResponseBody(t *testing.T) {
	t.Parallel()

	server := newBodyServer(`not-json`)
	defer server.Close()

	cli := client.NewTestClient(server.URL)
	ctx := context.Background()

	_, err := cli.Tokens().Create(ctx, &connect.ConnectTokenCreateRequest{ExternalUserID: "user-1"})
	require.Error(t, err)
	assert.True(t, connect.IsAPIError(err))

	var apiErr *connect.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusOK, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "not-json")

	_, err = cli.Accounts().List(ctx, nil)
	require.Error(t, err)
	assert.True(t, connect.IsAPIError(err))

	_, err = cli.Triggers().Get(ctx, "dc_1", "user-1")
	require.Error(t, err)
	assert.True(t, connect.IsAPIError(err))
}

func TestIncompleteResponseBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		call func(cli *client.Client) error
	}{
		{
			name: "connect token missing fields",
			body: `{}`,
			call: func(cli *client.Client) error {
				_, err := cli.Tokens().Create(context.Background(), &connect.ConnectTokenCreateRequest{
					ExternalUserID: "user-1",
				})

				return err
			},
		},
		{
			name: "account missing id",
			body: `{"data": {}}`,
			call: func(cli *client.Client) error {
				_, err := cli.Accounts().Get(context.Background(), "apn_1", false)

				return err
			},
		},
		{
			name: "component missing key and props",
			body: `{"data": {"name": "Send Message"}}`,
			call: func(cli *client.Client) error {
				_, err := cli.Components().Get(context.Background(), connect.ComponentTypeActions, "slack-send-message")

				return err
			},
		},
		{
			name: "deployed trigger missing ids",
			body: `{"data": {}}`,
			call: func(cli *client.Client) error {
				_, err := cli.Triggers().Deploy(context.Background(), &connect.DeployTriggerRequest{
					TriggerKey:     "slack-new-message",
					ExternalUserID: "user-1",
				})

				return err
			},
		},
		{
			name: "rate limit missing token",
			body: `{}`,
			call: func(cli *client.Client) error {
				_, err := cli.RateLimits().Create(context.Background(), &connect.RateLimitCreateRequest{
					WindowSizeSeconds: 10,
					RequestsPerWindow: 100,
				})

				return err
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newBodyServer(tt.body)
			defer server.Close()

			err := tt.call(client.NewTestClient(server.URL))
			require.Error(t, err)
			assert.True(t, connect.IsAPIError(err))

			var apiErr *connect.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusOK, apiErr.StatusCode)
		})
	}
}
