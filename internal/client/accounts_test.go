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

// newFailServer returns a server that fails the test if any request
// arrives. Used to verify local validation short-circuits requests.
func newFailServer(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		t.Errorf("unexpected request: %s %s", request.Method, request.URL.Path)
	}))
}

func TestAccountsClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/connect/proj_test123/accounts", request.URL.Path)
		assert.Equal(t, "slack", request.URL.Query().Get("app"))

		_, _ = writer.Write([]byte(`{
			"page_info": {"total_count": 1, "count": 1, "end_cursor": "next"},
			"data": [{"id": "apn_1", "external_id": "user-1", "healthy": true, "app": {"id": "app_1", "name": "Slack"}}]
		}`))
	}))
	defer server.Close()

	cli := client.NewTestClient(server.URL)

	accounts, err := cli.Accounts().List(context.Background(), &connect.AccountListOptions{App: "slack"})
	require.NoError(t, err)
	require.Len(t, accounts.Data, 1)
	assert.Equal(t, "apn_1", accounts.Data[0].ID)
	assert.Equal(t, "next", accounts.PageInfo.EndCursor)
}

func TestAccountsClient_List_NestedData(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{
			"page_info": {"total_count": 1, "count": 1},
			"data": {"accounts": [{"id": "apn_2", "external_id": "user-2", "healthy": false, "app": {"id": "app_2", "name": "GitLab"}}]}
		}`))
	}))
	defer server.Close()

	cli := client.NewTestClient(server.URL)

	accounts, err := cli.Accounts().List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, accounts.Data, 1)
	assert.Equal(t, "apn_2", accounts.Data[0].ID)
}

func TestAccountsClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/connect/proj_test123/accounts/apn_1", request.URL.Path)
		assert.Equal(t, "true", request.URL.Query().Get("include_credentials"))

		_, _ = writer.Write([]byte(`{"data": {"id": "apn_1", "external_id": "user-1", "healthy": true, "app": {"id": "app_1", "name": "Slack"}, "credentials": {"oauth_access_token": "secret"}}}`))
	}))
	defer server.Close()

	cli := client.NewTestClient(server.URL)

	account, err := cli.Accounts().Get(context.Background(), "apn_1", true)
	require.NoError(t, err)
	assert.Equal(t, "apn_1", account.ID)
	assert.Equal(t, "secret", account.Credentials["oauth_access_token"])
}

func TestAccountsClient_Get_NotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte(`{"error": {"message": "Account not found"}}`))
	}))
	defer server.Close()

	cli := client.NewTestClient(server.URL)

	_, err := cli.Accounts().Get(context.Background(), "apn_missing", false)
	require.Error(t, err)
	assert.True(t, connect.IsNotFound(err))
}

func TestAccountsClient_Delete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodDelete, request.Method)
		assert.Equal(t, "/connect/proj_test123/accounts/apn_1", request.URL.Path)
		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	cli := client.NewTestClient(server.URL)

	require.NoError(t, cli.Accounts().Delete(context.Background(), "apn_1"))
}

func TestAccountsClient_DeleteByApp(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodDelete, request.Method)
		assert.Equal(t, "/connect/proj_test123/apps/app_1/accounts", request.URL.Path)
		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	cli := client.NewTestClient(server.URL)

	require.NoError(t, cli.Accounts().DeleteByApp(context.Background(), "app_1"))
}

func TestAccountsClient_Validation(t *testing.T) {
	t.Parallel()

	server := newFailServer(t)
	defer server.Close()

	cli := client.NewTestClient(server.URL)
	ctx := context.Background()

	_, err := cli.Accounts().Get(ctx, "", false)
	assert.ErrorIs(t, err, connect.ErrAccountIDRequired)

	assert.ErrorIs(t, cli.Accounts().Delete(ctx, ""), connect.ErrAccountIDRequired)
	assert.ErrorIs(t, cli.Accounts().DeleteByApp(ctx, ""), connect.ErrAppIDRequired)
}
