package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipedream-labs/connect-go/internal/client"
	"github.com/pipedream-labs/connect-go/pkg/connect"
)

func TestComponentsClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/connect/proj_test123/triggers", request.URL.Path)
		assert.Equal(t, "gitlab", request.URL.Query().Get("app"))
		assert.Equal(t, "issue", request.URL.Query().Get("q"))

		_, _ = writer.Write([]byte(`{
			"page_info": {"total_count": 1, "count": 1},
			"data": [{"key": "gitlab-new-issue", "name": "New Issue", "version": "0.1.2"}]
		}`))
	}))
	defer server.Close()

	cli := client.NewTestClient(server.URL)

	components, err := cli.Components().List(context.Background(), connect.ComponentTypeTriggers, &connect.ComponentListOptions{
		App:   "gitlab",
		Query: "issue",
	})
	require.NoError(t, err)
	require.Len(t, components.Data, 1)
	assert.Equal(t, "gitlab-new-issue", components.Data[0].Key)
}

func TestComponentsClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/connect/proj_test123/actions/slack-send-message", request.URL.Path)

		_, _ = writer.Write([]byte(`{"data": {
			"key": "slack-send-message",
			"name": "Send Message",
			"version": "1.0.0",
			"configurable_props": [{"name": "slack", "type": "app", "app": "slack"}]
		}}`))
	}))
	defer server.Close()

	cli := client.NewTestClient(server.URL)

	component, err := cli.Components().Get(context.Background(), connect.ComponentTypeActions, "slack-send-message")
	require.NoError(t, err)
	assert.Equal(t, "slack-send-message", component.Key)
	require.Len(t, component.ConfigurableProps, 1)
	assert.Equal(t, "app", component.ConfigurableProps[0].Type)
}

func TestComponentsClient_ReloadProps(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/connect/proj_test123/components/props", request.URL.Path)

		var body map[string]interface{}

		err := json.NewDecoder(request.Body).Decode(&body)
		require.NoError(t, err)
		assert.Equal(t, "gitlab-new-issue", body["id"])
		assert.Equal(t, "user-1", body["external_user_id"])

		_, _ = writer.Write([]byte(`{
			"dynamicProps": {"id": "dyp_1", "configurableProps": [{"name": "projectId", "type": "integer"}]},
			"errors": []
		}`))
	}))
	defer server.Close()

	cli := client.NewTestClient(server.URL)

	result, err := cli.Components().ReloadProps(context.Background(), connect.ComponentTypeComponents, &connect.ReloadPropsRequest{
		ComponentKey:    "gitlab-new-issue",
		ExternalUserID:  "user-1",
		ConfiguredProps: map[string]interface{}{},
	})
	require.NoError(t, err)
	assert.Equal(t, "dyp_1", result.DynamicProps.ID)
	require.Len(t, result.DynamicProps.ConfigurableProps, 1)
	assert.Empty(t, result.Errors)
}

func TestComponentsClient_Validation(t *testing.T) {
	t.Parallel()

	server := newFailServer(t)
	defer server.Close()

	cli := client.NewTestClient(server.URL)
	ctx := context.Background()

	_, err := cli.Components().List(ctx, "workflows", nil)
	assert.ErrorIs(t, err, connect.ErrInvalidComponentType)

	_, err = cli.Components().Get(ctx, connect.ComponentTypeActions, "")
	assert.ErrorIs(t, err, connect.ErrComponentKeyRequired)

	_, err = cli.Components().ReloadProps(ctx, connect.ComponentTypeActions, &connect.ReloadPropsRequest{ComponentKey: "key"})
	assert.ErrorIs(t, err, connect.ErrExternalUserIDRequired)
}
