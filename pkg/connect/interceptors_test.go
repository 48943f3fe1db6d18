package connect_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipedream-labs/connect-go/pkg/connect"
)

var errInterceptorFailed = errors.New("interceptor failed")

func TestInterceptorChain_Order(t *testing.T) {
	t.Parallel()

	chain := connect.NewInterceptorChain()

	var calls []string

	chain.AddRequestInterceptor(func(ctx context.Context, req *connect.Request) error {
		calls = append(calls, "first")

		return nil
	})
	chain.AddRequestInterceptor(func(ctx context.Context, req *connect.Request) error {
		calls = append(calls, "second")

		return nil
	})

	err := chain.ExecuteRequestInterceptors(context.Background(), &connect.Request{Method: "GET", Path: "/test"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestInterceptorChain_WrapsErrors(t *testing.T) {
	t.Parallel()

	chain := connect.NewInterceptorChain()
	chain.AddRequestInterceptor(func(ctx context.Context, req *connect.Request) error {
		return errInterceptorFailed
	})

	err := chain.ExecuteRequestInterceptors(context.Background(), &connect.Request{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errInterceptorFailed)
	assert.Contains(t, err.Error(), "request interceptor failed")
}

func TestInterceptorChain_ResponseInterceptors(t *testing.T) {
	t.Parallel()

	chain := connect.NewInterceptorChain()

	var gotStatus int

	chain.AddResponseInterceptor(func(ctx context.Context, req *connect.Request, resp *connect.Response) error {
		gotStatus = resp.StatusCode

		return nil
	})

	err := chain.ExecuteResponseInterceptors(context.Background(), &connect.Request{}, &connect.Response{StatusCode: 201})
	require.NoError(t, err)
	assert.Equal(t, 201, gotStatus)
}

func TestRequestIDInterceptor(t *testing.T) {
	t.Parallel()

	interceptor := connect.RequestIDInterceptor()

	req := &connect.Request{Method: "GET", Path: "/test"}
	require.NoError(t, interceptor(context.Background(), req))
	first := req.Headers.Get("X-Request-ID")
	assert.NotEmpty(t, first)

	// An existing request ID is preserved.
	require.NoError(t, interceptor(context.Background(), req))
	assert.Equal(t, first, req.Headers.Get("X-Request-ID"))
}

func TestHeaderInterceptor(t *testing.T) {
	t.Parallel()

	interceptor := connect.HeaderInterceptor(map[string]string{
		"X-Team": "platform",
	})

	req := &connect.Request{Headers: http.Header{}}
	require.NoError(t, interceptor(context.Background(), req))
	assert.Equal(t, "platform", req.Headers.Get("X-Team"))
}

func TestRateLimitInterceptor_RespectsContext(t *testing.T) {
	t.Parallel()

	interceptor := connect.RateLimitInterceptor(1)

	// First call consumes the only token.
	require.NoError(t, interceptor(context.Background(), &connect.Request{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := interceptor(ctx, &connect.Request{})
	assert.ErrorIs(t, err, context.Canceled)
}
