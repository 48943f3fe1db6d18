// Package http implements the HTTP transport used by the Connect API
// client: request building, bearer auth, retries, response caching, and
// error mapping.
package http

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/pipedream-labs/connect-go/internal/constants"
	"github.com/pipedream-labs/connect-go/pkg/connect"
)

// TokenManager provides access tokens for outgoing requests.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
}

// Request is an API request to be executed.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is the result of an executed request.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client executes API requests against a base URL.
type Client struct {
	baseURL      string
	tokenManager TokenManager
	httpClient   *retryablehttp.Client
	logger       connect.Logger
	debug        bool
	userAgent    string
	environment  string
	interceptors *connect.InterceptorChain
	cache        connect.Cache
	cacheTTL     time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger connect.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig tunes the retry behavior.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithEnvironment sets the project environment sent on every request.
func WithEnvironment(environment string) Option {
	return func(c *Client) {
		c.environment = environment
	}
}

// WithHTTPTimeout sets the per-request timeout.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithInterceptors installs a request/response interceptor chain.
func WithInterceptors(chain *connect.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithCache enables caching of GET responses with the given TTL.
func WithCache(cache connect.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// NewClient creates a transport client for baseURL. A nil tokenManager
// sends unauthenticated requests.
func NewClient(baseURL string, tokenManager TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tokenManager: tokenManager,
		httpClient:   retryClient,
		userAgent:    constants.DefaultUserAgent,
		cacheTTL:     constants.DefaultCacheTTL,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes the request. For non-2xx responses it returns both the
// response and a typed error: *connect.AuthError for 401/403 and
// *connect.APIError otherwise.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.buildURL(req)
	cacheKey := c.cacheKey(req, fullURL)

	if cached := c.cachedResponse(ctx, req, cacheKey); cached != nil {
		return cached, nil
	}

	httpReq, err := c.buildHTTPRequest(ctx, req, fullURL)
	if err != nil {
		return nil, err
	}

	if err := c.runRequestInterceptors(ctx, req, httpReq); err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         fullURL,
			"status_code": resp.StatusCode,
		})
	}

	respErr := c.responseError(resp)

	if err := c.runResponseInterceptors(ctx, req, resp, respErr); err != nil {
		return resp, err
	}

	if respErr != nil {
		return resp, respErr
	}

	c.storeInCache(ctx, req, cacheKey, resp)

	return resp, nil
}

// Get executes a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post executes a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put executes a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// PutQuery executes a PUT request carrying query parameters and a JSON body.
func (c *Client) PutQuery(ctx context.Context, path string, query url.Values, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Query: query, Body: body})
}

// Patch executes a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete executes a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// DeleteQuery executes a DELETE request carrying query parameters.
func (c *Client) DeleteQuery(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Query: query})
}

// Close releases idle connections and the cache backend.
func (c *Client) Close() error {
	c.httpClient.HTTPClient.CloseIdleConnections()

	if c.cache != nil {
		return c.cache.Close()
	}

	return nil
}

func (c *Client) buildURL(req *Request) string {
	fullURL := c.baseURL + "/" + strings.TrimPrefix(req.Path, "/")
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	return fullURL
}

func (c *Client) buildHTTPRequest(ctx context.Context, req *Request, fullURL string) (*retryablehttp.Request, error) {
	var rawBody []byte

	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		rawBody = encoded
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if rawBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.environment != "" {
		httpReq.Header.Set(constants.EnvironmentHeader, c.environment)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting access token: %w", err)
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	return httpReq, nil
}

// runRequestInterceptors runs the chain against an interceptor view of the
// request and copies header changes back onto the outgoing request.
func (c *Client) runRequestInterceptors(ctx context.Context, req *Request, httpReq *retryablehttp.Request) error {
	if c.interceptors == nil {
		return nil
	}

	view := &connect.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: httpReq.Header.Clone(),
	}

	if err := c.interceptors.ExecuteRequestInterceptors(ctx, view); err != nil {
		return err
	}

	for key, values := range view.Headers {
		httpReq.Header.Del(key)

		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	return nil
}

func (c *Client) runResponseInterceptors(ctx context.Context, req *Request, resp *Response, respErr error) error {
	if c.interceptors == nil {
		return nil
	}

	view := &connect.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
		Error:      respErr,
	}

	reqView := &connect.Request{
		Method: req.Method,
		Path:   req.Path,
	}

	return c.interceptors.ExecuteResponseInterceptors(ctx, reqView, view)
}

// responseError maps non-2xx responses to typed errors.
func (c *Client) responseError(resp *Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	message := connect.ParseErrorMessage(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &connect.AuthError{
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}

	return &connect.APIError{
		StatusCode: resp.StatusCode,
		Message:    message,
		Body:       string(resp.Body),
	}
}

// cacheKey derives the cache key for a GET request. The URL is hashed
// because backends like NATS KV reject keys containing ':', '?', or '&'.
func (c *Client) cacheKey(req *Request, fullURL string) string {
	if c.cache == nil || req.Method != http.MethodGet {
		return ""
	}

	sum := sha256.Sum256([]byte(fullURL))

	return hex.EncodeToString(sum[:])
}

func (c *Client) cachedResponse(ctx context.Context, req *Request, key string) *Response {
	if key == "" {
		return nil
	}

	entry, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil
	}

	return &Response{
		StatusCode: entry.StatusCode,
		Body:       entry.Data,
	}
}

// storeInCache records successful GET responses and invalidates the cache
// on any successful write.
func (c *Client) storeInCache(ctx context.Context, req *Request, key string, resp *Response) {
	if c.cache == nil {
		return
	}

	if req.Method != http.MethodGet {
		_ = c.cache.Clear(ctx)

		return
	}

	if key == "" {
		return
	}

	now := time.Now()
	_ = c.cache.Set(ctx, key, &connect.CacheEntry{
		Data:       resp.Body,
		StatusCode: resp.StatusCode,
		StoredAt:   now,
		ExpiresAt:  now.Add(c.cacheTTL),
	})
}
