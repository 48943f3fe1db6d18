package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pipedream-labs/connect-go/internal/constants"
	"github.com/pipedream-labs/connect-go/pkg/connect"
)

// ErrNoCredentials indicates the manager has neither a static token nor
// client credentials to mint one.
var ErrNoCredentials = errors.New("no valid credentials available")

// TokenManager provides access tokens for API requests.
type TokenManager interface {
	// GetToken returns a valid access token, minting or refreshing one
	// as needed.
	GetToken(ctx context.Context) (string, error)
	// RefreshToken forces a new token to be minted.
	RefreshToken(ctx context.Context) (string, error)
	// SetToken installs a token obtained out of band.
	SetToken(token string, expiresAt time.Time)
}

// OAuth2Config configures an OAuth2TokenManager.
type OAuth2Config struct {
	// TokenURL is the full token endpoint URL.
	TokenURL string
	// ClientID and ClientSecret are the OAuth client credentials.
	ClientID     string
	ClientSecret string
	// AccessToken seeds the manager with a static token. It is used
	// until it expires (never, when no expiry is known).
	AccessToken string
	// HTTPClient overrides the client used for token requests.
	HTTPClient *http.Client
}

// OAuth2TokenManager mints tokens with the client_credentials grant and
// caches them until shortly before expiry.
type OAuth2TokenManager struct {
	config     *OAuth2Config
	store      *TokenStore
	httpClient *http.Client
}

// NewOAuth2TokenManager creates a token manager from config.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.ShortHTTPTimeout}
	}

	manager := &OAuth2TokenManager{
		config:     config,
		store:      NewTokenStore(),
		httpClient: httpClient,
	}

	if config.AccessToken != "" {
		manager.store.Set(&Token{AccessToken: config.AccessToken})
	}

	return manager
}

// GetToken returns the cached token when still valid, otherwise mints a
// new one.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	if token := m.store.Get(); token.Valid() {
		return token.AccessToken, nil
	}

	return m.RefreshToken(ctx)
}

// RefreshToken mints a new token with the client_credentials grant.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) (string, error) {
	if m.config.ClientID == "" || m.config.ClientSecret == "" {
		return "", ErrNoCredentials
	}

	token, err := m.requestToken(ctx)
	if err != nil {
		return "", err
	}

	m.store.Set(token)

	return token.AccessToken, nil
}

// SetToken installs a token obtained out of band.
func (m *OAuth2TokenManager) SetToken(accessToken string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	})
}

type tokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

func (m *OAuth2TokenManager) requestToken(ctx context.Context) (*Token, error) {
	body, err := json.Marshal(tokenRequest{
		GrantType:    "client_credentials",
		ClientID:     m.config.ClientID,
		ClientSecret: m.config.ClientSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &connect.AuthError{
			StatusCode: resp.StatusCode,
			Message:    connect.ParseErrorMessage(respBody),
		}
	}

	var token Token
	if err := json.Unmarshal(respBody, &token); err != nil {
		return nil, fmt.Errorf("decoding token response: %w", err)
	}

	if token.AccessToken == "" {
		return nil, &connect.AuthError{
			StatusCode: resp.StatusCode,
			Message:    "token response missing access_token",
		}
	}

	ttl := constants.DefaultTokenTTL
	if token.ExpiresIn > 0 {
		ttl = time.Duration(token.ExpiresIn) * time.Second
	}

	token.ExpiresAt = time.Now().Add(ttl)

	return &token, nil
}
