package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Static errors for err113 compliance.
var (
	ErrEmptyToken          = errors.New("token source returned an empty access token")
	ErrTokenURLRequired    = errors.New("token URL is required for the client_credentials grant")
	ErrClientIDRequired    = errors.New("client ID is required for the client_credentials grant")
	ErrNoTokenSourceConfig = errors.New("no token source configured")
)

// TokenManager supplies access tokens for outgoing requests.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
}

// StaticTokenManager always returns the same token.
type StaticTokenManager struct {
	token string
}

// NewStaticTokenManager creates a token manager for a fixed token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken implements TokenManager.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	if m.token == "" {
		return "", ErrEmptyToken
	}

	return m.token, nil
}

// OAuth2Config configures the client_credentials grant.
type OAuth2Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// Validate checks the fields the grant cannot do without.
func (c *OAuth2Config) Validate() error {
	if c.TokenURL == "" {
		return ErrTokenURLRequired
	}

	if c.ClientID == "" {
		return ErrClientIDRequired
	}

	return nil
}

// OAuth2TokenManager obtains and caches tokens from an oauth2.TokenSource.
// Tokens are refreshed by the source when they expire.
type OAuth2TokenManager struct {
	source oauth2.TokenSource
}

// NewOAuth2TokenManager creates a token manager using the client_credentials
// grant. The token endpoint is not contacted until the first GetToken.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	cc := &clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     config.TokenURL,
		Scopes:       config.Scopes,
	}

	return NewTokenSourceManager(cc.TokenSource(context.Background()))
}

// NewTokenSourceManager wraps an arbitrary token source.
func NewTokenSourceManager(source oauth2.TokenSource) *OAuth2TokenManager {
	if source != nil {
		source = oauth2.ReuseTokenSource(nil, source)
	}

	return &OAuth2TokenManager{source: source}
}

// GetToken implements TokenManager.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	if m.source == nil {
		return "", ErrNoTokenSourceConfig
	}

	token, err := m.source.Token()
	if err != nil {
		return "", fmt.Errorf("fetching OAuth2 token: %w", err)
	}

	if token.AccessToken == "" {
		return "", ErrEmptyToken
	}

	return token.AccessToken, nil
}
