package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fivetwenty-io/jsonapi-client/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestStaticTokenManager(t *testing.T) {
	t.Parallel()

	t.Run("returns token", func(t *testing.T) {
		t.Parallel()

		token, err := auth.NewStaticTokenManager("abc").GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "abc", token)
	})

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()

		_, err := auth.NewStaticTokenManager("").GetToken(context.Background())
		require.ErrorIs(t, err, auth.ErrEmptyToken)
	})
}

func TestOAuth2Config_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   auth.OAuth2Config
		expected error
	}{
		{name: "valid", config: auth.OAuth2Config{TokenURL: "http://uaa/token", ClientID: "id"}},
		{name: "missing token URL", config: auth.OAuth2Config{ClientID: "id"}, expected: auth.ErrTokenURLRequired},
		{name: "missing client ID", config: auth.OAuth2Config{TokenURL: "http://uaa/token"}, expected: auth.ErrClientIDRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.config.Validate()
			if tt.expected == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestOAuth2TokenManager_ClientCredentials(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		calls.Add(1)

		assert.Equal(t, http.MethodPost, request.Method)
		assert.NoError(t, request.ParseForm())
		assert.Equal(t, "client_credentials", request.Form.Get("grant_type"))
		assert.Equal(t, "books:read", request.Form.Get("scope"))

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"access_token": "issued-token",
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	}))
	defer server.Close()

	manager := auth.NewOAuth2TokenManager(&auth.OAuth2Config{
		TokenURL:     server.URL,
		ClientID:     "client",
		ClientSecret: "secret",
		Scopes:       []string{"books:read"},
	})

	for range 3 {
		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "issued-token", token)
	}

	// Cached until expiry.
	assert.Equal(t, int32(1), calls.Load())
}

type failingSource struct{}

var errSourceFailed = errors.New("source failed")

func (failingSource) Token() (*oauth2.Token, error) {
	return nil, errSourceFailed
}

type emptySource struct{}

func (emptySource) Token() (*oauth2.Token, error) {
	return &oauth2.Token{}, nil
}

func TestOAuth2TokenManager_Errors(t *testing.T) {
	t.Parallel()

	t.Run("source failure", func(t *testing.T) {
		t.Parallel()

		_, err := auth.NewTokenSourceManager(failingSource{}).GetToken(context.Background())
		require.ErrorIs(t, err, errSourceFailed)
	})

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()

		_, err := auth.NewTokenSourceManager(emptySource{}).GetToken(context.Background())
		require.Error(t, err)
	})

	t.Run("nil source", func(t *testing.T) {
		t.Parallel()

		_, err := auth.NewTokenSourceManager(nil).GetToken(context.Background())
		require.ErrorIs(t, err, auth.ErrNoTokenSourceConfig)
	})
}
