// Package jsonapiclient provides the main entry point for creating JSON:API
// connections.
package jsonapiclient

import (
	"github.com/fivetwenty-io/jsonapi-client/internal/client"
	"github.com/fivetwenty-io/jsonapi-client/pkg/jsonapi"
)

// Connect creates a connection to a JSON:API server.
//
// A nil config is equivalent to &jsonapi.Config{} and yields a connection to
// http://localhost:8088 using version v1. Connect performs no network I/O and
// cannot fail: a malformed BaseURL is reported by the first request.
func Connect(config *jsonapi.Config) jsonapi.Connection {
	return client.New(config)
}

// ConnectWithTokenProvider creates a connection that takes its bearer token
// from provider. The AccessToken and OAuth2 fields of config are ignored.
func ConnectWithTokenProvider(config *jsonapi.Config, provider jsonapi.TokenProvider) jsonapi.Connection {
	return client.NewWithTokenManager(config, provider)
}

// ConnectTo is shorthand for Connect with only a base URL and version.
// An empty version selects jsonapi.DefaultVersion.
func ConnectTo(baseURL, version string) jsonapi.Connection {
	return client.New(&jsonapi.Config{
		BaseURL: baseURL,
		Version: version,
	})
}
