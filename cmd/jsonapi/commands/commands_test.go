package commands

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/jsonapi-client/internal/constants"
	"github.com/fivetwenty-io/jsonapi-client/pkg/jsonapi"
)

func TestNewStatusCommand(t *testing.T) {
	cmd := NewStatusCommand()
	assert.Equal(t, "status", cmd.Use)
	assert.Equal(t, "Probe the API version root", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
}

func TestNewRoutesCommand(t *testing.T) {
	cmd := NewRoutesCommand()
	assert.Equal(t, "routes", cmd.Use)
	assert.Equal(t, "List the routes advertised by the API", cmd.Short)
	assert.NotNil(t, cmd.RunE)
}

func TestNewRouteCommand(t *testing.T) {
	cmd := NewRouteCommand()
	assert.Equal(t, "route ENDPOINT", cmd.Use)
	assert.Equal(t, "Fetch a resource endpoint", cmd.Short)
	assert.NotNil(t, cmd.RunE)

	filterFlag := cmd.Flags().Lookup("filter")
	require.NotNil(t, filterFlag)
	assert.Equal(t, "f", filterFlag.Shorthand)

	includeFlag := cmd.Flags().Lookup("include")
	require.NotNil(t, includeFlag)
	assert.Equal(t, "i", includeFlag.Shorthand)

	require.ErrorIs(t, cmd.Args(cmd, nil), constants.ErrEndpointArgRequired)
	require.NoError(t, cmd.Args(cmd, []string{"authors"}))
}

func TestNewVersionCommand(t *testing.T) {
	setupViper(t, "")

	cmd := NewVersionCommand("1.2.3", "abc123", "2026-01-01")
	assert.Equal(t, "version", cmd.Use)

	output, err := runCommand(t, cmd)
	require.NoError(t, err)

	assert.Contains(t, output, `"version": "1.2.3"`)
	assert.Contains(t, output, `"commit": "abc123"`)
}

// setupViper resets global viper state for a command test.
func setupViper(t *testing.T, url string) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("url", url)
	viper.Set("output", OutputFormatJSON)
}

func newAuthorsServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, jsonapi.MediaType, request.Header.Get("Content-Type"))

		switch request.URL.Path {
		case "/v1":
			writer.Header().Set("Content-Type", jsonapi.MediaType)

			if request.Method == http.MethodHead {
				return
			}

			_, _ = writer.Write([]byte(`{"authors":"/v1/authors"}`))
		case "/v1/authors/1":
			assert.Equal(t, "books", request.URL.Query().Get("include"))
			assert.Equal(t, "1", request.URL.Query().Get("page"))
			assert.Equal(t, "acme", request.Header.Get("X-Tenant"))

			writer.Header().Set("Content-Type", jsonapi.MediaType)
			_, _ = writer.Write([]byte(`{"data":{"type":"authors","id":"1","attributes":{"name":"Ursula"}}}`))
		case "/v1/authors/9":
			writer.Header().Set("Content-Type", jsonapi.MediaType)
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"errors":[{"status":"404","title":"Not Found"}]}`))
		default:
			writer.Header().Set("Content-Type", "text/plain")
			writer.WriteHeader(http.StatusInternalServerError)
			_, _ = writer.Write([]byte("boom"))
		}
	}))
	t.Cleanup(server.Close)

	return server
}

// runCommand executes cmd with args and returns what it printed.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})
	if args == nil {
		args = []string{}
	}

	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return buf.String(), err
}

func TestStatusCommand_Run(t *testing.T) {
	server := newAuthorsServer(t)
	setupViper(t, server.URL)

	output, err := runCommand(t, NewStatusCommand())
	require.NoError(t, err)

	assert.Equal(t, "\"OK (200)\"\n", output)
}

func TestRoutesCommand_Run(t *testing.T) {
	server := newAuthorsServer(t)
	setupViper(t, server.URL)
	viper.Set("jq", ".authors")

	output, err := runCommand(t, NewRoutesCommand())
	require.NoError(t, err)

	assert.Equal(t, "\"/v1/authors\"\n", output)
}

func TestRouteCommand_Run(t *testing.T) {
	server := newAuthorsServer(t)

	t.Run("success", func(t *testing.T) {
		setupViper(t, server.URL)
		viper.Set("header", []string{"X-Tenant: acme"})

		output, err := runCommand(t, NewRouteCommand(), "authors/1", "--include", "books", "--filter", "page=1", "--filter", "sort=")
		require.NoError(t, err)

		assert.Contains(t, output, `"name": "Ursula"`)
	})

	t.Run("error document", func(t *testing.T) {
		setupViper(t, server.URL)

		output, err := runCommand(t, NewRouteCommand(), "authors/9")

		require.ErrorIs(t, err, constants.ErrServerReturnedErrors)
		assert.Contains(t, err.Error(), "404: Not Found")
		assert.Contains(t, output, `"title": "Not Found"`)
	})

	t.Run("generic error", func(t *testing.T) {
		setupViper(t, server.URL)

		output, err := runCommand(t, NewRouteCommand(), "missing")

		var httpErr *jsonapi.GenericHTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
		assert.Equal(t, "boom", httpErr.Error())
		assert.Empty(t, output)
	})

	t.Run("invalid filter", func(t *testing.T) {
		setupViper(t, server.URL)

		_, err := runCommand(t, NewRouteCommand(), "authors", "--filter", "nope")
		require.ErrorIs(t, err, constants.ErrInvalidFilterFormat)
	})

	t.Run("invalid header", func(t *testing.T) {
		setupViper(t, server.URL)
		viper.Set("header", []string{"broken"})

		_, err := runCommand(t, NewRouteCommand(), "authors")
		require.ErrorIs(t, err, constants.ErrInvalidHeaderFormat)
	})
}

func TestBuildConfig(t *testing.T) {
	setupViper(t, "https://api.example.com")
	viper.Set("api-version", "v2")
	viper.Set("token", "abc")
	viper.Set("verbose", true)

	config, err := buildConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", config.BaseURL)
	assert.Equal(t, "v2", config.Version)
	assert.Equal(t, "abc", config.AccessToken)
	assert.True(t, config.Debug)
	assert.NotNil(t, config.Logger)
}
