package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/jsonapi-client/internal/constants"
)

func TestParseHeaders(t *testing.T) {
	headers, err := parseHeaders([]string{"X-Tenant: acme", "Accept:application/json", "X-Empty:", "X-Tenant: other"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"X-Tenant": "other",
		"Accept":   "application/json",
		"X-Empty":  "",
	}, headers)

	for _, invalid := range []string{"no-colon", ": value", ""} {
		_, err := parseHeaders([]string{invalid})
		require.ErrorIs(t, err, constants.ErrInvalidHeaderFormat, "header %q", invalid)
	}
}

func TestHeaderValues(t *testing.T) {
	t.Run("environment", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		t.Setenv("JSONAPI_HEADER", "X-Foo: bar baz\nX-Tenant: acme\n")

		viper.SetEnvPrefix(constants.EnvPrefix)
		viper.AutomaticEnv()

		assert.Equal(t, []string{"X-Foo: bar baz", "X-Tenant: acme"}, headerValues())

		headers, err := parseHeaders(headerValues())
		require.NoError(t, err)
		assert.Equal(t, "bar baz", headers["X-Foo"])
	})

	t.Run("list", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.Set("header", []string{"X-Foo: bar", "X-Tenant: acme"})

		assert.Equal(t, []string{"X-Foo: bar", "X-Tenant: acme"}, headerValues())
	})

	t.Run("unset", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)

		assert.Empty(t, headerValues())
	})
}

func TestParseFilters(t *testing.T) {
	filters, err := parseFilters([]string{"genre=fantasy", "author = 1", "empty=", "expr=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"genre":  "fantasy",
		"author": "1",
		"empty":  "",
		"expr":   "a=b",
	}, filters)

	for _, invalid := range []string{"genre", "=fantasy"} {
		_, err := parseFilters([]string{invalid})
		require.ErrorIs(t, err, constants.ErrInvalidFilterFormat, "filter %q", invalid)
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"books", "books.chapters", "publisher"}, splitList([]string{"books, books.chapters", "", " ,publisher"}))
	assert.Nil(t, splitList(nil))
}

func TestResolveOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		requested  string
		isTerminal bool
		expected   string
	}{
		{name: "default on terminal", requested: "", isTerminal: true, expected: OutputFormatTable},
		{name: "default when piped", requested: "", isTerminal: false, expected: OutputFormatJSON},
		{name: "table", requested: "table", expected: OutputFormatTable},
		{name: "json uppercase", requested: "JSON", expected: OutputFormatJSON},
		{name: "yaml", requested: "yaml", expected: OutputFormatYAML},
		{name: "yml alias", requested: "yml", expected: OutputFormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := resolveOutputFormat(tt.requested, tt.isTerminal)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}

	_, err := resolveOutputFormat("xml", true)
	require.ErrorIs(t, err, constants.ErrUnknownOutputFormat)
}

func TestIsTerminalWriter(t *testing.T) {
	assert.False(t, isTerminalWriter(&bytes.Buffer{}))
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := newSlogLogger(&buf)
	logger.Debug("HTTP Request", map[string]interface{}{"url": "http://localhost:8088/v1", "method": "GET"})
	logger.Error("failed", nil)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), `level=DEBUG msg="HTTP Request" method=GET url=http://localhost:8088/v1`)
	assert.Contains(t, string(lines[1]), "level=ERROR msg=failed")
}
