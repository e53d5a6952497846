package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/fivetwenty-io/jsonapi-client/internal/constants"
	"github.com/fivetwenty-io/jsonapi-client/pkg/jsonapi"
	"github.com/fivetwenty-io/jsonapi-client/pkg/jsonapiclient"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"

	defaultJSONIndent = 2
)

// EnvKeyReplacer maps flag names to environment variable suffixes, so that
// --api-version is read from JSONAPI_API_VERSION.
func EnvKeyReplacer() *strings.Replacer {
	return strings.NewReplacer("-", "_")
}

// buildConfig assembles a connection config from flags, environment and the
// config file, in viper's usual precedence order.
func buildConfig() (*jsonapi.Config, error) {
	headers, err := parseHeaders(headerValues())
	if err != nil {
		return nil, err
	}

	config := &jsonapi.Config{
		BaseURL:      viper.GetString("url"),
		Version:      viper.GetString("api-version"),
		ContentType:  viper.GetString("content-type"),
		Headers:      headers,
		Timeout:      viper.GetDuration("timeout"),
		AccessToken:  viper.GetString("token"),
		ClientID:     viper.GetString("client-id"),
		ClientSecret: viper.GetString("client-secret"),
		TokenURL:     viper.GetString("token-url"),
		Scopes:       viper.GetStringSlice("scopes"),
	}

	if config.ClientID != "" && config.ClientSecret == "" && config.AccessToken == "" {
		secret, err := promptSecret()
		if err != nil {
			return nil, err
		}

		config.ClientSecret = secret
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = newSlogLogger(os.Stderr)
	}

	return config, nil
}

// createConnection connects using the current viper settings.
func createConnection() (jsonapi.Connection, error) {
	config, err := buildConfig()
	if err != nil {
		return nil, err
	}

	return jsonapiclient.Connect(config), nil
}

// promptSecret reads the client secret from the terminal. Outside a terminal
// it returns an empty secret and the connection falls back to anonymous.
func promptSecret() (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", nil
	}

	fmt.Fprint(os.Stderr, "Client secret: ")

	secretBytes, err := term.ReadPassword(int(syscall.Stdin))

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("reading client secret: %w", err)
	}

	return strings.TrimSpace(string(secretBytes)), nil
}

// headerValues returns the configured headers. A single string, as read from
// JSONAPI_HEADER, holds one header per line.
func headerValues() []string {
	raw, ok := viper.Get("header").(string)
	if !ok {
		return viper.GetStringSlice("header")
	}

	var values []string

	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			values = append(values, line)
		}
	}

	return values
}

// parseHeaders parses "Name: value" pairs. Later duplicates win.
func parseHeaders(values []string) (map[string]string, error) {
	headers := make(map[string]string, len(values))

	for _, value := range values {
		name, headerValue, found := strings.Cut(value, ":")
		name = strings.TrimSpace(name)

		if !found || name == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidHeaderFormat, value)
		}

		headers[name] = strings.TrimSpace(headerValue)
	}

	return headers, nil
}

// parseFilters parses key=value pairs. An empty value is allowed and is
// dropped later by query compaction.
func parseFilters(values []string) (map[string]string, error) {
	filters := make(map[string]string, len(values))

	for _, value := range values {
		key, filterValue, found := strings.Cut(value, "=")
		key = strings.TrimSpace(key)

		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidFilterFormat, value)
		}

		filters[key] = strings.TrimSpace(filterValue)
	}

	return filters, nil
}

// splitList splits comma separated flag values and drops blanks.
func splitList(values []string) []string {
	var items []string

	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
	}

	return items
}

// resolveOutputFormat returns the requested format, defaulting to a table on
// a terminal and JSON otherwise.
func resolveOutputFormat(requested string, isTerminal bool) (string, error) {
	switch strings.ToLower(strings.TrimSpace(requested)) {
	case "":
		if isTerminal {
			return OutputFormatTable, nil
		}

		return OutputFormatJSON, nil
	case OutputFormatTable:
		return OutputFormatTable, nil
	case OutputFormatJSON:
		return OutputFormatJSON, nil
	case OutputFormatYAML, "yml":
		return OutputFormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrUnknownOutputFormat, requested)
	}
}

// isTerminalWriter reports whether w is a terminal file.
func isTerminalWriter(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(file.Fd()))
}
