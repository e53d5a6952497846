package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout used by the CLI.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick probes.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. Retries are off unless a caller opts in.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Client identification.
const (
	// DefaultUserAgent is sent when no User-Agent is configured.
	DefaultUserAgent = "jsonapi-client-go"
)

// CLI configuration.
const (
	// ConfigDirName is the directory under $HOME holding the CLI config.
	ConfigDirName = ".jsonapi"

	// ConfigFileName is the CLI config file name without extension.
	ConfigFileName = "config"

	// EnvPrefix prefixes environment variables read by the CLI.
	EnvPrefix = "JSONAPI"
)

// jq evaluation limits used by the CLI.
const (
	// DefaultJQTimeout bounds a single --jq evaluation.
	DefaultJQTimeout = 1 * time.Second
)
