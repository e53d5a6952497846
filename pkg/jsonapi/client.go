package jsonapi

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Defaults applied by Config.WithDefaults.
const (
	DefaultBaseURL     = "http://localhost:8088"
	DefaultVersion     = "v1"
	DefaultContentType = MediaType
)

// MediaType is the JSON:API media type.
const MediaType = "application/vnd.api+json"

// Connection is a client bound to one JSON:API server and API version.
//
// A Connection holds no mutable state once constructed and may be shared by
// concurrent callers, provided the configured HTTPClient is itself safe for
// concurrent use (the default one is).
type Connection interface {
	// Status probes the version root with a HEAD request and reports the
	// outcome as "<status message> (<status code>)". Non-2xx statuses are
	// reported, not returned as errors.
	Status(ctx context.Context, opts ...CallOption) (string, error)

	// Routes fetches the version root and returns the decoded body,
	// whatever the response status.
	Routes(ctx context.Context, opts ...CallOption) (any, error)

	// Route fetches <version>/<endpoint>. The response passes through the
	// error handler (Resolver by default) before the body is decoded.
	Route(ctx context.Context, endpoint string, params *QueryParams, opts ...CallOption) (any, error)

	// RouteInto is Route for typed targets: the success body is unmarshalled
	// into v, which must be a pointer to a jsonapi-tagged struct or slice.
	RouteInto(ctx context.Context, endpoint string, params *QueryParams, v any, opts ...CallOption) error

	// Config returns a copy of the effective configuration.
	Config() Config
}

// TokenProvider supplies the bearer token sent with each request. It is
// called once per request and must be safe for concurrent use.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents the configuration of a Connection.
//
// Every field has a declared default; WithDefaults fills them in once, at
// construction, and the result is never mutated afterwards.
//
// # Authentication precedence
//
//  1. AccessToken: sent as a static Bearer token.
//  2. ClientID/ClientSecret/TokenURL: OAuth2 client_credentials grant.
//  3. Nothing: requests are sent without an Authorization header.
//
// A literal "Authorization" entry in Headers is sent as-is and is overridden
// by 1 or 2 when those are configured.
type Config struct {
	// BaseURL is the server root without the version segment
	// (default "http://localhost:8088"). A trailing slash is trimmed.
	BaseURL string
	// Version is the path segment prepended to every request (default "v1").
	Version string
	// ContentType is sent as the Content-Type header of every request
	// (default "application/vnd.api+json").
	ContentType string
	// Headers are default headers sent with every request. Content-Type is
	// appended to them; Accept defaults to ContentType when absent.
	Headers map[string]string

	// Timeout is the default per-request timeout. Zero means no timeout at
	// this layer; the context passed to each call still applies.
	Timeout time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// RetryMax is the number of retries for transient failures. The default
	// of zero keeps every call to exactly one round-trip.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration
	// HTTPClient replaces the underlying *http.Client. It must be safe for
	// concurrent use if the Connection is shared.
	HTTPClient *http.Client

	// AccessToken is used directly as a Bearer token.
	AccessToken string
	// ClientID is the OAuth2 client ID for the client_credentials grant.
	ClientID string
	// ClientSecret is the OAuth2 client secret used with ClientID.
	ClientSecret string
	// TokenURL is the OAuth2 token endpoint.
	TokenURL string
	// Scopes are requested with the client_credentials grant.
	Scopes []string

	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
}

// WithDefaults returns a copy of c with every unset field replaced by its
// default. A nil receiver yields the all-defaults config.
func (c *Config) WithDefaults() Config {
	var out Config
	if c != nil {
		out = c.Clone()
	}

	if out.BaseURL == "" {
		out.BaseURL = DefaultBaseURL
	}

	out.BaseURL = strings.TrimRight(out.BaseURL, "/")

	if out.Version == "" {
		out.Version = DefaultVersion
	}

	out.Version = strings.Trim(out.Version, "/")

	if out.ContentType == "" {
		out.ContentType = DefaultContentType
	}

	if out.Headers == nil {
		out.Headers = map[string]string{}
	}

	return out
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c

	if c.Headers != nil {
		out.Headers = make(map[string]string, len(c.Headers))
		for k, v := range c.Headers {
			out.Headers[k] = v
		}
	}

	if c.Scopes != nil {
		out.Scopes = append([]string(nil), c.Scopes...)
	}

	return out
}

// CallOptions holds per-call overrides. Values set here take precedence over
// the connection defaults.
type CallOptions struct {
	// Timeout overrides Config.Timeout for a single call.
	Timeout time.Duration
	// Headers are added to, and override, the default headers.
	Headers map[string]string
	// ErrorHandler replaces the default Resolver for Route and RouteInto.
	ErrorHandler ErrorHandler
}

// CallOption configures a single call.
type CallOption func(*CallOptions)

// WithTimeout sets a per-call timeout.
func WithTimeout(timeout time.Duration) CallOption {
	return func(o *CallOptions) {
		o.Timeout = timeout
	}
}

// WithHeader sets a header for a single call.
func WithHeader(name, value string) CallOption {
	return func(o *CallOptions) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}

		o.Headers[name] = value
	}
}

// WithErrorHandler substitutes the error handler used by Route.
func WithErrorHandler(handler ErrorHandler) CallOption {
	return func(o *CallOptions) {
		o.ErrorHandler = handler
	}
}

// NewCallOptions applies opts over zero values. A nil ErrorHandler is
// replaced by DefaultErrorHandler.
func NewCallOptions(opts ...CallOption) *CallOptions {
	options := &CallOptions{}

	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	if options.ErrorHandler == nil {
		options.ErrorHandler = DefaultErrorHandler
	}

	return options
}
