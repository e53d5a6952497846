package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	ddjsonapi "github.com/DataDog/jsonapi"

	"github.com/fivetwenty-io/jsonapi-client/internal/auth"
	internalhttp "github.com/fivetwenty-io/jsonapi-client/internal/http"
	"github.com/fivetwenty-io/jsonapi-client/pkg/jsonapi"
)

// Client implements the jsonapi.Connection interface.
type Client struct {
	httpClient *internalhttp.Client
	config     jsonapi.Config
}

var _ jsonapi.Connection = (*Client)(nil)

// New creates a connection from config. A nil config means all defaults.
// No network I/O happens here.
func New(config *jsonapi.Config) *Client {
	effective := config.WithDefaults()

	return &Client{
		httpClient: internalhttp.NewClient(effective.BaseURL, createTokenManager(&effective), createHTTPClientOptions(&effective)...),
		config:     effective,
	}
}

// NewWithTokenManager creates a connection with a custom token manager,
// ignoring the auth fields of config.
func NewWithTokenManager(config *jsonapi.Config, tokenManager auth.TokenManager) *Client {
	effective := config.WithDefaults()

	return &Client{
		httpClient: internalhttp.NewClient(effective.BaseURL, tokenManager, createHTTPClientOptions(&effective)...),
		config:     effective,
	}
}

// createTokenManager creates appropriate token manager based on config.
func createTokenManager(config *jsonapi.Config) auth.TokenManager {
	if config.AccessToken != "" {
		return auth.NewStaticTokenManager(config.AccessToken)
	}

	oauthConfig := &auth.OAuth2Config{
		TokenURL:     config.TokenURL,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Scopes:       config.Scopes,
	}

	if config.ClientSecret != "" && oauthConfig.Validate() == nil {
		return auth.NewOAuth2TokenManager(oauthConfig)
	}

	return nil // No authentication
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *jsonapi.Config) []internalhttp.Option {
	httpOpts := []internalhttp.Option{
		internalhttp.WithHeaders(defaultHeaders(config)),
	}

	if config.Logger != nil {
		httpOpts = append(httpOpts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, internalhttp.WithTimeout(config.Timeout))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, internalhttp.WithHTTPClient(config.HTTPClient))
	}

	if config.RetryMax > 0 {
		httpOpts = append(httpOpts, internalhttp.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	return httpOpts
}

// defaultHeaders returns the configured headers with Content-Type appended
// and Accept defaulted to the content type.
func defaultHeaders(config *jsonapi.Config) http.Header {
	names := make([]string, 0, len(config.Headers))
	for name := range config.Headers {
		names = append(names, name)
	}

	sort.Strings(names)

	headers := make(http.Header, len(names)+2)
	for _, name := range names {
		headers.Add(name, config.Headers[name])
	}

	headers.Add("Content-Type", config.ContentType)

	if headers.Get("Accept") == "" {
		headers.Set("Accept", config.ContentType)
	}

	return headers
}

// Config implements jsonapi.Connection.Config.
func (c *Client) Config() jsonapi.Config {
	return c.config.Clone()
}

// Status implements jsonapi.Connection.Status.
func (c *Client) Status(ctx context.Context, opts ...jsonapi.CallOption) (string, error) {
	options := jsonapi.NewCallOptions(opts...)

	resp, err := c.httpClient.Head(ctx, c.config.Version, requestOptions(options)...)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s (%d)", statusMessage(resp), resp.StatusCode), nil
}

// Routes implements jsonapi.Connection.Routes.
func (c *Client) Routes(ctx context.Context, opts ...jsonapi.CallOption) (any, error) {
	options := jsonapi.NewCallOptions(opts...)

	resp, err := c.httpClient.Get(ctx, c.config.Version, nil, requestOptions(options)...)
	if err != nil {
		return nil, err
	}

	return jsonapi.DecodeBody(resp.Body)
}

// Route implements jsonapi.Connection.Route.
func (c *Client) Route(ctx context.Context, endpoint string, params *jsonapi.QueryParams, opts ...jsonapi.CallOption) (any, error) {
	resp, resolved, err := c.route(ctx, endpoint, params, opts)
	if err != nil {
		return nil, err
	}

	if resolved != nil {
		return resolved, nil
	}

	return jsonapi.DecodeBody(resp.Body)
}

// RouteInto implements jsonapi.Connection.RouteInto.
func (c *Client) RouteInto(ctx context.Context, endpoint string, params *jsonapi.QueryParams, v any, opts ...jsonapi.CallOption) error {
	resp, resolved, err := c.route(ctx, endpoint, params, opts)
	if err != nil {
		return err
	}

	body := resp.Body

	if resolved != nil {
		doc, docErr := jsonapi.AsDocument(resolved)
		if docErr == nil && doc.HasErrors() {
			return doc.ErrorDocument(resp.StatusCode)
		}

		body, err = json.Marshal(resolved)
		if err != nil {
			return fmt.Errorf("encoding resolved document: %w", err)
		}
	}

	err = ddjsonapi.Unmarshal(body, v)
	if err != nil {
		return &jsonapi.DecodeError{Body: string(body), Err: err}
	}

	return nil
}

// route issues the GET for endpoint and runs the error handler. A non-nil
// resolved value replaces the response body as the call's result.
func (c *Client) route(ctx context.Context, endpoint string, params *jsonapi.QueryParams, opts []jsonapi.CallOption) (*internalhttp.Response, any, error) {
	path, err := c.endpointPath(endpoint)
	if err != nil {
		return nil, nil, err
	}

	options := jsonapi.NewCallOptions(opts...)

	resp, err := c.httpClient.Get(ctx, path, params.ToValues(), requestOptions(options)...)
	if err != nil {
		return nil, nil, err
	}

	resolved, err := options.ErrorHandler.Resolve(toAPIResponse(resp))
	if err != nil {
		return nil, nil, err
	}

	return resp, resolved, nil
}

// endpointPath returns <version>/<endpoint>, ignoring slashes around
// endpoint.
func (c *Client) endpointPath(endpoint string) (string, error) {
	trimmed := strings.Trim(strings.TrimSpace(endpoint), "/")
	if trimmed == "" {
		return "", jsonapi.ErrEndpointRequired
	}

	return c.config.Version + "/" + trimmed, nil
}

func requestOptions(options *jsonapi.CallOptions) []internalhttp.RequestOption {
	return []internalhttp.RequestOption{
		internalhttp.WithRequestTimeout(options.Timeout),
		internalhttp.WithRequestHeaders(options.Headers),
	}
}

func toAPIResponse(resp *internalhttp.Response) *jsonapi.Response {
	return &jsonapi.Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
}

// statusMessage returns the reason phrase for the response status.
func statusMessage(resp *internalhttp.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}

	// Non-standard codes: use the server's reason phrase, if any.
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason != "" {
		return reason
	}

	return "Unknown"
}
