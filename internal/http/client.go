// Package http is the transport used by connections: a client bound to one
// base URL that applies default headers, authentication and timeouts to
// every request and hands back the response with its body read.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/jsonapi-client/internal/auth"
	"github.com/fivetwenty-io/jsonapi-client/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrMethodRequired = errors.New("request method is required")
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Client is an HTTP client bound to a base URL. It is safe for concurrent
// use; nothing in it changes after NewClient returns.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager auth.TokenManager
	headers      http.Header
	timeout      time.Duration
	userAgent    string
	logger       Logger
	debug        bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. Retry diagnostics from the transport are
// routed through it as well.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHeaders sets the default headers sent with every request. Multiple
// values for one name are all sent.
func WithHeaders(headers http.Header) Option {
	return func(c *Client) {
		c.headers = headers.Clone()
	}
}

// WithTimeout sets the default per-request timeout. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// WithRetryConfig sets retry configuration. A maximum of zero sends every
// request exactly once.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// NewClient creates a new HTTP client. tokenManager may be nil, in which case
// no Authorization header is added.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.Logger = nil
	// The caller classifies statuses; a final response is never swallowed.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   retryClient,
		tokenManager: tokenManager,
		headers:      make(http.Header),
		userAgent:    constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	// Attempt-level logs from retryablehttp are debug output.
	if client.logger != nil && client.debug {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// BaseURL returns the URL every request path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request represents an HTTP request.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Headers override the client's default headers.
	Headers map[string]string
	// Timeout overrides the client's default timeout when positive.
	Timeout time.Duration
}

// Response represents an HTTP response whose body has been fully read.
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       []byte
}

// RequestOption configures a single request.
type RequestOption func(*Request)

// WithRequestTimeout sets the timeout of one request.
func WithRequestTimeout(timeout time.Duration) RequestOption {
	return func(r *Request) {
		if timeout > 0 {
			r.Timeout = timeout
		}
	}
}

// WithRequestHeaders sets headers for one request.
func WithRequestHeaders(headers map[string]string) RequestOption {
	return func(r *Request) {
		if len(headers) == 0 {
			return
		}

		if r.Headers == nil {
			r.Headers = make(map[string]string, len(headers))
		}

		for k, v := range headers {
			r.Headers[k] = v
		}
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values, opts ...RequestOption) (*Response, error) {
	req := &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	}

	return c.Do(ctx, applyRequestOptions(req, opts))
}

// Head performs a HEAD request.
func (c *Client) Head(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	req := &Request{
		Method: http.MethodHead,
		Path:   path,
	}

	return c.Do(ctx, applyRequestOptions(req, opts))
}

// Do performs an HTTP request. Any status is returned as a Response; errors
// come only from the transport, the token manager or reading the body.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Method == "" {
		return nil, ErrMethodRequired
	}

	timeout := c.timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}

	if timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	fullURL := c.URL(req.Path, req.Query)

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	err = c.setHeaders(ctx, httpReq, req)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":  req.Method,
			"url":     fullURL,
			"headers": redactHeaders(httpReq.Header),
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing %s %s: %w", req.Method, fullURL, err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status_code":  resp.StatusCode,
			"content_type": resp.Headers.Get("Content-Type"),
			"bytes":        len(body),
			"duration":     time.Since(start).String(),
		})
	}

	return resp, nil
}

// URL resolves path and query against the base URL.
func (c *Client) URL(path string, query url.Values) string {
	fullURL := c.baseURL + "/" + strings.TrimLeft(path, "/")

	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	return fullURL
}

func (c *Client) setHeaders(ctx context.Context, httpReq *retryablehttp.Request, req *Request) error {
	for name, values := range c.headers {
		for _, value := range values {
			httpReq.Header.Add(name, value)
		}
	}

	if c.userAgent != "" && httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	for name, value := range req.Headers {
		httpReq.Header.Set(name, value)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("getting auth token: %w", err)
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	return nil
}

func applyRequestOptions(req *Request, opts []RequestOption) *Request {
	for _, opt := range opts {
		if opt != nil {
			opt(req)
		}
	}

	return req
}

func redactHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))

	for name, values := range headers {
		if strings.EqualFold(name, "Authorization") {
			out[name] = "[REDACTED]"

			continue
		}

		out[name] = strings.Join(values, ", ")
	}

	return out
}

// leveledLogger adapts Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, kvFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, kvFields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, kvFields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, kvFields(keysAndValues))
}

func kvFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}

		fields[key] = keysAndValues[i+1]
	}

	return fields
}
