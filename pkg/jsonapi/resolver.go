package jsonapi

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"
)

// SuccessThreshold is the highest status code treated as success by the
// Resolver. 300 itself is a success; 301 and above are failures.
const SuccessThreshold = 300

// Response is a completed HTTP response with its body fully read.
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       []byte
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// ContentType returns the media type of the response without parameters.
func (r *Response) ContentType() string {
	if r.Headers == nil {
		return ""
	}

	raw := r.Headers.Get("Content-Type")
	if raw == "" {
		return ""
	}

	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.SplitN(raw, ";", 2)[0]))
	}

	return mediaType
}

// ErrorHandler classifies a response before its body is decoded as a
// success document.
//
// Resolve returns (nil, nil) to let the caller proceed with the success
// decode, a non-nil value to hand that value back in place of the decoded
// body, or an error to fail the call.
type ErrorHandler interface {
	Resolve(resp *Response) (any, error)
}

// ErrorHandlerFunc adapts a function to ErrorHandler.
type ErrorHandlerFunc func(resp *Response) (any, error)

// Resolve implements ErrorHandler.
func (f ErrorHandlerFunc) Resolve(resp *Response) (any, error) {
	return f(resp)
}

// Resolver is the default ErrorHandler.
//
// Statuses up to and including 300 proceed. Above that, a body served as
// application/vnd.api+json is decoded and returned rather than raised, so
// callers can inspect its errors array; any other body fails with a
// GenericHTTPError carrying the raw text.
type Resolver struct{}

// DefaultErrorHandler is used when no handler is passed to Route.
var DefaultErrorHandler ErrorHandler = Resolver{}

// Resolve implements ErrorHandler.
func (Resolver) Resolve(resp *Response) (any, error) {
	if resp.StatusCode <= SuccessThreshold {
		return nil, nil
	}

	if resp.ContentType() == MediaType {
		return DecodeBody(resp.Body)
	}

	return nil, &GenericHTTPError{
		StatusCode: resp.StatusCode,
		Body:       resp.Text(),
	}
}

// DecodeBody decodes a UTF-8 JSON body into a tree of maps, slices and
// scalars.
func DecodeBody(body []byte) (any, error) {
	var value any

	err := json.Unmarshal(body, &value)
	if err != nil {
		return nil, &DecodeError{Body: string(body), Err: err}
	}

	return value, nil
}
