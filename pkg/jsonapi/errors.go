package jsonapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Static errors for err113 compliance.
var (
	ErrEndpointRequired = errors.New("endpoint is required")
	ErrNotADocument     = errors.New("value is not a JSON:API document")
)

// GenericHTTPError is returned when a request fails with a body that is not a
// JSON:API document. Its message is the raw body text.
type GenericHTTPError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *GenericHTTPError) Error() string {
	return e.Body
}

// DecodeError is returned when a body expected to hold JSON does not parse.
type DecodeError struct {
	Body string
	Err  error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding JSON response: %v", e.Err)
}

// Unwrap returns the underlying encoding/json error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ErrorObject is a JSON:API error object.
// See https://jsonapi.org/format/#error-objects.
type ErrorObject struct {
	ID     string         `json:"id,omitempty"     yaml:"id,omitempty"`
	Links  Links          `json:"links,omitempty"  yaml:"links,omitempty"`
	Status string         `json:"status,omitempty" yaml:"status,omitempty"`
	Code   string         `json:"code,omitempty"   yaml:"code,omitempty"`
	Title  string         `json:"title,omitempty"  yaml:"title,omitempty"`
	Detail string         `json:"detail,omitempty" yaml:"detail,omitempty"`
	Source *ErrorSource   `json:"source,omitempty" yaml:"source,omitempty"`
	Meta   map[string]any `json:"meta,omitempty"   yaml:"meta,omitempty"`
}

// ErrorSource points at the part of the request that caused an error.
type ErrorSource struct {
	Pointer   string `json:"pointer,omitempty"   yaml:"pointer,omitempty"`
	Parameter string `json:"parameter,omitempty" yaml:"parameter,omitempty"`
	Header    string `json:"header,omitempty"    yaml:"header,omitempty"`
}

// Error implements the error interface.
func (e *ErrorObject) Error() string {
	var parts []string

	if e.Status != "" {
		parts = append(parts, e.Status)
	}

	if e.Title != "" {
		parts = append(parts, e.Title)
	}

	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}

	if len(parts) == 0 {
		return "unknown error"
	}

	return strings.Join(parts, ": ")
}

// ErrorDocument is a JSON:API error document seen by RouteInto, which cannot
// return it as a value.
type ErrorDocument struct {
	StatusCode int
	Errors     []ErrorObject
}

// Error implements the error interface for ErrorDocument.
func (e *ErrorDocument) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("JSON:API error document (status %d)", e.StatusCode)
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	msgs := make([]string, 0, len(e.Errors))
	for i := range e.Errors {
		msgs = append(msgs, e.Errors[i].Error())
	}

	return "multiple errors: " + strings.Join(msgs, "; ")
}

// FirstError returns the first error or nil.
func (e *ErrorDocument) FirstError() *ErrorObject {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// StatusCode reports the HTTP status carried by err, or 0 when err is not a
// GenericHTTPError or ErrorDocument.
func StatusCode(err error) int {
	httpErr := &GenericHTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}

	docErr := &ErrorDocument{}
	if errors.As(err, &docErr) {
		if docErr.StatusCode != 0 {
			return docErr.StatusCode
		}

		if first := docErr.FirstError(); first != nil {
			code, convErr := strconv.Atoi(first.Status)
			if convErr == nil {
				return code
			}
		}
	}

	return 0
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}
