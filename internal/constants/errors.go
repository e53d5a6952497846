package constants

import "errors"

// Validation errors.
var (
	ErrInvalidHeaderFormat = errors.New("invalid header format, expected 'Name: value'")
	ErrInvalidFilterFormat = errors.New("invalid filter format, expected key=value")
	ErrUnknownOutputFormat = errors.New("unknown output format")
	ErrEndpointArgRequired = errors.New("endpoint argument is required")
)

// jq errors.
var (
	ErrJQTimeout = errors.New("jq evaluation timed out")
)

// Response errors.
var (
	ErrServerReturnedErrors = errors.New("server returned an error document")
)
