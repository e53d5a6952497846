// Package jq evaluates jq expressions against decoded response documents.
package jq

import (
	"context"
	"fmt"
	"time"

	"github.com/itchyny/gojq"

	"github.com/fivetwenty-io/jsonapi-client/internal/constants"
)

// Executor handles jq expression evaluation with a timeout.
type Executor struct {
	timeout time.Duration
}

// NewExecutor creates a new jq executor. A zero timeout selects
// constants.DefaultJQTimeout.
func NewExecutor(timeout time.Duration) *Executor {
	if timeout == 0 {
		timeout = constants.DefaultJQTimeout
	}

	return &Executor{timeout: timeout}
}

// Validate compiles expression without running it.
func (e *Executor) Validate(expression string) error {
	if expression == "" {
		return nil
	}

	_, err := compile(expression)

	return err
}

// Execute runs expression against data. A single result is returned as-is;
// several results are returned as a slice; no result yields nil. An empty
// expression returns data unchanged.
func (e *Executor) Execute(ctx context.Context, expression string, data any) (any, error) {
	if expression == "" {
		return data, nil
	}

	code, err := compile(expression)
	if err != nil {
		return nil, err
	}

	execCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	iter := code.RunWithContext(execCtx, data)

	var results []any

	for {
		v, ok := iter.Next()
		if !ok {
			break
		}

		if err, isErr := v.(error); isErr {
			if execCtx.Err() != nil {
				return nil, fmt.Errorf("%w after %v", constants.ErrJQTimeout, e.timeout)
			}

			return nil, fmt.Errorf("evaluating jq expression: %w", err)
		}

		results = append(results, v)
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

func compile(expression string) (*gojq.Code, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("compile error: %w", err)
	}

	return code, nil
}
