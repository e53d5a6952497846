package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/jsonapi-client/internal/jq"
	"github.com/fivetwenty-io/jsonapi-client/pkg/jsonapi"
)

// Renderer prints decoded responses in the selected output format.
type Renderer struct {
	out      io.Writer
	format   string
	jqFilter string
	executor *jq.Executor
}

// NewRenderer creates a renderer. An empty format selects table output on a
// terminal and JSON otherwise.
func NewRenderer(out io.Writer, format, jqFilter string) (*Renderer, error) {
	resolved, err := resolveOutputFormat(format, isTerminalWriter(out))
	if err != nil {
		return nil, err
	}

	executor := jq.NewExecutor(0)

	err = executor.Validate(jqFilter)
	if err != nil {
		return nil, fmt.Errorf("invalid --jq expression: %w", err)
	}

	return &Renderer{
		out:      out,
		format:   resolved,
		jqFilter: jqFilter,
		executor: executor,
	}, nil
}

// Format returns the resolved output format.
func (r *Renderer) Format() string {
	return r.format
}

// Render filters value through the jq expression, if any, and prints it.
func (r *Renderer) Render(ctx context.Context, value any) error {
	filtered, err := r.executor.Execute(ctx, r.jqFilter, value)
	if err != nil {
		return err
	}

	switch r.format {
	case OutputFormatJSON:
		return r.renderJSON(filtered)
	case OutputFormatYAML:
		return r.renderYAML(filtered)
	default:
		return r.renderTable(filtered)
	}
}

func (r *Renderer) renderJSON(value any) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

func (r *Renderer) renderYAML(value any) error {
	encoder := yaml.NewEncoder(r.out)
	encoder.SetIndent(defaultJSONIndent)

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

func (r *Renderer) renderTable(value any) error {
	switch typed := value.(type) {
	case nil:
		return nil
	case string:
		_, err := fmt.Fprintln(r.out, typed)

		return err
	case map[string]any:
		if isDocument(typed) {
			doc, err := jsonapi.AsDocument(typed)
			if err == nil {
				return r.renderDocument(doc)
			}
		}

		return r.renderKeyValues(typed)
	default:
		_, err := fmt.Fprintln(r.out, cellValue(typed))

		return err
	}
}

func (r *Renderer) renderDocument(doc *jsonapi.Document) error {
	if doc.HasErrors() {
		return r.renderErrors(doc.Errors)
	}

	resources, err := doc.Resources()
	if err != nil {
		return fmt.Errorf("reading primary data: %w", err)
	}

	table := tablewriter.NewWriter(r.out)
	table.Header("ID", "Type", "Attributes")

	for _, resource := range resources {
		_ = table.Append(resource.ID, resource.Type, formatAttributes(resource.Attributes))
	}

	for _, resource := range doc.Included {
		_ = table.Append(resource.ID, resource.Type+" (included)", formatAttributes(resource.Attributes))
	}

	return table.Render()
}

func (r *Renderer) renderErrors(errs []jsonapi.ErrorObject) error {
	table := tablewriter.NewWriter(r.out)
	table.Header("Status", "Code", "Title", "Detail")

	for _, e := range errs {
		_ = table.Append(e.Status, e.Code, e.Title, e.Detail)
	}

	return table.Render()
}

func (r *Renderer) renderKeyValues(values map[string]any) error {
	table := tablewriter.NewWriter(r.out)
	table.Header("Key", "Value")

	for _, key := range sortedKeys(values) {
		_ = table.Append(key, cellValue(values[key]))
	}

	return table.Render()
}

// isDocument reports whether a decoded map looks like a JSON:API document.
func isDocument(values map[string]any) bool {
	_, hasData := values["data"]
	_, hasErrors := values["errors"]

	return hasData || hasErrors
}

func formatAttributes(attributes map[string]any) string {
	lines := make([]string, 0, len(attributes))

	for _, key := range sortedKeys(attributes) {
		lines = append(lines, fmt.Sprintf("%s: %s", key, cellValue(attributes[key])))
	}

	return strings.Join(lines, "\n")
}

func cellValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprintf("%v", typed)
		}

		return string(encoded)
	}
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
