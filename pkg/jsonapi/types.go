package jsonapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Links represents a JSON:API links object. Values are either a URL string or
// a link object with an href.
type Links map[string]any

// Href returns the URL of the named link, whichever form it takes.
func (l Links) Href(name string) string {
	switch link := l[name].(type) {
	case string:
		return link
	case map[string]any:
		if href, ok := link["href"].(string); ok {
			return href
		}
	}

	return ""
}

// ResourceIdentifier identifies a resource by type and id.
type ResourceIdentifier struct {
	Type string `json:"type" yaml:"type"`
	ID   string `json:"id"   yaml:"id"`
}

// Relationship represents a to-one or to-many relationship. Data is kept raw
// because it may be null, an identifier or an array of identifiers.
type Relationship struct {
	Data  json.RawMessage `json:"data,omitempty"  yaml:"-"`
	Links Links           `json:"links,omitempty" yaml:"links,omitempty"`
	Meta  map[string]any  `json:"meta,omitempty"  yaml:"meta,omitempty"`
}

// Identifiers returns the related resource identifiers.
func (r Relationship) Identifiers() ([]ResourceIdentifier, error) {
	return decodeOneOrMany[ResourceIdentifier](r.Data)
}

// Resource represents a JSON:API resource object.
type Resource struct {
	Type          string                  `json:"type"                    yaml:"type"`
	ID            string                  `json:"id,omitempty"            yaml:"id,omitempty"`
	Attributes    map[string]any          `json:"attributes,omitempty"    yaml:"attributes,omitempty"`
	Relationships map[string]Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	Links         Links                   `json:"links,omitempty"         yaml:"links,omitempty"`
	Meta          map[string]any          `json:"meta,omitempty"          yaml:"meta,omitempty"`
}

// Document is a typed view of a JSON:API top-level document.
type Document struct {
	Data     json.RawMessage `json:"data,omitempty"     yaml:"-"`
	Included []Resource      `json:"included,omitempty" yaml:"included,omitempty"`
	Errors   []ErrorObject   `json:"errors,omitempty"   yaml:"errors,omitempty"`
	Meta     map[string]any  `json:"meta,omitempty"     yaml:"meta,omitempty"`
	Links    Links           `json:"links,omitempty"    yaml:"links,omitempty"`
	JSONAPI  map[string]any  `json:"jsonapi,omitempty"  yaml:"jsonapi,omitempty"`
}

// AsDocument converts a value returned by Route or Routes into a Document.
func AsDocument(value any) (*Document, error) {
	if _, ok := value.(map[string]any); !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotADocument, value)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	var doc Document

	err = json.Unmarshal(raw, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotADocument, err)
	}

	return &doc, nil
}

// HasErrors reports whether the document carries a top-level errors array.
func (d *Document) HasErrors() bool {
	return len(d.Errors) > 0
}

// ErrorDocument returns the document's errors as an error value.
func (d *Document) ErrorDocument(statusCode int) *ErrorDocument {
	return &ErrorDocument{
		StatusCode: statusCode,
		Errors:     d.Errors,
	}
}

// Resources returns the primary data as a slice: empty for null data, one
// element for a single resource.
func (d *Document) Resources() ([]Resource, error) {
	return decodeOneOrMany[Resource](d.Data)
}

// FindIncluded returns the included resource with the given type and id.
func (d *Document) FindIncluded(resourceType, id string) *Resource {
	for i := range d.Included {
		if d.Included[i].Type == resourceType && d.Included[i].ID == id {
			return &d.Included[i]
		}
	}

	return nil
}

// Related resolves a relationship of r against the document's included
// resources. Identifiers without an included resource are skipped.
func (d *Document) Related(r *Resource, name string) ([]Resource, error) {
	rel, ok := r.Relationships[name]
	if !ok {
		return nil, nil
	}

	ids, err := rel.Identifiers()
	if err != nil {
		return nil, err
	}

	related := make([]Resource, 0, len(ids))

	for _, id := range ids {
		if res := d.FindIncluded(id.Type, id.ID); res != nil {
			related = append(related, *res)
		}
	}

	return related, nil
}

func decodeOneOrMany[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	if trimmed[0] == '[' {
		var many []T

		err := json.Unmarshal(trimmed, &many)
		if err != nil {
			return nil, fmt.Errorf("decoding resource array: %w", err)
		}

		return many, nil
	}

	var one T

	err := json.Unmarshal(trimmed, &one)
	if err != nil {
		return nil, fmt.Errorf("decoding resource: %w", err)
	}

	return []T{one}, nil
}
