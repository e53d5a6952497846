package jsonapi

import (
	"net/url"
	"strings"
)

// IncludeParam is the query key carrying relationship include paths.
const IncludeParam = "include"

// QueryParams represents the query of a Route call: filter parameters plus
// relationship include paths.
type QueryParams struct {
	// Filters are sent verbatim, e.g. {"filter[name]": "Tolkien"}.
	Filters map[string]string
	// Include lists relationship paths such as "books" or "books.chapters".
	// They are comma-joined under the include key.
	Include []string
}

// NewQueryParams creates empty query parameters.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string]string),
	}
}

// WithFilter sets one filter parameter.
func (q *QueryParams) WithFilter(key, value string) *QueryParams {
	if q.Filters == nil {
		q.Filters = make(map[string]string)
	}

	q.Filters[key] = value

	return q
}

// WithFilters sets several filter parameters.
func (q *QueryParams) WithFilters(filters map[string]string) *QueryParams {
	for key, value := range filters {
		q.WithFilter(key, value)
	}

	return q
}

// WithInclude appends include paths.
func (q *QueryParams) WithInclude(paths ...string) *QueryParams {
	q.Include = append(q.Include, paths...)

	return q
}

// IncludeValue returns the comma-joined include paths, skipping blank ones.
// Non-blank paths are joined as given.
func (q *QueryParams) IncludeValue() string {
	if q == nil {
		return ""
	}

	paths := make([]string, 0, len(q.Include))

	for _, path := range q.Include {
		if strings.TrimSpace(path) != "" {
			paths = append(paths, path)
		}
	}

	return strings.Join(paths, ",")
}

// Merged returns the filters with the include value merged in under the
// include key, compacted. A non-empty include value replaces an include
// filter.
func (q *QueryParams) Merged() map[string]string {
	if q == nil {
		return map[string]string{}
	}

	merged := make(map[string]string, len(q.Filters)+1)
	for key, value := range q.Filters {
		merged[key] = value
	}

	if include := q.IncludeValue(); include != "" {
		merged[IncludeParam] = include
	}

	return Compact(merged)
}

// ToValues converts the query parameters to url.Values. Empty values are
// never transmitted.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}

	for key, value := range q.Merged() {
		values.Set(key, value)
	}

	return values
}

// Compact returns a copy of params without entries whose key or value is
// empty. Compact(Compact(m)) equals Compact(m).
func Compact(params map[string]string) map[string]string {
	out := make(map[string]string, len(params))

	for key, value := range params {
		if key == "" || value == "" {
			continue
		}

		out[key] = value
	}

	return out
}
