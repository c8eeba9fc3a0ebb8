package solrquery

import (
	"sort"
	"strings"
)

// reserved request parameters with dedicated setters. assigning them
// through SetRequestParam would bypass validation and the query buffer.
var reservedParams = map[string]bool{
	"q":     true,
	"start": true,
	"rows":  true,
}

// SetStart sets the first-result offset. It must be non-negative.
func (b *QueryBuilder) SetStart(start int) error {
	if start < 0 {
		return ErrInvalidStart
	}

	b.params["start"] = start

	return nil
}

// Start returns the first-result offset.
func (b *QueryBuilder) Start() int {
	start, _ := b.params["start"].(int)
	return start
}

// SetRows sets the page size. It must be between 0 and the builder's
// configured maximum.
func (b *QueryBuilder) SetRows(rows int) error {
	if rows < 0 || rows > b.maxRows {
		return ErrInvalidRows
	}

	b.params["rows"] = rows

	return nil
}

// Rows returns the page size.
func (b *QueryBuilder) Rows() int {
	rows, _ := b.params["rows"].(int)
	return rows
}

// SelectFields sets the fields returned per document. With no fields
// the selection falls back to every field.
func (b *QueryBuilder) SelectFields(fields ...string) *QueryBuilder {
	if len(fields) == 0 {
		b.params["fl"] = "*"
	} else {
		b.params["fl"] = strings.Join(fields, ",")
	}

	return b
}

// SelectedFields returns the field selection, defaulting to "*".
func (b *QueryBuilder) SelectedFields() string {
	fl, ok := b.params["fl"].(string)
	if ok == false || fl == "" {
		return "*"
	}

	return fl
}

// SortFields sets the sort specification, e.g. "price_f asc".
func (b *QueryBuilder) SortFields(sortSpec string) *QueryBuilder {
	if isBlank(sortSpec) == true {
		return b
	}

	b.params["sort"] = sortSpec

	return b
}

// SortSpec returns the sort specification, or "" when unset.
func (b *QueryBuilder) SortSpec() string {
	sortSpec, _ := b.params["sort"].(string)
	return sortSpec
}

// AddFacetField registers a field for facet counting. Registration is
// idempotent; the first one enables faceting for the request.
func (b *QueryBuilder) AddFacetField(name string) *QueryBuilder {
	if isBlank(name) == true {
		return b
	}

	if len(b.facets) == 0 {
		b.params["facet"] = true
	}

	b.facets[name] = true

	return b
}

// AddFacetFields registers multiple facet fields.
func (b *QueryBuilder) AddFacetFields(names ...string) *QueryBuilder {
	for _, name := range names {
		b.AddFacetField(name)
	}

	return b
}

// FacetFields returns the registered facet fields in sorted order.
func (b *QueryBuilder) FacetFields() []string {
	fields := make([]string, 0, len(b.facets))

	for name := range b.facets {
		fields = append(fields, name)
	}

	sort.Strings(fields)

	return fields
}

// SetRequestParam assigns an auxiliary request parameter. The reserved
// names q, start and rows are rejected; use the query buffer, SetStart
// and SetRows for those.
func (b *QueryBuilder) SetRequestParam(name string, value interface{}) error {
	if reservedParams[strings.ToLower(name)] == true {
		return ErrReservedParam
	}

	b.params[name] = value

	return nil
}

// RequestParam returns the named auxiliary parameter, or nil when
// unset.
func (b *QueryBuilder) RequestParam(name string) interface{} {
	return b.params[name]
}

// RequestParams returns a copy of the request parameters with the
// accumulated query text injected under q and the facet set rendered
// under facet.field. The builder keeps ownership of its own state; the
// copy is safe to hand to a transport layer.
func (b *QueryBuilder) RequestParams() map[string]interface{} {
	params := make(map[string]interface{}, len(b.params)+2)

	for name, value := range b.params {
		params[name] = value
	}

	params["q"] = b.Query()

	if len(b.facets) > 0 {
		params["facet.field"] = b.FacetFields()
	}

	return params
}
