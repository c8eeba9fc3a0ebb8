package main

// public request/response types for the shop search API

type Pagination struct {
	Start int `json:"start"`
	Rows  int `json:"rows"`
	Total int `json:"total"`
}

type SortOrder struct {
	SortID string `json:"sort_id,omitempty"`
	Order  string `json:"order,omitempty"`
}

type SearchFilter struct {
	FacetID string   `json:"facet_id"`
	Values  []string `json:"values"`
}

type SearchRequest struct {
	Query      string         `json:"query"`
	Fuzziness  float64        `json:"fuzziness,omitempty"`
	Filters    []SearchFilter `json:"filters,omitempty"`
	Facets     []string       `json:"facets,omitempty"`
	Pagination Pagination     `json:"pagination"`
	Sort       SortOrder      `json:"sort,omitempty"`
}

type FacetBucket struct {
	Value    string `json:"value"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

type Facet struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Buckets []FacetBucket `json:"buckets,omitempty"`
}

// Record is a single result document. field visibility is decided by
// the solr field list, so the map is passed through as-is.
type Record map[string]interface{}

type SearchResponse struct {
	Request    *SearchRequest `json:"request"`
	Pagination Pagination     `json:"pagination"`
	Sort       SortOrder      `json:"sort,omitempty"`
	Records    []Record       `json:"records,omitempty"`
	FacetList  []Facet        `json:"facet_list,omitempty"`
	Confidence string         `json:"confidence,omitempty"`
	ElapsedMS  int64          `json:"elapsed_ms"`
}

type FacetsResponse struct {
	FacetList []Facet `json:"facet_list"`
}

type SortOption struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

type ServiceIdentity struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	DocType     string       `json:"doc_type,omitempty"`
	SortOptions []SortOption `json:"sort_options,omitempty"`
}
