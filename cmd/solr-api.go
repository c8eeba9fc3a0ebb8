package main

type solrRequestParams struct {
	DefType    string   `json:"defType,omitempty"`
	Qt         string   `json:"qt,omitempty"`
	Sort       string   `json:"sort,omitempty"`
	Start      int      `json:"start"`
	Rows       int      `json:"rows"`
	Fl         []string `json:"fl,omitempty"`
	Fq         []string `json:"fq,omitempty"`
	Q          string   `json:"q,omitempty"`
	DebugQuery string   `json:"debugQuery,omitempty"`
}

type solrRequestFacet struct {
	Type     string `json:"type,omitempty"`
	Field    string `json:"field,omitempty"`
	Sort     string `json:"sort,omitempty"`
	Offset   int    `json:"offset,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	MinCount int    `json:"mincount,omitempty"`
}

type solrRequestJSON struct {
	Params solrRequestParams            `json:"params"`
	Facets map[string]*solrRequestFacet `json:"facet,omitempty"`
}

type solrMeta struct {
	maxScore     float32
	firstDoc     *solrDocument
	start        int
	numRecords   int
	totalRecords int
	numRows      int // for client pagination
	totalRows    int // for client pagination
}

type solrRequest struct {
	json solrRequestJSON
	meta solrMeta
}

type solrResponseHeader struct {
	Status int `json:"status,omitempty"`
	QTime  int `json:"QTime,omitempty"`
}

type solrDocument map[string]interface{}

type solrBucket struct {
	Val   string `json:"val"`
	Count int    `json:"count"`
}

type solrResponseFacet struct {
	Count   int          `json:"count"`
	Buckets []solrBucket `json:"buckets,omitempty"`
}

type solrResponseFacets map[string]solrResponseFacet

type solrResponseDocuments struct {
	NumFound int            `json:"numFound,omitempty"`
	Start    int            `json:"start,omitempty"`
	MaxScore float32        `json:"maxScore,omitempty"`
	Docs     []solrDocument `json:"docs,omitempty"`
}

type solrError struct {
	Metadata []string `json:"metadata,omitempty"`
	Msg      string   `json:"msg,omitempty"`
	Code     int      `json:"code,omitempty"`
}

// a catch-all for search and ping responses
type solrResponse struct {
	ResponseHeader solrResponseHeader     `json:"responseHeader,omitempty"`
	Response       solrResponseDocuments  `json:"response,omitempty"`
	Debug          interface{}            `json:"debug,omitempty"`
	FacetsRaw      map[string]interface{} `json:"facets,omitempty"`
	Facets         solrResponseFacets     // will be parsed from FacetsRaw
	Error          solrError              `json:"error,omitempty"`
	Status         string                 `json:"status,omitempty"`
	meta           *solrMeta              // pointer to struct in corresponding solrRequest
}
