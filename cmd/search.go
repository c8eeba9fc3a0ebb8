package main

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/shopsearch/solr-shop-ws/solrquery"
)

type searchContext struct {
	pool           *poolContext
	client         *clientContext
	req            SearchRequest
	query          *solrquery.QueryBuilder
	solrReq        *solrRequest
	solrRes        *solrResponse
	res            *SearchResponse
	facetFieldXIDs map[string]string // solr facet field -> translation ID
	requestFacets  bool              // set to true when facet blocks should be requested
	facetsOnly     bool              // set to true for zero-row facet value queries
}

type searchResponse struct {
	status int         // http status code
	data   interface{} // data to return as JSON
	err    error       // error, if any
}

func (s *searchContext) init(p *poolContext, c *clientContext) {
	s.pool = p
	s.client = c
	s.facetFieldXIDs = make(map[string]string)
}

func (s *searchContext) log(format string, args ...interface{}) {
	s.client.log(format, args...)
}

func (s *searchContext) err(format string, args ...interface{}) {
	s.client.err(format, args...)
}

// buildKeywordQuery renders the free-text portion of the search: each
// configured keyword field gets the query as a weighted field scope,
// collected into one required group.
func (s *searchContext) buildKeywordQuery(q *solrquery.QueryBuilder) error {
	if strings.TrimSpace(s.req.Query) == "" {
		return nil
	}

	kw := solrquery.New()

	for _, f := range s.pool.config.Search.KeywordFields {
		if s.req.Fuzziness > 0 {
			if err := kw.AddFuzzyField(f.Field, s.req.Query, kw.Optional(), s.req.Fuzziness); err != nil {
				s.err("fuzzy keyword query error: %s", err.Error())
				return fmt.Errorf("invalid fuzziness value")
			}
		} else {
			kw.AddField(f.Field, s.req.Query, kw.Optional())
		}

		if f.Boost > 0 && f.Boost != 1.0 {
			if err := kw.AddBoost(f.Boost); err != nil {
				s.err("keyword field boost error: %s", err.Error())
				return fmt.Errorf("invalid keyword field configuration")
			}
		}
	}

	q.AddSubquery(kw, q.Mandatory())

	return nil
}

// buildFilterQuery renders the applied facet filters. Values within one
// filter are OR'ed; separate filters are AND'ed.
func (s *searchContext) buildFilterQuery(q *solrquery.QueryBuilder) error {
	exact := solrquery.NewModifier(solrquery.TermRequired).Disjunct()

	for _, filter := range s.req.Filters {
		facet, ok := s.pool.maps.availableFacets[filter.FacetID]
		if ok == false {
			return fmt.Errorf("unsupported filter facet: [%s]", filter.FacetID)
		}

		values := nonemptyValues(filter.Values)

		switch len(values) {
		case 0:
			continue
		case 1:
			q.AddField(facet.Field, values[0], exact)
		default:
			q.AddFieldList(facet.Field, values, exact)
		}
	}

	return nil
}

// buildFacetRequest registers the facet fields to count, plus their
// per-field limit/sort overrides in the parameter table.
func (s *searchContext) buildFacetRequest(q *solrquery.QueryBuilder) error {
	if s.requestFacets == false {
		return nil
	}

	xids := s.req.Facets

	// no explicit selection means all advertised facets
	if len(xids) == 0 {
		for xid := range s.pool.maps.availableFacets {
			xids = append(xids, xid)
		}
	}

	for _, xid := range uniqueStrings(xids) {
		facet, ok := s.pool.maps.availableFacets[xid]
		if ok == false {
			return fmt.Errorf("unsupported facet: [%s]", xid)
		}

		q.AddFacetField(facet.Field)
		s.facetFieldXIDs[facet.Field] = xid

		if facet.Limit > 0 {
			if err := q.SetRequestParam(fmt.Sprintf("f.%s.facet.limit", facet.Field), facet.Limit); err != nil {
				return err
			}
		}

		if facet.Sort != "" {
			if err := q.SetRequestParam(fmt.Sprintf("f.%s.facet.sort", facet.Field), facet.Sort); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *searchContext) buildQuery() error {
	q, err := solrquery.NewTypeQuery(s.pool.config.Solr.DocType)
	if err != nil {
		s.err("type query error: %s", err.Error())
		return fmt.Errorf("service document type is not configured")
	}

	if err := s.buildKeywordQuery(q); err != nil {
		return err
	}

	if err := s.buildFilterQuery(q); err != nil {
		return err
	}

	if err := s.buildFacetRequest(q); err != nil {
		return err
	}

	// pagination

	rows := s.req.Pagination.Rows
	if rows <= 0 {
		rows = s.pool.config.Search.DefaultRows
	}
	if s.facetsOnly == true {
		rows = 0
	}

	if err := q.SetStart(s.req.Pagination.Start); err != nil {
		return err
	}

	if err := q.SetRows(rows); err != nil {
		return err
	}

	// sort

	sortID := s.req.Sort.SortID
	order := s.req.Sort.Order
	if sortID == "" {
		sortID = s.pool.config.Identity.DefaultSort.XID
		order = s.pool.config.Identity.DefaultSort.Order
	}

	field := s.pool.maps.sortFields[sortID]
	if field == "" {
		return fmt.Errorf("invalid sort id: [%s]", sortID)
	}

	if isValidSortOrder(order) == false {
		return fmt.Errorf("invalid sort order: [%s]", order)
	}

	q.SortFields(fmt.Sprintf("%s %s", field, order))

	q.SelectFields(s.pool.config.Solr.Params.Fl...)

	s.query = q

	return nil
}

// buildSolrRequest converts the assembled builder state into the solr
// wire request.
func (s *searchContext) buildSolrRequest() {
	params := solrRequestParams{
		Qt:      s.pool.config.Solr.Params.Qt,
		DefType: s.pool.config.Solr.Params.DefType,
		Fq:      s.pool.config.Solr.Params.Fq,
		Fl:      strings.Split(s.query.SelectedFields(), ","),
		Q:       s.query.Query(),
		Start:   s.query.Start(),
		Rows:    s.query.Rows(),
		Sort:    s.query.SortSpec(),
	}

	if s.client.opts.debug == true {
		params.DebugQuery = "on"
	}

	var facets map[string]*solrRequestFacet

	if fields := s.query.FacetFields(); len(fields) > 0 {
		facets = make(map[string]*solrRequestFacet)

		for _, field := range fields {
			f := solrRequestFacet{Type: "terms", Field: field, MinCount: 1}

			if limit, ok := s.query.RequestParam(fmt.Sprintf("f.%s.facet.limit", field)).(int); ok == true {
				f.Limit = limit
			}

			if facetSort, ok := s.query.RequestParam(fmt.Sprintf("f.%s.facet.sort", field)).(string); ok == true {
				f.Sort = facetSort
			}

			facets[field] = &f
		}
	}

	s.solrReq = &solrRequest{
		json: solrRequestJSON{
			Params: params,
			Facets: facets,
		},
	}
}

func (s *searchContext) performQuery() searchResponse {
	if err := s.buildQuery(); err != nil {
		s.err("query creation error: %s", err.Error())
		return searchResponse{status: http.StatusBadRequest, err: err}
	}

	s.buildSolrRequest()

	if err := s.solrQuery(); err != nil {
		s.err("query execution error: %s", err.Error())
		return searchResponse{status: http.StatusInternalServerError, err: err}
	}

	return searchResponse{status: http.StatusOK}
}

func (s *searchContext) calcConfidence() string {
	if s.solrRes.meta.numRows == 0 {
		return ""
	}

	switch {
	case s.solrRes.meta.maxScore >= s.pool.solr.scoreThresholdHigh:
		return "high"
	case s.solrRes.meta.maxScore >= s.pool.solr.scoreThresholdMedium:
		return "medium"
	default:
		return "low"
	}
}

// selectionMap tracks which filter values the client applied, so facet
// buckets can be flagged as selected in the response.
func (s *searchContext) selectionMap() map[string]map[string]bool {
	selected := make(map[string]map[string]bool)

	for _, filter := range s.req.Filters {
		if selected[filter.FacetID] == nil {
			selected[filter.FacetID] = make(map[string]bool)
		}

		for _, value := range filter.Values {
			selected[filter.FacetID][value] = true
		}
	}

	return selected
}

func (s *searchContext) buildFacetList() []Facet {
	if len(s.solrRes.Facets) == 0 {
		return nil
	}

	selected := s.selectionMap()

	var list []Facet

	for field, solrFacet := range s.solrRes.Facets {
		xid := s.facetFieldXIDs[field]
		if xid == "" {
			s.log("ignoring unrequested facet field in response: [%s]", field)
			continue
		}

		facet := Facet{ID: xid, Name: s.client.localize(xid)}

		for _, bucket := range solrFacet.Buckets {
			facet.Buckets = append(facet.Buckets, FacetBucket{
				Value:    bucket.Val,
				Count:    bucket.Count,
				Selected: selected[xid][bucket.Val],
			})
		}

		list = append(list, facet)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})

	return list
}

func (s *searchContext) buildSearchResponse() {
	res := SearchResponse{
		Request: &s.req,
		Pagination: Pagination{
			Start: s.solrRes.meta.start,
			Rows:  s.solrRes.meta.numRows,
			Total: s.solrRes.meta.totalRows,
		},
		Sort:       s.req.Sort,
		Confidence: s.calcConfidence(),
		ElapsedMS:  s.client.elapsedMS(),
	}

	for _, doc := range s.solrRes.Response.Docs {
		res.Records = append(res.Records, Record(doc))
	}

	res.FacetList = s.buildFacetList()

	s.res = &res
}

func (s *searchContext) getQueryResults() searchResponse {
	if resp := s.performQuery(); resp.err != nil {
		return resp
	}

	s.buildSearchResponse()

	return searchResponse{status: http.StatusOK}
}

func (s *searchContext) handleSearchRequest() searchResponse {
	if err := s.client.ginCtx.ShouldBindJSON(&s.req); err != nil {
		s.err("request binding error: %s", err.Error())
		return searchResponse{status: http.StatusBadRequest, err: fmt.Errorf("invalid search request")}
	}

	s.requestFacets = true

	if resp := s.getQueryResults(); resp.err != nil {
		return resp
	}

	return searchResponse{status: http.StatusOK, data: s.res}
}

func (s *searchContext) handleFacetsRequest() searchResponse {
	// the pre-search filter list is served from the facet cache when warm

	if facets, err := s.pool.facetCache.getCachedFacets(); err == nil {
		return searchResponse{status: http.StatusOK, data: FacetsResponse{FacetList: facets}}
	}

	s.log("facet cache miss; running live facet query")

	if err := s.client.ginCtx.ShouldBindJSON(&s.req); err != nil {
		s.err("request binding error: %s", err.Error())
		return searchResponse{status: http.StatusBadRequest, err: fmt.Errorf("invalid facets request")}
	}

	s.requestFacets = true
	s.facetsOnly = true

	if resp := s.getQueryResults(); resp.err != nil {
		return resp
	}

	return searchResponse{status: http.StatusOK, data: FacetsResponse{FacetList: s.res.FacetList}}
}

func (s *searchContext) handleRecordRequest(id string) searchResponse {
	if strings.TrimSpace(id) == "" {
		return searchResponse{status: http.StatusBadRequest, err: fmt.Errorf("missing record id")}
	}

	q, err := solrquery.NewTypeQuery(s.pool.config.Solr.DocType)
	if err != nil {
		s.err("type query error: %s", err.Error())
		return searchResponse{status: http.StatusInternalServerError, err: fmt.Errorf("service document type is not configured")}
	}

	q.AddUnescapedField("id", fmt.Sprintf(`"%s"`, solrquery.EscapeQuotes(id)), true)

	if err := q.SetRows(1); err != nil {
		return searchResponse{status: http.StatusInternalServerError, err: err}
	}

	q.SelectFields(s.pool.config.Solr.Params.Fl...)

	s.query = q
	s.buildSolrRequest()

	if err := s.solrQuery(); err != nil {
		s.err("query execution error: %s", err.Error())
		return searchResponse{status: http.StatusInternalServerError, err: err}
	}

	if s.solrRes.meta.numRecords == 0 {
		return searchResponse{status: http.StatusNotFound, err: fmt.Errorf("record not found")}
	}

	return searchResponse{status: http.StatusOK, data: Record(*s.solrRes.meta.firstDoc)}
}

func (s *searchContext) handlePingRequest() searchResponse {
	if err := s.solrPing(); err != nil {
		s.err("ping error: %s", err.Error())
		return searchResponse{status: http.StatusInternalServerError, err: err}
	}

	return searchResponse{status: http.StatusOK}
}
