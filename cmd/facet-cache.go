package main

import (
	"errors"
	"log"
	"sync/atomic"
	"time"
)

// facetCache periodically runs a zero-row match-all facet query so the
// pre-search filter endpoint can answer without hitting solr.
type facetCache struct {
	pool            *poolContext
	refreshInterval int
	currentFacets   atomic.Pointer[[]Facet]
}

func newFacetCache(pool *poolContext, interval int) *facetCache {
	f := facetCache{
		pool:            pool,
		refreshInterval: interval,
	}

	go f.monitorFacets()

	return &f
}

func (f *facetCache) monitorFacets() {
	for {
		f.refreshFacets()
		log.Printf("[CACHE] refresh scheduled in %d seconds", f.refreshInterval)
		time.Sleep(time.Duration(f.refreshInterval) * time.Second)
	}
}

func (f *facetCache) refreshFacets() {
	log.Printf("[CACHE] refreshing solr facets...")

	c := clientContext{}
	c.init(f.pool, nil)

	s := searchContext{}
	s.init(f.pool, &c)

	s.requestFacets = true
	s.facetsOnly = true

	if resp := s.getQueryResults(); resp.err != nil {
		s.err("[CACHE] query error: %s", resp.err.Error())
		return
	}

	f.currentFacets.Store(&s.res.FacetList)
}

func (f *facetCache) getCachedFacets() ([]Facet, error) {
	// the refresh goroutine swaps the pointer; readers load their own copy
	facets := f.currentFacets.Load()

	if facets == nil {
		return nil, errors.New("facets have not been cached yet")
	}

	return *facets, nil
}
