package main

import (
	"testing"
)

func TestGetCachedFacetsBeforeRefresh(t *testing.T) {
	f := facetCache{}

	if _, err := f.getCachedFacets(); err == nil {
		t.Fatalf("Expected error before first refresh")
	}
}

func TestGetCachedFacetsAfterStore(t *testing.T) {
	f := facetCache{}

	facets := []Facet{{ID: "FacetColor", Name: "Color"}}
	f.currentFacets.Store(&facets)

	got, err := f.getCachedFacets()
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	if len(got) != 1 || got[0].ID != "FacetColor" {
		t.Fatalf("Expected cached facets, got %v", got)
	}
}
