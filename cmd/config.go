package main

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"sort"
	"strings"
)

type serviceConfigService struct {
	Port   string `json:"port,omitempty"`
	JWTKey string `json:"jwt_key,omitempty"`
}

type serviceConfigSolrParams struct {
	Qt      string   `json:"qt,omitempty"`
	DefType string   `json:"deftype,omitempty"`
	Fq      []string `json:"fq,omitempty"` // static filter queries, e.g. shard or tenant restrictions
	Fl      []string `json:"fl,omitempty"`
}

type serviceConfigSolr struct {
	Host                 string                  `json:"host,omitempty"`
	Core                 string                  `json:"core,omitempty"`
	Handler              string                  `json:"handler,omitempty"`
	ConnTimeout          string                  `json:"conn_timeout,omitempty"`
	ReadTimeout          string                  `json:"read_timeout,omitempty"`
	DocType              string                  `json:"doc_type,omitempty"` // dtype_s value restricting this service's documents
	ScoreThresholdMedium float32                 `json:"score_threshold_medium,omitempty"`
	ScoreThresholdHigh   float32                 `json:"score_threshold_high,omitempty"`
	Params               serviceConfigSolrParams `json:"params,omitempty"`
}

type serviceConfigKeywordField struct {
	Field string  `json:"field,omitempty"`
	Boost float64 `json:"boost,omitempty"`
}

type serviceConfigSearch struct {
	KeywordFields []serviceConfigKeywordField `json:"keyword_fields,omitempty"`
	DefaultRows   int                         `json:"default_rows,omitempty"`
	MaxRows       int                         `json:"max_rows,omitempty"`
}

type serviceConfigFacet struct {
	XID   string `json:"xid,omitempty"` // translation ID
	Field string `json:"field,omitempty"`
	Sort  string `json:"sort,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

type serviceConfigSortOption struct {
	XID   string `json:"xid,omitempty"` // translation ID
	Field string `json:"field,omitempty"`
}

type serviceConfigSort struct {
	XID   string `json:"xid,omitempty"`
	Order string `json:"order,omitempty"`
}

type serviceConfigIdentity struct {
	NameXID     string                    `json:"name_xid,omitempty"` // translation ID
	DescXID     string                    `json:"desc_xid,omitempty"` // translation ID
	SortOptions []serviceConfigSortOption `json:"sort_options,omitempty"`
	DefaultSort serviceConfigSort         `json:"default_sort,omitempty"`
}

type serviceConfigFacetCache struct {
	RefreshSeconds int `json:"refresh_seconds,omitempty"`
}

type serviceConfig struct {
	Identity   serviceConfigIdentity   `json:"identity,omitempty"`
	Service    serviceConfigService    `json:"service,omitempty"`
	Solr       serviceConfigSolr       `json:"solr,omitempty"`
	Search     serviceConfigSearch     `json:"search,omitempty"`
	Facets     []serviceConfigFacet    `json:"facets,omitempty"`
	FacetCache serviceConfigFacetCache `json:"facet_cache,omitempty"`
}

func getSortedJSONEnvVars() []string {
	var keys []string

	for _, keyval := range os.Environ() {
		key := strings.Split(keyval, "=")[0]
		if strings.HasPrefix(key, "SHOP_SOLR_WS_JSON_") {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	return keys
}

func loadConfig() *serviceConfig {
	cfg := serviceConfig{}

	// json configs

	envs := getSortedJSONEnvVars()

	valid := true

	for _, env := range envs {
		log.Printf("[CONFIG] loading %s ...", env)
		if val := os.Getenv(env); val != "" {
			dec := json.NewDecoder(bytes.NewReader([]byte(val)))
			dec.DisallowUnknownFields()

			if err := dec.Decode(&cfg); err != nil {
				log.Printf("error decoding %s: %s", env, err.Error())
				valid = false
			}
		}
	}

	if valid == false {
		log.Printf("exiting due to json decode error(s) above")
		os.Exit(1)
	}

	// optional convenience override to simplify terraform config
	if host := os.Getenv("SHOP_SOLR_WS_SOLR_HOST"); host != "" {
		cfg.Solr.Host = host
	}

	bytes, err := json.Marshal(cfg)
	if err != nil {
		log.Printf("error encoding service config json: %s", err.Error())
		os.Exit(1)
	}

	log.Printf("[CONFIG] composite json:")
	log.Printf("\n%s", string(bytes))

	return &cfg
}
