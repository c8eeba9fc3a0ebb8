package main

import (
	"fmt"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// git commit used for this build; supplied at compile time
var gitCommit string

type serviceVersion struct {
	BuildVersion string `json:"build,omitempty"`
	GoVersion    string `json:"go_version,omitempty"`
	GitCommit    string `json:"git_commit,omitempty"`
}

type poolSolr struct {
	client               *http.Client
	url                  string
	pingURL              string
	scoreThresholdMedium float32
	scoreThresholdHigh   float32
}

type poolTranslations struct {
	bundle *i18n.Bundle
}

type poolMaps struct {
	sortFields      map[string]string
	availableFacets map[string]serviceConfigFacet
}

type poolContext struct {
	randomSource *rand.Rand
	config       *serviceConfig
	translations poolTranslations
	identity     ServiceIdentity
	version      serviceVersion
	solr         poolSolr
	maps         poolMaps
	facetCache   *facetCache
}

func (p *poolContext) initIdentity() {
	p.identity = ServiceIdentity{
		Name:        p.config.Identity.NameXID,
		Description: p.config.Identity.DescXID,
		DocType:     p.config.Solr.DocType,
	}

	// create sort field map
	p.maps.sortFields = make(map[string]string)
	for _, val := range p.config.Identity.SortOptions {
		p.identity.SortOptions = append(p.identity.SortOptions, SortOption{ID: val.XID})
		p.maps.sortFields[val.XID] = val.Field
	}

	log.Printf("[POOL] identity.Name        = [%s]", p.identity.Name)
	log.Printf("[POOL] identity.Description = [%s]", p.identity.Description)
	log.Printf("[POOL] identity.DocType     = [%s]", p.identity.DocType)
}

func (p *poolContext) initVersion() {
	buildVersion := "unknown"
	files, _ := filepath.Glob("buildtag.*")
	if len(files) == 1 {
		buildVersion = strings.Replace(files[0], "buildtag.", "", 1)
	}

	p.version = serviceVersion{
		BuildVersion: buildVersion,
		GoVersion:    fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
		GitCommit:    gitCommit,
	}

	log.Printf("[POOL] version.BuildVersion = [%s]", p.version.BuildVersion)
	log.Printf("[POOL] version.GoVersion    = [%s]", p.version.GoVersion)
	log.Printf("[POOL] version.GitCommit    = [%s]", p.version.GitCommit)
}

func (p *poolContext) initSolr() {
	// client setup

	connTimeout := timeoutWithMinimum(p.config.Solr.ConnTimeout, 5)
	readTimeout := timeoutWithMinimum(p.config.Solr.ReadTimeout, 5)

	solrClient := &http.Client{
		Timeout: time.Duration(readTimeout) * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   time.Duration(connTimeout) * time.Second,
				KeepAlive: 60 * time.Second,
			}).DialContext,
			MaxIdleConns:        100, // we are hitting one solr host, so
			MaxIdleConnsPerHost: 100, // these two values can be the same
			IdleConnTimeout:     90 * time.Second,
		},
	}

	// create facet map
	p.maps.availableFacets = make(map[string]serviceConfigFacet)
	for _, f := range p.config.Facets {
		p.maps.availableFacets[f.XID] = f
	}

	p.solr = poolSolr{
		url:                  fmt.Sprintf("%s/%s/%s", p.config.Solr.Host, p.config.Solr.Core, p.config.Solr.Handler),
		pingURL:              fmt.Sprintf("%s/%s/admin/ping", p.config.Solr.Host, p.config.Solr.Core),
		client:               solrClient,
		scoreThresholdMedium: p.config.Solr.ScoreThresholdMedium,
		scoreThresholdHigh:   p.config.Solr.ScoreThresholdHigh,
	}

	log.Printf("[POOL] solr.url             = [%s]", p.solr.url)
}

func (p *poolContext) initTranslations() {
	defaultLang := language.English

	bundle := i18n.NewBundle(defaultLang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, _ := filepath.Glob("i18n/*.toml")
	for _, f := range files {
		bundle.MustLoadMessageFile(f)
	}

	p.translations = poolTranslations{
		bundle: bundle,
	}
}

func (p *poolContext) validateConfig() {
	// ensure the existence and validity of required variables/solr fields/translation ids

	invalid := false

	solrFields := configValidator{group: "solr fields"}
	messageIDs := configValidator{group: "message ids"}
	miscValues := configValidator{group: "service values"}

	miscValues.requireValue(p.config.Service.Port, "service port")
	miscValues.requireValue(p.config.Service.JWTKey, "jwt key")

	miscValues.requireValue(p.config.Solr.Host, "solr host")
	miscValues.requireValue(p.config.Solr.Core, "solr core")
	miscValues.requireValue(p.config.Solr.Handler, "solr handler")
	miscValues.requireValue(p.config.Solr.Params.Qt, "solr param qt")
	miscValues.requireValue(p.config.Solr.Params.DefType, "solr param deftype")
	miscValues.requireValue(p.config.Solr.DocType, "solr doc type")

	miscValues.requireValue(p.config.Identity.DefaultSort.XID, "default sort xid")
	miscValues.requireValue(p.config.Identity.DefaultSort.Order, "default sort order")

	if p.config.Identity.DefaultSort.XID != "" && p.maps.sortFields[p.config.Identity.DefaultSort.XID] == "" {
		log.Printf("[VALIDATE] default sort xid not found in sort options list")
		invalid = true
	}

	if isValidSortOrder(p.config.Identity.DefaultSort.Order) == false {
		log.Printf("[VALIDATE] default sort order not valid")
		invalid = true
	}

	if len(p.config.Search.KeywordFields) == 0 {
		log.Printf("[VALIDATE] keyword fields list is empty")
		invalid = true
	}

	for i, val := range p.config.Search.KeywordFields {
		solrFields.requireValue(val.Field, fmt.Sprintf("keyword field %d", i))
	}

	messageIDs.requireValue(p.config.Identity.NameXID, "identity name xid")
	messageIDs.requireValue(p.config.Identity.DescXID, "identity description xid")

	for i, val := range p.config.Identity.SortOptions {
		solrFields.requireValue(val.Field, fmt.Sprintf("sort option %d field", i))
		messageIDs.requireValue(val.XID, fmt.Sprintf("sort option %d xid", i))
	}

	for i, val := range p.config.Facets {
		solrFields.requireValue(val.Field, fmt.Sprintf("facet %d field", i))
		messageIDs.requireValue(val.XID, fmt.Sprintf("facet %d xid", i))
	}

	// validate xids can actually be translated

	langs := []string{}
	tags := p.translations.bundle.LanguageTags()

	for _, tag := range tags {
		lang := tag.String()
		langs = append(langs, lang)
		localizer := i18n.NewLocalizer(p.translations.bundle, lang)
		for _, id := range messageIDs.Values() {
			if _, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: id}); err != nil {
				log.Printf("[VALIDATE] [%s] missing translation for message ID: [%s] (%s)", lang, id, err.Error())
				invalid = true
			}
		}
	}

	// check if anything went wrong anywhere

	if invalid || solrFields.Invalid() || messageIDs.Invalid() || miscValues.Invalid() {
		log.Printf("[VALIDATE] exiting due to missing/incorrect field value(s) above")
		os.Exit(1)
	}

	log.Printf("[POOL] supported languages  = [%s]", strings.Join(langs, ", "))
}

func initializePool(cfg *serviceConfig) *poolContext {
	p := poolContext{}

	p.config = cfg
	p.randomSource = rand.New(rand.NewSource(time.Now().UnixNano()))

	p.initTranslations()
	p.initIdentity()
	p.initVersion()
	p.initSolr()

	p.validateConfig()

	refresh := cfg.FacetCache.RefreshSeconds
	if refresh <= 0 {
		refresh = 300
	}
	p.facetCache = newFacetCache(&p, refresh)

	return &p
}
