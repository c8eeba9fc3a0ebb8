package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"strings"
)

// packs the json config files for an environment into the env var
// exports the service reads at startup, for local development.
func main() {
	type cfgData struct {
		File   string
		EnvVar string
	}

	var cfgBase string
	var tgtEnv string
	var port string
	flag.StringVar(&cfgBase, "dir", "", "local directory holding the environment config trees")
	flag.StringVar(&tgtEnv, "env", "staging", "production or staging")
	flag.StringVar(&port, "port", "8080", "port to run the service on")
	flag.Parse()

	if cfgBase == "" {
		log.Fatal("dir is required")
	}
	if tgtEnv != "staging" && tgtEnv != "production" {
		log.Fatal("env must be staging or production")
	}

	envDir := path.Join(cfgBase, tgtEnv, "solr-shop-ws/environment")

	log.Printf("Generate service config for %s from %s", tgtEnv, envDir)
	cfgFiles := []cfgData{
		{File: "service.json", EnvVar: "SHOP_SOLR_WS_JSON_01"},
		{File: "solr.json", EnvVar: "SHOP_SOLR_WS_JSON_02"},
		{File: "search.json", EnvVar: "SHOP_SOLR_WS_JSON_03"},
		{File: "facets.json", EnvVar: "SHOP_SOLR_WS_JSON_04"},
		{File: "identity.json", EnvVar: "SHOP_SOLR_WS_JSON_05"},
	}

	out := make([]string, 0)
	for _, cf := range cfgFiles {
		tgtFile := path.Join(envDir, cf.File)
		jsonBytes, err := os.ReadFile(tgtFile)
		if err != nil {
			log.Fatal(err.Error())
		}

		if cf.EnvVar == "SHOP_SOLR_WS_JSON_01" {
			// this is the service config where the port is set to "8080"; override
			updated := strings.Replace(string(jsonBytes), "8080", port, 1)
			jsonBytes = []byte(updated)
		}

		oneLine := strings.Join(strings.Fields(string(jsonBytes)), " ")
		out = append(out, fmt.Sprintf("export %s='%s'", cf.EnvVar, oneLine))
	}

	outF, err := os.Create("setup_env.sh")
	if err != nil {
		log.Fatal(err.Error())
	}
	outF.WriteString("#!/bin/bash\n\n")
	outF.WriteString(fmt.Sprintf("export SHOP_SOLR_WS_SOLR_HOST=http://solr-%s.internal:8983/solr\n", tgtEnv))
	outF.WriteString(strings.Join(out, "\n"))
	outF.WriteString("\n")
	outF.Close()
	os.Chmod("setup_env.sh", 0777)
}
