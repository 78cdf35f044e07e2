package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"scraper-go/extract"
)

func main() {
	_ = godotenv.Load()

	items   := flag.String("items", "", "CSS selector for repeating item elements")
	table   := flag.String("table", "", "table mode: CSS selector for the table element")
	fields  := flag.String("fields", "", "path to YAML field-mapping file (name: selector[@attr])")
	workers := flag.Int   ("workers", envInt("EXTRACT_WORKERS", 0), "bulk worker count (0 = one per CPU)")
	pps     := flag.Float64("rate", 0, "max pages/sec in bulk mode (0 = unlimited)")
	metrics := flag.String("metrics", os.Getenv("EXTRACT_METRICS_ADDR"), "listen address for /metrics (empty = off)")
	verbose := flag.Bool  ("v", false, "debug logging")

	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *metrics != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(*metrics, nil); err != nil {
				log.Error().Err(err).Msg("metrics server")
			}
		}()
	}

	pages := readPages(flag.Args())
	if len(pages) == 0 {
		log.Fatal().Msg("no input files given")
	}

	engine := extract.New(extract.Options{
		Workers:  *workers,
		PageRate: *pps,
	}.WithLogger(log.Logger))

	var out any
	switch {
	case *table != "":
		perPage := make([][]extract.Record, 0, len(pages))
		for _, page := range pages {
			records, err := engine.ExtractTableData(page, *table)
			if err != nil {
				log.Fatal().Err(err).Msg("table extraction failed")
			}
			perPage = append(perPage, records)
		}
		out = perPage
	case *items != "":
		mapping := readMapping(*fields)
		results, err := engine.ExtractDataBulk(context.Background(), pages, *items, mapping)
		if err != nil {
			log.Fatal().Err(err).Msg("extraction failed")
		}
		out = results
	default:
		log.Fatal().Msg("one of -items or -table is required")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal().Err(err).Msg("encode results")
	}
}

func readPages(paths []string) []string {
	pages := make([]string, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			log.Fatal().Err(err).Str("file", p).Msg("read input")
		}
		pages = append(pages, string(b))
	}
	return pages
}

func readMapping(path string) map[string]string {
	if path == "" {
		log.Fatal().Msg("-fields is required with -items")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("read field mapping")
	}
	mapping := map[string]string{}
	if err := yaml.Unmarshal(b, &mapping); err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("parse field mapping")
	}
	return mapping
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
