package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	DocumentsParsed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "extractor_documents_parsed_total",
		Help: "Total number of HTML documents parsed by the extraction pipeline",
	})
	RecordsExtracted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "extractor_records_extracted_total",
		Help: "Total number of records assembled from item matches",
	})
	SelectorCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "extractor_selector_cache_hits_total",
		Help: "Compiled-selector cache hits",
	})
	SelectorCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "extractor_selector_cache_misses_total",
		Help: "Compiled-selector cache misses (fresh compilations)",
	})
)

func init() {
	prometheus.MustRegister(DocumentsParsed, RecordsExtracted, SelectorCacheHits, SelectorCacheMisses)
}
