package extract

import (
	"fmt"

	"scraper-go/dom"
	"scraper-go/internal/metrics"
	"scraper-go/selector"
)

// ExtractData parses markup once and assembles one Record per element
// matched by itemSelector. Field selectors are evaluated inside each item's
// subtree only. A document with zero item matches yields an empty, non-nil
// slice. The only error cases are invalid selectors.
func ExtractData(markup, itemSelector string, fields map[string]string) ([]Record, error) {
	return New(Options{}).ExtractData(markup, itemSelector, fields)
}

// ExtractData is the single-document pipeline: compile, parse, match,
// assemble.
func (e *Engine) ExtractData(markup, itemSelector string, fields map[string]string) ([]Record, error) {
	itemSel, specs, err := e.compileAll(itemSelector, fields)
	if err != nil {
		return nil, err
	}
	doc, err := dom.Parse(markup)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	metrics.DocumentsParsed.Inc()
	return assemble(doc, itemSel, specs), nil
}

// assemble builds the record list for one parsed document. It touches no
// engine state, so bulk workers call it concurrently on their own documents.
func assemble(doc *dom.Document, itemSel *selector.Selector, specs map[string]FieldSpec) []Record {
	items := itemSel.MatchAll(doc.Root())
	records := make([]Record, 0, len(items))
	for _, item := range items {
		rec := make(Record, len(specs))
		for name, fs := range specs {
			rec[name] = extractField(item, fs)
		}
		records = append(records, rec)
	}
	metrics.RecordsExtracted.Add(float64(len(records)))
	return records
}

func fieldError(name string, err error) error {
	return fmt.Errorf("field %q: %w", name, err)
}
