package extract

import (
	"fmt"
	"strconv"
	"strings"

	"scraper-go/dom"
	"scraper-go/internal/metrics"
)

// ExtractTableData derives records from the first table matched by
// tableSelector without an explicit field mapping. See the Engine method
// for the header rules.
func ExtractTableData(markup, tableSelector string) ([]Record, error) {
	return New(Options{}).ExtractTableData(markup, tableSelector)
}

// ExtractTableData locates the first element matched by tableSelector and
// builds one Record per data row. When the first non-empty row consists of
// header cells its texts become the field names for the rows below,
// aligned by column position; otherwise field names are the column indices
// rendered as strings ("0", "1", ...). Rows shorter than the header are
// padded with absence markers; columns beyond the header keep positional
// names.
func (e *Engine) ExtractTableData(markup, tableSelector string) ([]Record, error) {
	tableSel, err := e.cache.Get(tableSelector)
	if err != nil {
		return nil, fmt.Errorf("table selector: %w", err)
	}
	doc, err := dom.Parse(markup)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	metrics.DocumentsParsed.Inc()

	records := []Record{}
	table, ok := tableSel.MatchFirst(doc.Root())
	if !ok {
		return records, nil
	}

	rows := tableRows(table)
	if len(rows) == 0 {
		return records, nil
	}

	var header []string
	data := rows
	if rows[0].allHeader {
		header = rows[0].texts
		data = rows[1:]
	}

	for _, row := range data {
		rec := make(Record, len(row.texts))
		for i, text := range row.texts {
			name := strconv.Itoa(i)
			if i < len(header) {
				name = header[i]
			}
			v := text
			rec[name] = &v
		}
		// header columns the row is too short for stay present but absent
		for i := len(row.texts); i < len(header); i++ {
			rec[header[i]] = nil
		}
		records = append(records, rec)
	}
	metrics.RecordsExtracted.Add(float64(len(records)))
	return records, nil
}

type row struct {
	texts     []string
	allHeader bool
}

// tableRows enumerates the tr descendants of table in document order,
// dropping rows without any cell. A row counts as a header row when every
// cell is a th.
func tableRows(table dom.Node) []row {
	var rows []row
	table.WalkElements(func(tr dom.Node) {
		if tr.Tag() != "tr" {
			return
		}
		r := row{allHeader: true}
		tr.WalkElements(func(cell dom.Node) {
			switch cell.Tag() {
			case "th":
				r.texts = append(r.texts, strings.TrimSpace(cell.Text()))
			case "td":
				r.texts = append(r.texts, strings.TrimSpace(cell.Text()))
				r.allHeader = false
			}
		})
		if len(r.texts) > 0 {
			rows = append(rows, r)
		}
	})
	return rows
}
