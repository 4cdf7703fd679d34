// Package importer implements the CSV import pipeline: parsing delimited
// text into header-keyed rows, normalizing each row into a candidate
// aircraft record, and reconciling candidates against the store without
// duplicating records or downgrading caught flags.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row is one parsed record keyed by lower-cased, trimmed header name.
// Unrecognized columns are carried through and ignored downstream.
type Row map[string]string

// ParseCSV converts delimited text with a header row into a sequence of
// Rows. Header names are trimmed and lower-cased so column lookup is
// case-insensitive. Records whose cells are all blank are skipped. Any
// structural error (ragged rows, bad quoting) is fatal to the whole
// batch and reported as a single error.
func ParseCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("csv input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	keys := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff") // strip a UTF-8 BOM on the first column
		keys[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed csv: %w", err)
		}
		row := make(Row, len(keys))
		empty := true
		for i, key := range keys {
			if key == "" || i >= len(rec) {
				continue
			}
			row[key] = rec[i]
			if strings.TrimSpace(rec[i]) != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
