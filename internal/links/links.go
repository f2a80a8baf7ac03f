// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package links reads the link column of a CSV table and drops rows whose
// link cell is missing.
package links

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/pdf-harvest/pkg/types"
)

// ErrColumnNotFound is returned when the header has no link column.
var ErrColumnNotFound = errors.New("link column not found")

// naValues are the cell values treated as missing, in addition to the
// empty string. They match the NA markers common CSV exporters write.
var naValues = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// IsMissing reports whether a cell value counts as absent.
func IsMissing(cell string) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return true
	}
	_, ok := naValues[cell]
	return ok
}

// Read opens the CSV file at path and returns its link records.
func Read(path, column string) ([]types.LinkRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening link table: %w", err)
	}
	defer f.Close()

	records, err := Parse(f, column)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}

// Parse reads a CSV table with a header row from r. It returns one record
// per data row whose column cell is present, in input order. Record
// indexes count every data row, so they have gaps where rows were dropped.
func Parse(r io.Reader, column string) ([]types.LinkRecord, error) {
	if column == "" {
		column = types.DefaultColumn
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %q (empty table)", ErrColumnNotFound, column)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing header: %w", err)
	}

	col := -1
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if strings.TrimSpace(name) == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	var records []types.LinkRecord
	for index := 0; ; index++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing row %d: %w", index, err)
		}
		if col >= len(row) || IsMissing(row[col]) {
			continue
		}
		records = append(records, types.LinkRecord{Index: index, URL: strings.TrimSpace(row[col])})
	}
	return records, nil
}
