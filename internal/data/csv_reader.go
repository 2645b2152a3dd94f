package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Missing-value sentinels carried over from the raw cardiovascular
// exports. Cells matching one of these become missing at parse time,
// as does anything that fails numeric coercion.
var missingSentinels = map[string]bool{
	"":   true,
	"?":  true,
	"-9": true,
}

type CSVReader struct {
	filename string
}

func NewCSVReader(filename string) *CSVReader {
	return &CSVReader{filename: filename}
}

// LoadTable reads the whole delimited file into a Table, preserving
// the header's column names and order.
func (cr *CSVReader) LoadTable() (*Table, error) {
	file, err := os.Open(cr.filename)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v: %w", cr.filename, err, ErrDataAccess)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %v: %w", cr.filename, err, ErrDataAccess)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s has no data rows: %w", cr.filename, ErrDataAccess)
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	table := NewTable(headers)

	for _, record := range records[1:] {
		if len(record) != len(headers) {
			return nil, fmt.Errorf("%s: row has %d fields, header has %d: %w",
				cr.filename, len(record), len(headers), ErrDataAccess)
		}

		row := make([]decimal.Decimal, len(record))
		missing := make([]bool, len(record))

		for j, raw := range record {
			val := strings.TrimSpace(raw)
			if missingSentinels[val] {
				missing[j] = true
				continue
			}
			dec, err := decimal.NewFromString(val)
			if err != nil {
				missing[j] = true
				continue
			}
			row[j] = dec
		}

		table.AppendRow(row, missing)
	}

	return table, nil
}

// LoadTable is a convenience wrapper for one-shot loads.
func LoadTable(filename string) (*Table, error) {
	return NewCSVReader(filename).LoadTable()
}
