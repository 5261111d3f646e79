// Package matrix parses square weight matrices from CSV: node names on both
// axes, numeric cells. The first header cell is the index-column label and is
// ignored.
package matrix

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// utf8BOM is stripped when present; matrix exports commonly carry it so
// that non-ASCII node names survive spreadsheet round-trips.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Matrix holds parsed row/column labels (trimmed, original order) and the
// numeric cells that were present. Empty cells are simply absent; a
// non-empty cell that does not parse as a number fails Parse.
type Matrix struct {
	Rows []string
	Cols []string

	cells map[cellKey]float64
}

type cellKey struct {
	row, col string
}

// Parse reads a CSV weight matrix. Ragged records (a row with a cell count
// different from the header) are a construction-time error, as is any
// non-empty cell that is not numeric.
func Parse(data []byte) (*Matrix, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("matrix: read csv: %w", err)
	}
	if len(records) < 2 || len(records[0]) < 2 {
		return nil, fmt.Errorf("matrix: no labels found")
	}

	header := records[0]
	m := &Matrix{
		Cols:  make([]string, 0, len(header)-1),
		cells: make(map[cellKey]float64),
	}
	for _, label := range header[1:] {
		m.Cols = append(m.Cols, strings.TrimSpace(label))
	}

	for i, rec := range records[1:] {
		rowLabel := strings.TrimSpace(rec[0])
		m.Rows = append(m.Rows, rowLabel)
		for j, cell := range rec[1:] {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			w, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("matrix: row %d (%q) column %q: unparseable cell %q",
					i+1, rowLabel, m.Cols[j], cell)
			}
			m.cells[cellKey{rowLabel, m.Cols[j]}] = w
		}
	}

	return m, nil
}

// Value returns the numeric cell at (row, col) and whether it was present.
func (m *Matrix) Value(row, col string) (float64, bool) {
	w, ok := m.cells[cellKey{row, col}]
	return w, ok
}
