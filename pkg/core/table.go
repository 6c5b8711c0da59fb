package core

import (
	"fmt"
	"math"
)

// RawRow is one line of a measurement table.
type RawRow struct {
	Label  string    // site label, possibly several sites joined by ";"
	Values []float64 // one value per sample column
}

// Table is a parsed measurement table. Header[0] names the site column and
// Header[1:] the samples; Values of every row line up with the samples.
type Table struct {
	Header []string
	Rows   []RawRow
}

// Samples returns the sample names in column order.
func (t *Table) Samples() []string {
	if len(t.Header) < 2 {
		return nil
	}
	return t.Header[1:]
}

// NumSamples returns the number of sample columns.
func (t *Table) NumSamples() int {
	return len(t.Samples())
}

// Head returns a view restricted to the first cols sample columns. Rows are
// copied; values are shared with t.
func (t *Table) Head(cols int) *Table {
	if cols >= t.NumSamples() {
		return t
	}
	h := &Table{
		Header: t.Header[:cols+1],
		Rows:   make([]RawRow, len(t.Rows)),
	}
	for i, row := range t.Rows {
		n := min(cols, len(row.Values))
		h.Rows[i] = RawRow{Label: row.Label, Values: row.Values[:n]}
	}
	return h
}

// Column returns the label/value pairs of the 1-based sample column col.
func (t *Table) Column(col int) ([]string, []float64, error) {
	if col < 1 || col > t.NumSamples() {
		return nil, nil, &DataFormatError{Column: col, Message: "column not present in table"}
	}

	labels := make([]string, len(t.Rows))
	values := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		if len(row.Values) < col {
			return nil, nil, &DataFormatError{Row: i + 1, Column: col, Message: "row is missing a value"}
		}
		labels[i] = row.Label
		values[i] = row.Values[col-1]
	}
	return labels, values, nil
}

// Validate checks that the table can be scored.
func (t *Table) Validate() error {
	if t.NumSamples() == 0 {
		return &DataFormatError{Column: 1, Message: "table needs a site column and at least one sample column"}
	}
	if len(t.Rows) == 0 {
		return &DataFormatError{Column: -1, Message: "table has no data rows"}
	}

	for i, row := range t.Rows {
		if row.Label == "" {
			return &DataFormatError{Row: i + 1, Column: 0, Message: "site label is empty"}
		}
		if len(row.Values) != t.NumSamples() {
			return &DataFormatError{
				Row:     i + 1,
				Column:  -1,
				Message: fmt.Sprintf("expected %d values, got %d", t.NumSamples(), len(row.Values)),
			}
		}
		for j, v := range row.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &DataFormatError{Row: i + 1, Column: j + 1, Message: "value is not a finite number"}
			}
		}
	}

	return nil
}
