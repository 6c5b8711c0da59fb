// Package table reads phosphosite measurement tables: a header row, a site
// label column and one numeric column per sample.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ChrisMcGann/KSEA/pkg/core"
)

// DefaultMaxBytes is the default input size limit.
const DefaultMaxBytes = 6 * 1024 * 1024

// ErrTooLarge is returned when the input exceeds the size limit.
var ErrTooLarge = errors.New("input table exceeds size limit")

// Options controls parsing.
type Options struct {
	Comma    rune  // field separator, tab when zero
	MaxBytes int64 // 0 = no limit
}

// missing cell spellings, compared case-insensitively
var missing = map[string]bool{"": true, "NA": true, "NAN": true, "N/A": true, "NULL": true}

// ReadFile reads a table from path. Files ending in .csv are comma
// separated, everything else is tab separated.
func ReadFile(path string, maxBytes int64) (*core.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input table: %w", err)
	}
	defer f.Close()

	opts := Options{Comma: '\t', MaxBytes: maxBytes}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		opts.Comma = ','
	}
	return Read(f, opts)
}

// Read parses a table. Missing cells (empty, NA, NaN) become NaN so that
// callers can drop incomplete rows; any other non-numeric cell is a
// *core.DataFormatError.
func Read(r io.Reader, opts Options) (*core.Table, error) {
	if opts.MaxBytes > 0 {
		r = &limitReader{r: r, n: opts.MaxBytes}
	}

	cr := csv.NewReader(r)
	cr.Comma = opts.Comma
	if cr.Comma == 0 {
		cr.Comma = '\t'
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &core.DataFormatError{Column: -1, Message: "input table is empty"}
	}
	if err != nil {
		return nil, readErr(err)
	}
	if len(header) < 2 {
		return nil, &core.DataFormatError{Column: 1, Message: "header needs a site column and at least one sample column"}
	}

	t := &core.Table{Header: make([]string, len(header))}
	for i, h := range header {
		t.Header[i] = strings.TrimSpace(h)
	}
	t.Header[0] = strings.TrimPrefix(t.Header[0], "\ufeff")

	rowNum := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, readErr(err)
		}
		rowNum++

		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}

		row := core.RawRow{
			Label:  strings.TrimSpace(rec[0]),
			Values: make([]float64, len(header)-1),
		}
		for j := 1; j < len(header); j++ {
			cell := ""
			if j < len(rec) {
				cell = strings.TrimSpace(rec[j])
			}
			v, err := parseCell(cell)
			if err != nil {
				return nil, &core.DataFormatError{
					Row:     rowNum,
					Column:  j,
					Value:   cell,
					Message: "value is not numeric",
				}
			}
			row.Values[j-1] = v
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

func parseCell(cell string) (float64, error) {
	if missing[strings.ToUpper(cell)] {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) {
		return 0, fmt.Errorf("infinite value")
	}
	return v, nil
}

func readErr(err error) error {
	if errors.Is(err, ErrTooLarge) {
		return err
	}
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &core.DataFormatError{Row: pe.Line, Column: -1, Message: pe.Err.Error()}
	}
	return fmt.Errorf("error reading input table: %w", err)
}

// limitReader fails with ErrTooLarge once more than n bytes are read.
type limitReader struct {
	r io.Reader
	n int64
}

func (l *limitReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.n -= int64(n)
	if l.n < 0 {
		return n, ErrTooLarge
	}
	return n, err
}
