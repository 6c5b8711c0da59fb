// Package filter provides row cleaning for measurement tables and the
// substrate-count gate for plotted kinases.
package filter

import (
	"math"

	"github.com/ChrisMcGann/KSEA/pkg/core"
)

// Config holds filtering configuration
type Config struct {
	MinSub int // minimum matched substrates for a kinase to be plotted (0 = all)
}

// Keep reports whether a kinase with subCount matched substrates passes the
// plotting gate.
func (c *Config) Keep(subCount int) bool {
	return subCount >= c.MinSub
}

// Indices returns the positions of counts that pass the gate, preserving
// order.
func (c *Config) Indices(counts []int) []int {
	var out []int
	for i, n := range counts {
		if c.Keep(n) {
			out = append(out, i)
		}
	}
	return out
}

// RemoveIncompleteRows drops rows with an empty label or a missing (NaN)
// value in any of the first cols sample columns. It returns the number of
// rows removed.
func RemoveIncompleteRows(t *core.Table, cols int) int {
	var kept []core.RawRow
	removed := 0
	for _, row := range t.Rows {
		if complete(row, cols) {
			kept = append(kept, row)
		} else {
			removed++
		}
	}
	t.Rows = kept
	return removed
}

func complete(row core.RawRow, cols int) bool {
	if row.Label == "" || len(row.Values) < cols {
		return false
	}
	for _, v := range row.Values[:cols] {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}
