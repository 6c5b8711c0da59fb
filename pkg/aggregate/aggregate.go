// Package aggregate collapses a measurement column into one value per
// canonical phosphosite.
package aggregate

import (
	"math"

	"github.com/ChrisMcGann/KSEA/pkg/core"
	"gonum.org/v1/gonum/stat"
)

// Column holds the averaged value of every canonical site in one sample
// column. Sites keeps first-seen order, which fixes kinase discovery order
// downstream.
type Column struct {
	Index  int // 1-based sample column
	Sites  []string
	values map[string]float64
}

// Aggregate builds the site map for the 1-based sample column col. Each
// label is split into canonical sites, every site receives the row value,
// and sites seen on several rows get the arithmetic mean.
func Aggregate(t *core.Table, col int) (*Column, error) {
	labels, values, err := t.Column(col)
	if err != nil {
		return nil, err
	}
	return FromPairs(col, labels, values)
}

// FromPairs aggregates raw (label, value) pairs for column col.
func FromPairs(col int, labels []string, values []float64) (*Column, error) {
	if len(labels) != len(values) {
		return nil, &core.DataFormatError{Column: col, Message: "labels and values differ in length"}
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	c := &Column{Index: col}

	for i, label := range labels {
		v := values[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &core.DataFormatError{Row: i + 1, Column: col, Message: "value is not a finite number"}
		}
		for _, site := range core.CanonicalSites(label) {
			if _, ok := counts[site]; !ok {
				c.Sites = append(c.Sites, site)
			}
			sums[site] += v
			counts[site]++
		}
	}

	c.values = make(map[string]float64, len(c.Sites))
	for _, site := range c.Sites {
		c.values[site] = sums[site] / float64(counts[site])
	}

	return c, nil
}

// Len returns the number of distinct sites.
func (c *Column) Len() int {
	return len(c.Sites)
}

// Value returns the aggregated value of site.
func (c *Column) Value(site string) (float64, bool) {
	v, ok := c.values[site]
	return v, ok
}

// Values returns all aggregated values in site order.
func (c *Column) Values() []float64 {
	out := make([]float64, len(c.Sites))
	for i, site := range c.Sites {
		out[i] = c.values[site]
	}
	return out
}

// Sum returns the sum over all sites in the column.
func (c *Column) Sum() float64 {
	sum := 0.0
	for _, site := range c.Sites {
		sum += c.values[site]
	}
	return sum
}

// Mean returns the mean over all sites in the column.
func (c *Column) Mean() float64 {
	if len(c.Sites) == 0 {
		return math.NaN()
	}
	return stat.Mean(c.Values(), nil)
}

// PopStdDev returns the population standard deviation over all sites.
func (c *Column) PopStdDev() float64 {
	if len(c.Sites) == 0 {
		return math.NaN()
	}
	return stat.PopStdDev(c.Values(), nil)
}
