// Package report writes a YAML summary of an enrichment run: the run
// parameters plus the plotting series with significance markers, which is
// everything a heatmap or barplot renderer needs.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/ChrisMcGann/KSEA/pkg/enrich"
	"gopkg.in/yaml.v3"
)

// Report is the serialized run summary.
type Report struct {
	Method        string      `yaml:"method"`
	Mode          string      `yaml:"mode"`
	Database      string      `yaml:"database"`
	Samples       []string    `yaml:"samples"`
	Kinases       int         `yaml:"kinases"`
	Links         int         `yaml:"links"`
	LowConfidence []string    `yaml:"low_confidence,omitempty"`
	Placeholder   string      `yaml:"placeholder,omitempty"`
	Series        []SeriesRow `yaml:"series"`
}

// SeriesRow is one kinase of the plotting series.
type SeriesRow struct {
	Kinase  string    `yaml:"kinase"`
	Values  []float64 `yaml:"values"`
	PValues []float64 `yaml:"p_values,omitempty"`
	Markers []string  `yaml:"markers,omitempty"`
	Colors  []string  `yaml:"colors,omitempty"`
}

// New summarizes res.
func New(res *enrich.Result) *Report {
	r := &Report{
		Method:      string(res.Method),
		Mode:        string(res.Mode),
		Database:    res.Database,
		Samples:     res.Samples,
		Kinases:     len(res.Records),
		Links:       len(res.Links),
		Placeholder: res.Series.Placeholder,
		Series:      []SeriesRow{},
	}

	for _, rec := range res.Records {
		if rec.LowConfidence() {
			r.LowConfidence = append(r.LowConfidence, rec.Kinase)
		}
	}

	bands := res.Series.Bands()
	for i, kinase := range res.Series.Kinases {
		row := SeriesRow{Kinase: kinase, Values: res.Series.Values[i]}
		if bands != nil {
			row.PValues = res.Series.PValues[i]
			for _, b := range bands[i] {
				row.Markers = append(row.Markers, b.Marker())
				row.Colors = append(row.Colors, b.Color())
			}
		}
		r.Series = append(r.Series, row)
	}
	return r
}

// Write encodes r as YAML.
func Write(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

// WriteFile writes r to path.
func WriteFile(path string, r *Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := Write(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile loads a report written by WriteFile.
func ReadFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return &r, nil
}
