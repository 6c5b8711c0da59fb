package enrich

import (
	"math"
	"strconv"

	"github.com/ChrisMcGann/KSEA/pkg/core"
	"github.com/ChrisMcGann/KSEA/pkg/filter"
	"github.com/ChrisMcGann/KSEA/pkg/score"
)

const (
	heatmapPlaceholder = "Heatmap was not generated for this analysis."
	barplotPlaceholder = "Barplot was not generated for this analysis."
)

// Result is the outcome of a run. Records and Links follow kinase
// discovery order and match order respectively.
type Result struct {
	Method   score.Method
	Mode     Mode
	Database string
	Samples  []string
	Records  []*Record
	Links    []LinkRow
	Series   Series
}

// Empty reports whether no kinase was matched.
func (r *Result) Empty() bool {
	return len(r.Records) == 0
}

// Series is the numeric input of a heatmap (multi-sample) or barplot
// (single-sample) renderer. Rows are kinases passing the substrate-count
// gate, in the same order as Result.Records.
type Series struct {
	Kinases     []string
	Samples     []string
	Values      [][]float64 // K-score, z-score or signed log10(1/p)
	PValues     [][]float64 // nil for the K-score
	Placeholder string      // set when graphics were declined
}

// Bands returns the significance band of every cell. It is nil when the
// method has no p-value.
func (s *Series) Bands() [][]score.Significance {
	if s.PValues == nil {
		return nil
	}
	out := make([][]score.Significance, len(s.PValues))
	for i, row := range s.PValues {
		out[i] = make([]score.Significance, len(row))
		for j, p := range row {
			out[i][j] = score.Band(p)
		}
	}
	return out
}

// Flat returns Values in row-major order.
func (s *Series) Flat() []float64 {
	out := make([]float64, 0, len(s.Kinases)*len(s.Samples))
	for _, row := range s.Values {
		out = append(out, row...)
	}
	return out
}

func buildSeries(r *Result, gate *filter.Config, graphics bool) Series {
	s := Series{Samples: r.Samples}

	counts := make([]int, len(r.Records))
	for i, rec := range r.Records {
		counts[i] = rec.SubCount
	}

	for _, i := range gate.Indices(counts) {
		rec := r.Records[i]
		values := make([]float64, len(rec.Stats))
		pvals := make([]float64, len(rec.Stats))
		for j, st := range rec.Stats {
			values[j] = st.HeatValue(r.Method)
			pvals[j] = st.PValue
		}
		s.Kinases = append(s.Kinases, rec.Kinase)
		s.Values = append(s.Values, values)
		if r.Method.HasPValue() {
			s.PValues = append(s.PValues, pvals)
		}
	}
	if r.Method.HasPValue() && s.PValues == nil {
		s.PValues = [][]float64{}
	}

	if !graphics {
		if r.Mode == Multi {
			s.Placeholder = heatmapPlaceholder
		} else {
			s.Placeholder = barplotPlaceholder
		}
	}
	return s
}

// Table is a rendered output table.
type Table struct {
	Header []string
	Rows   [][]string
}

// ScoreHeader returns the score table column labels.
func (r *Result) ScoreHeader() []string {
	header := []string{"Kinase", "Sub.Count", "Total.Sub.Count"}
	for _, name := range r.Samples {
		for _, label := range statLabels(r.Method, r.Mode) {
			header = append(header, r.label(label, name))
		}
	}
	return header
}

// ScoreTable renders one row per kinase with a block of statistics per
// sample.
func (r *Result) ScoreTable() *Table {
	t := &Table{Header: r.ScoreHeader()}
	for _, rec := range r.Records {
		row := []string{rec.Kinase, strconv.Itoa(rec.SubCount), strconv.Itoa(rec.TotalSubstrates)}
		for _, st := range rec.Stats {
			for _, v := range StatValues(r.Method, st) {
				row = append(row, FormatFloat(v))
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// LinkHeader returns the link table column labels.
func (r *Result) LinkHeader() []string {
	header := []string{"Kinase", "Site", "Site.Seq(+/- 7AA)", "Source"}
	value := "log2(FC)"
	if r.Method.Intensity() {
		value = "Ints"
	}
	for _, name := range r.Samples {
		header = append(header, r.label(value, name))
	}
	return header
}

// LinkTable renders one row per kinase-substrate pair.
func (r *Result) LinkTable() *Table {
	t := &Table{Header: r.LinkHeader()}
	for _, l := range r.Links {
		seq := l.Sequence
		if seq == "" {
			seq = core.NoSequence
		}
		row := []string{l.Kinase, l.Site, seq, l.Source}
		for _, v := range l.Values {
			row = append(row, FormatFloat(v))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func (r *Result) label(label, sample string) string {
	if r.Mode == Multi {
		return label + "." + sample
	}
	return label
}

func statLabels(m score.Method, mode Mode) []string {
	switch m {
	case score.WeightedRatio:
		return []string{"Sum.Ints", "kSc"}
	case score.ZTest:
		return []string{"mnlog2(FC)", "zSc", "pVal"}
	case score.KSTest:
		if mode == Multi {
			return []string{"mnlog2(FC)", "(+/-)KS", "pVal", "(+/-)-log10(pVal)"}
		}
		return []string{"mnlog2(FC)", "(+/-) KS", "pVal", "(+/-) -log10(pVal)"}
	}
	return nil
}

// StatValues returns the reported fields of st in column order for m.
func StatValues(m score.Method, st score.Stat) []float64 {
	switch m {
	case score.WeightedRatio:
		return []float64{st.Sum, st.Score}
	case score.ZTest:
		return []float64{st.Mean, st.Score, st.PValue}
	case score.KSTest:
		return []float64{st.Mean, st.Score, st.PValue, st.LogP}
	}
	return nil
}

// FormatFloat renders a value with the shortest exact representation. NaN
// renders empty.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
