// Package enrich runs a kinase enrichment analysis over one or more sample
// columns and assembles the result tables.
package enrich

import (
	"context"
	"fmt"

	"github.com/ChrisMcGann/KSEA/pkg/aggregate"
	"github.com/ChrisMcGann/KSEA/pkg/core"
	"github.com/ChrisMcGann/KSEA/pkg/filter"
	"github.com/ChrisMcGann/KSEA/pkg/match"
	"github.com/ChrisMcGann/KSEA/pkg/score"
)

// Mode selects how many sample columns are scored.
type Mode string

const (
	Single Mode = "single" // first sample column only
	Multi  Mode = "multi"  // every sample column
)

// ParseMode resolves a mode name.
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case Single, Multi:
		return Mode(name), nil
	}
	return "", fmt.Errorf("invalid mode '%s', must be single or multi", name)
}

// Options configures a run.
type Options struct {
	Method   score.Method
	Mode     Mode
	MinSub   int  // minimum substrate count for the plotting series
	Graphics bool // false leaves a textual placeholder in the series
}

// Record is the growing result row of one kinase: one Stat per processed
// column, in column order.
type Record struct {
	Kinase          string
	SubCount        int
	TotalSubstrates int
	Stats           []score.Stat
}

// LowConfidence flags kinases scored from fewer than three substrates. Such
// scores are reported but are statistically weak.
func (r *Record) LowConfidence() bool {
	return r.SubCount < 3
}

// LinkRow is a kinase-substrate pair with its value in every column.
type LinkRow struct {
	match.Link
	Values []float64
}

// Run scores t against db. It is RunContext without cancellation.
func Run(t *core.Table, db *core.ReferenceDB, opts Options) (*Result, error) {
	return RunContext(context.Background(), t, db, opts)
}

// RunContext scores t against db. The kinase-substrate partition is built
// from the first sample column and reused unchanged for every later column;
// each column appends one Stat to every kinase record. ctx is checked
// between columns. Any scoring failure aborts the run.
func RunContext(ctx context.Context, t *core.Table, db *core.ReferenceDB, opts Options) (*Result, error) {
	strategy, err := score.New(opts.Method)
	if err != nil {
		return nil, err
	}
	if opts.Mode == "" {
		opts.Mode = Single
	}

	cols := t.NumSamples()
	if opts.Mode == Single && cols > 1 {
		cols = 1
	}
	view := t.Head(cols)
	if err := view.Validate(); err != nil {
		return nil, err
	}

	res := &Result{
		Method:   opts.Method,
		Mode:     opts.Mode,
		Database: db.Name(),
		Samples:  append([]string(nil), view.Samples()...),
	}

	var (
		matches *match.Matches
		byName  = make(map[string]*Record)
	)

	for col := 1; col <= cols; col++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		agg, err := aggregate.Aggregate(view, col)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate column %d: %w", col, err)
		}

		if col == 1 {
			matches = match.Build(agg, db)
			for _, set := range matches.Sets() {
				rec := &Record{
					Kinase:          set.Kinase,
					SubCount:        set.Len(),
					TotalSubstrates: set.TotalSubstrates,
				}
				byName[set.Kinase] = rec
				res.Records = append(res.Records, rec)
			}
			for _, l := range matches.Links() {
				res.Links = append(res.Links, LinkRow{Link: l})
			}
		} else if err := matches.Refresh(agg); err != nil {
			return nil, fmt.Errorf("failed to refresh column %d: %w", col, err)
		}

		cs := score.ColumnStats(agg)
		for _, set := range matches.Sets() {
			in := score.Input{
				Kinase:          set.Kinase,
				Column:          col,
				Values:          set.Values(),
				TotalSubstrates: set.TotalSubstrates,
			}
			if opts.Method == score.KSTest {
				in.NonSubstrates = matches.NonSubstrateValues(set)
			}

			st, err := strategy.Score(in, cs)
			if err != nil {
				return nil, fmt.Errorf("failed to score kinase %s in column %d (%s): %w",
					set.Kinase, col, res.Samples[col-1], err)
			}
			rec := byName[set.Kinase]
			rec.Stats = append(rec.Stats, st)
		}

		for i := range res.Links {
			v, _ := matches.Value(res.Links[i].Site)
			res.Links[i].Values = append(res.Links[i].Values, v)
		}
	}

	gate := &filter.Config{MinSub: opts.MinSub}
	res.Series = buildSeries(res, gate, opts.Graphics)

	return res, nil
}
