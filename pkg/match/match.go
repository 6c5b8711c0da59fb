// Package match joins aggregated sites against the reference database and
// keeps the resulting kinase-substrate partition fixed for a whole run.
package match

import (
	"github.com/ChrisMcGann/KSEA/pkg/aggregate"
	"github.com/ChrisMcGann/KSEA/pkg/core"
)

// Substrate is a matched site of one kinase with its value in the current
// column.
type Substrate struct {
	Site     string
	Sequence string
	Source   string
	Value    float64
}

// Set is the substrate set of one kinase.
type Set struct {
	Kinase          string
	Substrates      []Substrate
	NonSubstrates   []string // matched to another kinase, never to this one
	TotalSubstrates int      // entries for this kinase in the whole database
}

// Len returns the number of matched substrates.
func (s *Set) Len() int {
	return len(s.Substrates)
}

// Values returns the current substrate values in match order.
func (s *Set) Values() []float64 {
	out := make([]float64, len(s.Substrates))
	for i, sub := range s.Substrates {
		out[i] = sub.Value
	}
	return out
}

// Link is one kinase-substrate pair in match order.
type Link struct {
	Kinase   string
	Site     string
	Sequence string
	Source   string
}

// Matches is the frozen kinase-substrate partition of a run. It is built
// from the first sample column; later columns only refresh values.
type Matches struct {
	Column int // column whose values are currently loaded

	sets   []*Set
	index  map[string]*Set
	links  []Link
	sites  []string // distinct matched sites in match order
	values map[string]float64
}

// Build matches every site of col against db. Sites are visited in col order
// and entries in database order, so kinases appear in order of discovery.
func Build(col *aggregate.Column, db *core.ReferenceDB) *Matches {
	m := &Matches{
		Column: col.Index,
		index:  make(map[string]*Set),
		values: make(map[string]float64),
	}

	for _, site := range col.Sites {
		entries := db.Lookup(site)
		if len(entries) == 0 {
			continue
		}
		v, _ := col.Value(site)
		m.sites = append(m.sites, site)
		m.values[site] = v

		for _, e := range entries {
			set, ok := m.index[e.Kinase]
			if !ok {
				set = &Set{Kinase: e.Kinase, TotalSubstrates: db.TotalSubstrates(e.Kinase)}
				m.index[e.Kinase] = set
				m.sets = append(m.sets, set)
			}
			set.Substrates = append(set.Substrates, Substrate{
				Site:     e.Site,
				Sequence: e.Sequence,
				Source:   e.Source,
				Value:    v,
			})
			m.links = append(m.links, Link{Kinase: e.Kinase, Site: e.Site, Sequence: e.Sequence, Source: e.Source})
		}
	}

	for _, set := range m.sets {
		own := make(map[string]bool, len(set.Substrates))
		for _, sub := range set.Substrates {
			own[sub.Site] = true
		}
		for _, site := range m.sites {
			if !own[site] {
				set.NonSubstrates = append(set.NonSubstrates, site)
			}
		}
	}

	return m
}

// Refresh loads the values of col into the existing partition. Membership
// is left untouched even if col alone would match differently.
func (m *Matches) Refresh(col *aggregate.Column) error {
	fresh := make(map[string]float64, len(m.sites))
	for _, site := range m.sites {
		v, ok := col.Value(site)
		if !ok {
			return &core.DataFormatError{
				Column:  col.Index,
				Value:   site,
				Message: "matched site has no value in this column",
			}
		}
		fresh[site] = v
	}

	m.values = fresh
	for _, set := range m.sets {
		for i := range set.Substrates {
			set.Substrates[i].Value = fresh[set.Substrates[i].Site]
		}
	}
	m.Column = col.Index
	return nil
}

// Sets returns the kinase sets in discovery order.
func (m *Matches) Sets() []*Set {
	return m.sets
}

// Set returns the substrate set of kinase.
func (m *Matches) Set(kinase string) (*Set, bool) {
	s, ok := m.index[kinase]
	return s, ok
}

// Links returns every kinase-substrate pair in match order.
func (m *Matches) Links() []Link {
	return m.links
}

// Sites returns the distinct matched sites in match order.
func (m *Matches) Sites() []string {
	return m.sites
}

// Value returns the current value of a matched site.
func (m *Matches) Value(site string) (float64, bool) {
	v, ok := m.values[site]
	return v, ok
}

// NonSubstrateValues returns the current values of the non-substrate sites
// of set.
func (m *Matches) NonSubstrateValues(set *Set) []float64 {
	out := make([]float64, len(set.NonSubstrates))
	for i, site := range set.NonSubstrates {
		out[i] = m.values[site]
	}
	return out
}

// Empty reports whether no site matched the database.
func (m *Matches) Empty() bool {
	return len(m.sets) == 0
}
