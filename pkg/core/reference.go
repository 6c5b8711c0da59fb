package core

// ReferenceEntry is one kinase-substrate relationship.
type ReferenceEntry struct {
	Site     string // canonical substrate site
	Kinase   string
	Sequence string // flanking sequence, NoSequence when unknown
	Source   string
}

// ReferenceDB is an ordered, read-only collection of reference entries.
// It is safe to share between concurrent scoring runs.
type ReferenceDB struct {
	name    string
	entries []ReferenceEntry
	bySite  map[string][]int
	totals  map[string]int
}

// NewReferenceDB indexes entries. The slice is copied; a missing sequence
// context is normalized to NoSequence.
func NewReferenceDB(name string, entries []ReferenceEntry) *ReferenceDB {
	db := &ReferenceDB{
		name:    name,
		entries: make([]ReferenceEntry, len(entries)),
		bySite:  make(map[string][]int),
		totals:  make(map[string]int),
	}

	for i, e := range entries {
		if e.Sequence == "" {
			e.Sequence = NoSequence
		}
		db.entries[i] = e
		db.bySite[e.Site] = append(db.bySite[e.Site], i)
		db.totals[e.Kinase]++
	}

	return db
}

// Name returns the database label, e.g. "psp".
func (db *ReferenceDB) Name() string {
	return db.name
}

// Len returns the number of entries.
func (db *ReferenceDB) Len() int {
	return len(db.entries)
}

// Entries returns a copy of all entries in database order.
func (db *ReferenceDB) Entries() []ReferenceEntry {
	out := make([]ReferenceEntry, len(db.entries))
	copy(out, db.entries)
	return out
}

// Lookup returns the entries whose substrate is site, in database order.
func (db *ReferenceDB) Lookup(site string) []ReferenceEntry {
	idx := db.bySite[site]
	if len(idx) == 0 {
		return nil
	}
	out := make([]ReferenceEntry, len(idx))
	for i, j := range idx {
		out[i] = db.entries[j]
	}
	return out
}

// TotalSubstrates counts the entries listing kinase, independent of any
// sample data.
func (db *ReferenceDB) TotalSubstrates(kinase string) int {
	return db.totals[kinase]
}

// Kinases returns the distinct kinases in order of first appearance.
func (db *ReferenceDB) Kinases() []string {
	seen := make(map[string]bool, len(db.totals))
	var out []string
	for _, e := range db.entries {
		if !seen[e.Kinase] {
			seen[e.Kinase] = true
			out = append(out, e.Kinase)
		}
	}
	return out
}

// Dedupe keeps one entry per (site, kinase) pair. The surviving entry sits at
// the position of the first occurrence and carries the fields of the last.
func Dedupe(entries []ReferenceEntry) []ReferenceEntry {
	type key struct{ site, kinase string }

	pos := make(map[key]int)
	var out []ReferenceEntry
	for _, e := range entries {
		k := key{e.Site, e.Kinase}
		if i, ok := pos[k]; ok {
			out[i] = e
			continue
		}
		pos[k] = len(out)
		out = append(out, e)
	}
	return out
}
