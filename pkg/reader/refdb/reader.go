// Package refdb provides streaming readers for kinase-substrate reference
// databases stored as tab-separated files with a single header line.
package refdb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ChrisMcGann/KSEA/pkg/core"
)

// Format identifies a reference database layout.
type Format string

const (
	PSP   Format = "psp"   // PhosphoSitePlus export
	PDTS  Format = "pdts"  // PhosphoDisco target sites
	EDGES Format = "edges" // kinase-substrate edge list
)

// Formats lists the supported layouts.
var Formats = []Format{PSP, PDTS, EDGES}

// layout holds the 0-based column of each field; -1 means absent.
type layout struct {
	site, kinase, seq, source int
}

var layouts = map[Format]layout{
	PSP:   {site: 0, kinase: 3, seq: 6, source: 7},
	PDTS:  {site: 1, kinase: 0, seq: -1, source: 5},
	EDGES: {site: 0, kinase: 1, seq: -1, source: 2},
}

// ParseFormat resolves a database name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := layouts[f]; !ok {
		return "", fmt.Errorf("unknown reference database '%s', must be psp, pdts or edges", name)
	}
	return f, nil
}

func (l layout) width() int {
	w := 0
	for _, c := range []int{l.site, l.kinase, l.seq, l.source} {
		if c+1 > w {
			w = c + 1
		}
	}
	return w
}

// Reader provides streaming access to reference database files
type Reader struct {
	scanner *bufio.Scanner
	format  Format
	layout  layout
	lineNum int
	current core.ReferenceEntry
	err     error
}

// NewReader creates a new reader for the given layout
func NewReader(r io.Reader, format Format) (*Reader, error) {
	l, ok := layouts[format]
	if !ok {
		return nil, fmt.Errorf("unknown reference database format '%s'", format)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	return &Reader{
		scanner: scanner,
		format:  format,
		layout:  l,
	}, nil
}

// Next advances to the next entry. Returns false when no more entries or error.
func (r *Reader) Next() bool {
	for r.scanner.Scan() {
		r.lineNum++
		if r.lineNum == 1 {
			continue // header
		}

		line := strings.TrimRight(r.scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry, err := r.parseLine(line)
		if err != nil {
			r.err = fmt.Errorf("line %d: %w", r.lineNum, err)
			return false
		}
		r.current = entry
		return true
	}

	if err := r.scanner.Err(); err != nil {
		r.err = err
	}
	return false
}

// Entry returns the current entry
func (r *Reader) Entry() core.ReferenceEntry {
	return r.current
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) parseLine(line string) (core.ReferenceEntry, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < r.layout.width() {
		return core.ReferenceEntry{}, fmt.Errorf("expected at least %d columns for %s, got %d",
			r.layout.width(), r.format, len(fields))
	}

	e := core.ReferenceEntry{
		Site:     fields[r.layout.site],
		Kinase:   fields[r.layout.kinase],
		Sequence: core.NoSequence,
		Source:   fields[r.layout.source],
	}
	if r.layout.seq >= 0 {
		e.Sequence = fields[r.layout.seq]
	}
	if e.Site == "" || e.Kinase == "" {
		return core.ReferenceEntry{}, fmt.Errorf("missing site or kinase")
	}
	return e, nil
}

// Load reads a whole database. PhosphoSitePlus exports may repeat a
// (site, kinase) pair; those are collapsed with core.Dedupe.
func Load(r io.Reader, format Format) (*core.ReferenceDB, error) {
	rd, err := NewReader(r, format)
	if err != nil {
		return nil, err
	}

	var entries []core.ReferenceEntry
	for rd.Next() {
		entries = append(entries, rd.Entry())
	}
	if err := rd.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s database: %w", format, err)
	}

	if format == PSP {
		entries = core.Dedupe(entries)
	}
	return core.NewReferenceDB(string(format), entries), nil
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string, format Format) (*core.ReferenceDB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference database: %w", err)
	}
	defer f.Close()

	return Load(f, format)
}
