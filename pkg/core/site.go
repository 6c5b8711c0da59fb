// Package core provides the data model shared by the enrichment pipeline:
// phosphosite labels, measurement tables, the kinase-substrate reference
// database and the typed errors raised while scoring.
package core

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// SiteSeparator joins several phosphosites in one label.
	SiteSeparator = ";"
	// AmbiguousMarker flags a site whose localization is ambiguous.
	AmbiguousMarker = "NO_MOD"
	// NoSequence stands in for a missing sequence context.
	NoSequence = "n/a"
)

// CanonicalSites splits a raw site label into canonical, upper-cased site keys.
// Empty fragments and fragments carrying AmbiguousMarker are dropped.
func CanonicalSites(label string) []string {
	var sites []string
	for _, s := range strings.Split(strings.ToUpper(label), SiteSeparator) {
		if s == "" || strings.Contains(s, AmbiguousMarker) {
			continue
		}
		sites = append(sites, s)
	}
	return sites
}

// Site is a parsed phosphosite key such as "AKT1S1_T246".
type Site struct {
	Gene     string
	Residue  byte
	Position int
}

func (s Site) String() string {
	return fmt.Sprintf("%s_%c%d", s.Gene, s.Residue, s.Position)
}

// ParseSite parses a canonical site key of the form GENE_<residue><position>.
// The residue must be one of S, T or Y.
func ParseSite(key string) (Site, error) {
	i := strings.LastIndex(key, "_")
	if i <= 0 || i == len(key)-1 {
		return Site{}, fmt.Errorf("invalid site %q, expected GENE_<residue><position>", key)
	}

	gene, posStr := key[:i], key[i+1:]
	residue := posStr[0]
	switch residue {
	case 'S', 'T', 'Y':
	default:
		return Site{}, fmt.Errorf("invalid site %q: residue %q is not S, T or Y", key, residue)
	}

	pos, err := strconv.Atoi(posStr[1:])
	if err != nil || pos <= 0 {
		return Site{}, fmt.Errorf("invalid site %q: bad position %q", key, posStr[1:])
	}

	return Site{Gene: gene, Residue: residue, Position: pos}, nil
}
