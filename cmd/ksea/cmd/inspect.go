package cmd

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/ChrisMcGann/KSEA/pkg/core"
	"github.com/ChrisMcGann/KSEA/pkg/reader/refdb"
	"github.com/ChrisMcGann/KSEA/pkg/reader/table"
	"github.com/spf13/cobra"
)

// maximum number of bad labels echoed by validate
const maxReported = 10

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an input measurement table",
	Long: `Parse an input table and report its samples, missing values and site labels
that are ambiguous (NO_MOD) or do not look like GENE_<S|T|Y><position>.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarize a reference kinase-substrate database",
	Long:  `Print entry, substrate and kinase counts of a reference database, with the kinases having the most substrates.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

func runValidate(cmd *cobra.Command, args []string) error {
	t, err := table.ReadFile(args[0], maxBytes)
	if err != nil {
		return err
	}

	var (
		incomplete int
		ambiguous  int
		sites      int
		bad        []string
	)
	for _, row := range t.Rows {
		for _, v := range row.Values {
			if math.IsNaN(v) {
				incomplete++
				break
			}
		}
		if strings.Contains(strings.ToUpper(row.Label), core.AmbiguousMarker) {
			ambiguous++
		}
		for _, key := range core.CanonicalSites(row.Label) {
			sites++
			if _, err := core.ParseSite(key); err != nil {
				bad = append(bad, key)
			}
		}
	}

	fmt.Printf("File: %s\n", args[0])
	fmt.Printf("Samples: %d (%s)\n", t.NumSamples(), strings.Join(t.Samples(), ", "))
	fmt.Printf("Rows: %d (%d with missing values)\n", len(t.Rows), incomplete)
	fmt.Printf("Sites: %d (%d labels with ambiguous sites)\n", sites, ambiguous)
	for j, name := range t.Samples() {
		fmt.Printf("  %-16s mean %v\n", name, core.RoundFloat(columnMean(t, j), 4))
	}

	if len(bad) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d site keys are not GENE_<S|T|Y><position>\n", len(bad))
		for i, key := range bad {
			if i == maxReported {
				fmt.Fprintf(os.Stderr, "  ...\n")
				break
			}
			fmt.Fprintf(os.Stderr, "  %s\n", key)
		}
	}
	return nil
}

func runSummarize(cmd *cobra.Command, args []string) error {
	format, err := refdb.ParseFormat(dbFormat)
	if err != nil {
		return err
	}
	db, err := refdb.LoadFile(args[0], format)
	if err != nil {
		return err
	}

	kinases := db.Kinases()
	substrates := make(map[string]bool)
	for _, e := range db.Entries() {
		substrates[e.Site] = true
	}

	fmt.Printf("Database: %s (%s)\n", args[0], format)
	fmt.Printf("Entries: %d\n", db.Len())
	fmt.Printf("Kinases: %d\n", len(kinases))
	fmt.Printf("Distinct substrate sites: %d\n", len(substrates))

	top := topKinases(db, kinases, maxReported)
	if len(top) > 0 {
		fmt.Printf("Kinases with most substrates:\n")
		for _, k := range top {
			fmt.Printf("  %-12s %d\n", k, db.TotalSubstrates(k))
		}
	}
	return nil
}

// columnMean averages the non-missing values of the 0-based sample column j
func columnMean(t *core.Table, j int) float64 {
	sum, n := 0.0, 0
	for _, row := range t.Rows {
		if j < len(row.Values) && !math.IsNaN(row.Values[j]) {
			sum += row.Values[j]
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// topKinases returns up to n kinases by descending substrate count; ties
// keep database order.
func topKinases(db *core.ReferenceDB, kinases []string, n int) []string {
	out := append([]string(nil), kinases...)
	sort.SliceStable(out, func(i, j int) bool {
		return db.TotalSubstrates(out[i]) > db.TotalSubstrates(out[j])
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
