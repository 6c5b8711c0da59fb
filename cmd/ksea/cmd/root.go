// Package cmd provides CLI command implementations
package cmd

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	// Flags for run command
	inputFile  string
	dbFile     string
	dbFormat   string
	method     string
	mode       string
	minSub     int
	graphics   bool
	outputDir  string
	sqlitePath string
	writeNpy   bool
	writeRep   bool
	maxBytes   int64
)

var rootCmd = &cobra.Command{
	Use:   "ksea",
	Short: "KSEA - Kinase-substrate enrichment analysis",
	Long: `KSEA scores kinase activity from phosphoproteomics measurements using
known kinase-substrate relationships.

Three scoring methods are supported:
- karp:  weighted-ratio K-score on intensities
- ztest: z-score of substrate fold-changes against the whole sample
- ks:    two-sample Kolmogorov-Smirnov test of substrates vs non-substrates`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		if verbose || viper.GetBool("verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute runs the root command with ctx
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(summarizeCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Settings file (default ./ksea.yaml or $HOME/.ksea/ksea.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Run command flags
	runCmd.Flags().StringVarP(&inputFile, "in", "i", "", "Input table: site labels plus one column per sample (required)")
	runCmd.Flags().StringVarP(&dbFile, "db", "d", "", "Reference kinase-substrate database file (required)")
	runCmd.Flags().StringVar(&dbFormat, "db-format", "psp", "Reference database layout: psp, pdts or edges")
	runCmd.Flags().StringVarP(&method, "method", "m", "ks", "Scoring method: karp, ztest or ks")
	runCmd.Flags().StringVar(&mode, "mode", "single", "Sample mode: single (first column) or multi (all columns)")
	runCmd.Flags().IntVar(&minSub, "min-sub", 5, "Minimum matched substrates for a kinase to be plotted")
	runCmd.Flags().BoolVar(&graphics, "graphics", false, "Record that graphics were requested (otherwise a placeholder is reported)")
	runCmd.Flags().StringVarP(&outputDir, "out", "o", ".", "Output directory for csv tables")
	runCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Also write results to this SQLite database")
	runCmd.Flags().BoolVar(&writeNpy, "npy", false, "Export the plotting series as .npy arrays")
	runCmd.Flags().BoolVar(&writeRep, "report", true, "Write report.yaml")
	runCmd.Flags().Int64Var(&maxBytes, "max-input-bytes", 6*1024*1024, "Input table size limit in bytes (0 = no limit)")

	for _, name := range []string{
		"in", "db", "db-format", "method", "mode", "min-sub", "graphics",
		"out", "sqlite", "npy", "report", "max-input-bytes",
	} {
		viper.BindPFlag(name, runCmd.Flags().Lookup(name))
	}

	validateCmd.Flags().Int64Var(&maxBytes, "max-input-bytes", 6*1024*1024, "Input table size limit in bytes (0 = no limit)")
	summarizeCmd.Flags().StringVar(&dbFormat, "db-format", "psp", "Reference database layout: psp, pdts or edges")
}
