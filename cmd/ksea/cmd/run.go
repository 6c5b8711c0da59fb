package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/ChrisMcGann/KSEA/pkg/config"
	"github.com/ChrisMcGann/KSEA/pkg/enrich"
	"github.com/ChrisMcGann/KSEA/pkg/filter"
	"github.com/ChrisMcGann/KSEA/pkg/reader/refdb"
	"github.com/ChrisMcGann/KSEA/pkg/reader/table"
	csvout "github.com/ChrisMcGann/KSEA/pkg/writer/csv"
	"github.com/ChrisMcGann/KSEA/pkg/writer/npy"
	"github.com/ChrisMcGann/KSEA/pkg/writer/report"
	"github.com/ChrisMcGann/KSEA/pkg/writer/sqlite"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const reportFile = "report.yaml"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Score kinase activity for a measurement table",
	Long: `Score every kinase with at least one matched substrate in the input table.

Settings may come from flags, a ksea.yaml file or KSEA_* environment variables
(e.g. KSEA_MIN_SUB=3); flags win.

Examples:
  # KS test on log2 fold-changes, all samples, EDGES database
  ksea run --in fc.tsv --db edges_db.tsv --db-format edges --method ks --mode multi --out results

  # K-score on intensities of the first sample, with a SQLite copy
  ksea run --in ints.tsv --db pdts_db.tsv --db-format pdts --method karp --sqlite results.db`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	if err := config.Load(v, cfgFile); err != nil {
		return err
	}
	cfg, err := config.New(v)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Input == "" || cfg.Database == "" {
		return fmt.Errorf("both --in and --db are required")
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	format, err := refdb.ParseFormat(cfg.DBFormat)
	if err != nil {
		return err
	}

	db, err := refdb.LoadFile(cfg.Database, format)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"database": cfg.Database,
		"format":   format,
		"entries":  db.Len(),
		"kinases":  len(db.Kinases()),
	}).Info("loaded reference database")

	t, err := table.ReadFile(cfg.Input, cfg.MaxInputBytes)
	if err != nil {
		return err
	}

	cols := t.NumSamples()
	if opts.Mode == enrich.Single && cols > 1 {
		cols = 1
	}
	if dropped := filter.RemoveIncompleteRows(t, cols); dropped > 0 {
		log.WithField("rows", dropped).Warn("skipped rows with missing values")
	}
	log.WithFields(log.Fields{
		"input":   cfg.Input,
		"rows":    len(t.Rows),
		"samples": cols,
	}).Info("loaded input table")

	res, err := enrich.RunContext(cmd.Context(), t, db, opts)
	if err != nil {
		return err
	}
	if res.Empty() {
		log.Warn("no phosphosite matched the reference database")
	}
	for _, rec := range res.Records {
		if rec.LowConfidence() {
			log.WithFields(log.Fields{
				"kinase":     rec.Kinase,
				"substrates": rec.SubCount,
			}).Debug("low substrate count")
		}
	}

	written, err := writeOutputs(cfg, res)
	if err != nil {
		return err
	}

	fmt.Printf("Method: %s (%s mode), database: %s\n", res.Method, res.Mode, res.Database)
	fmt.Printf("Samples scored: %d\n", len(res.Samples))
	fmt.Printf("Kinases scored: %d (%d plotted with >= %d substrates)\n",
		len(res.Records), len(res.Series.Kinases), opts.MinSub)
	fmt.Printf("Kinase-substrate links: %d\n", len(res.Links))
	if res.Series.Placeholder != "" {
		fmt.Println(res.Series.Placeholder)
	}
	for _, path := range written {
		fmt.Printf("Wrote %s\n", path)
	}

	return nil
}

func writeOutputs(cfg config.Config, res *enrich.Result) ([]string, error) {
	written, err := csvout.WriteResult(cfg.Output.Dir, res)
	if err != nil {
		return written, err
	}

	if cfg.Output.SQLite != "" {
		w, err := sqlite.NewWriter(cfg.Output.SQLite)
		if err != nil {
			return written, fmt.Errorf("failed to create output database: %w", err)
		}
		if err := w.WriteResult(res); err != nil {
			w.Close()
			return written, err
		}
		if err := w.Finalize(); err != nil {
			return written, err
		}
		written = append(written, cfg.Output.SQLite)
	}

	if cfg.Output.Npy {
		paths, err := npy.WriteSeries(cfg.Output.Dir, &res.Series)
		if err != nil {
			return written, err
		}
		if len(paths) == 0 {
			log.Warn("plotting series is empty, no .npy written")
		}
		for _, p := range paths {
			log.WithFields(log.Fields{
				"filename": p,
				"rows":     len(res.Series.Kinases),
				"cols":     len(res.Series.Samples),
			}).Debug("wrote numpy")
		}
		written = append(written, paths...)
	}

	if cfg.Output.Report {
		path := filepath.Join(cfg.Output.Dir, reportFile)
		if err := report.WriteFile(path, report.New(res)); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}
