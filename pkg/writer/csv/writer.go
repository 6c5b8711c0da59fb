// Package csv writes result tables as comma-separated files
package csv

import (
	enccsv "encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ChrisMcGann/KSEA/pkg/enrich"
)

const (
	ScoresFile = "ksea_scores.csv"
	LinksFile  = "ks_links.csv"
)

// WriteTable writes the header and rows of t
func WriteTable(w io.Writer, t *enrich.Table) error {
	cw := enccsv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}

// WriteFile writes t to path, replacing any existing file
func WriteFile(path string, t *enrich.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WriteTable(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteResult writes the score and link tables of res into dir and
// returns the paths written
func WriteResult(dir string, res *enrich.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	outputs := []struct {
		name  string
		table *enrich.Table
	}{
		{ScoresFile, res.ScoreTable()},
		{LinksFile, res.LinkTable()},
	}

	var paths []string
	for _, o := range outputs {
		path := filepath.Join(dir, o.name)
		if err := WriteFile(path, o.table); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
