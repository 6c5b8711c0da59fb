// Package npy exports plotting series as NumPy arrays so that heatmaps and
// barplots can be rendered outside this tool.
package npy

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ChrisMcGann/KSEA/pkg/enrich"
	"github.com/kshedden/gonpy"
)

const (
	ValuesFile  = "series_values.npy"
	PValuesFile = "series_pvalues.npy"
)

// nopCloser lets gonpy close the buffer without closing the file underneath
type nopCloser struct {
	*bufio.Writer
}

func (nopCloser) Close() error { return nil }

// WriteMatrix writes a rows x cols float64 array in row-major order
func WriteMatrix(path string, data []float64, rows, cols int) error {
	if len(data) != rows*cols {
		return fmt.Errorf("matrix has %d values, want %d x %d", len(data), rows, cols)
	}

	output, err := os.Create(path)
	if err != nil {
		return err
	}
	defer output.Close()

	bufw := bufio.NewWriter(output)
	npw, err := gonpy.NewWriter(nopCloser{bufw})
	if err != nil {
		return err
	}
	npw.Shape = []int{rows, cols}
	if err := npw.WriteFloat64(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := bufw.Flush(); err != nil {
		return err
	}
	return output.Close()
}

// WriteSeries writes the series values, and p-values when the method has
// them, into dir. An empty series writes nothing. It returns the paths
// written.
func WriteSeries(dir string, s *enrich.Series) ([]string, error) {
	if len(s.Kinases) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	rows, cols := len(s.Kinases), len(s.Samples)

	var paths []string
	path := filepath.Join(dir, ValuesFile)
	if err := WriteMatrix(path, s.Flat(), rows, cols); err != nil {
		return nil, err
	}
	paths = append(paths, path)

	if s.PValues != nil {
		flat := make([]float64, 0, rows*cols)
		for _, row := range s.PValues {
			flat = append(flat, row...)
		}
		path = filepath.Join(dir, PValuesFile)
		if err := WriteMatrix(path, flat, rows, cols); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ReadMatrix loads a two-dimensional float64 array written by WriteMatrix
func ReadMatrix(path string) ([][]float64, error) {
	r, err := gonpy.NewFileReader(path)
	if err != nil {
		return nil, err
	}
	if len(r.Shape) != 2 {
		return nil, fmt.Errorf("%s: expected a 2 dimensional array, got shape %v", path, r.Shape)
	}

	data, err := r.GetFloat64()
	if err != nil {
		return nil, err
	}

	rows, cols := r.Shape[0], r.Shape[1]
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = data[i*cols : (i+1)*cols]
	}
	return out, nil
}
