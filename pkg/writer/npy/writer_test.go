package npy

import (
	"math"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ChrisMcGann/KSEA/pkg/enrich"
)

func TestWriteSeries(t *testing.T) {
	tests := []struct {
		name      string
		series    enrich.Series
		wantFiles int
	}{
		{
			name: "with p-values",
			series: enrich.Series{
				Kinases: []string{"AKT1", "SRC"},
				Samples: []string{"s1", "s2", "s3"},
				Values:  [][]float64{{1, 2, 3}, {-1, -2.5, 0}},
				PValues: [][]float64{{0.5, 0.01, 0.001}, {0.2, 0.04, 1}},
			},
			wantFiles: 2,
		},
		{
			name: "k-score without p-values",
			series: enrich.Series{
				Kinases: []string{"AKT1"},
				Samples: []string{"s1"},
				Values:  [][]float64{{50000}},
			},
			wantFiles: 1,
		},
		{
			name:      "empty series",
			series:    enrich.Series{Samples: []string{"s1"}},
			wantFiles: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			paths, err := WriteSeries(dir, &tt.series)
			if err != nil {
				t.Fatalf("WriteSeries() error: %v", err)
			}
			if len(paths) != tt.wantFiles {
				t.Fatalf("wrote %d files, want %d", len(paths), tt.wantFiles)
			}
			if tt.wantFiles == 0 {
				return
			}

			got, err := ReadMatrix(filepath.Join(dir, ValuesFile))
			if err != nil {
				t.Fatalf("ReadMatrix() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.series.Values) {
				t.Errorf("values = %v, want %v", got, tt.series.Values)
			}

			if tt.series.PValues != nil {
				got, err := ReadMatrix(filepath.Join(dir, PValuesFile))
				if err != nil {
					t.Fatalf("ReadMatrix(pvalues) error: %v", err)
				}
				if !reflect.DeepEqual(got, tt.series.PValues) {
					t.Errorf("p-values = %v, want %v", got, tt.series.PValues)
				}
			}
		})
	}
}

func TestWriteMatrix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.npy")

	if err := WriteMatrix(path, []float64{1, 2, 3}, 2, 2); err == nil {
		t.Error("expected shape mismatch error")
	}

	if err := WriteMatrix(path, []float64{math.Inf(1), -0.5}, 1, 2); err != nil {
		t.Fatalf("WriteMatrix() error: %v", err)
	}
	got, err := ReadMatrix(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || !math.IsInf(got[0][0], 1) || got[0][1] != -0.5 {
		t.Errorf("ReadMatrix() = %v", got)
	}
}
