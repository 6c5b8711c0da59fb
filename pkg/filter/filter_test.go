package filter

import (
	"math"
	"reflect"
	"testing"

	"github.com/ChrisMcGann/KSEA/pkg/core"
)

func TestRemoveIncompleteRows(t *testing.T) {
	nan := math.NaN()
	newTable := func() *core.Table {
		return &core.Table{
			Header: []string{"Site", "s1", "s2"},
			Rows: []core.RawRow{
				{Label: "A_S1", Values: []float64{1, 2}},
				{Label: "", Values: []float64{1, 2}},
				{Label: "B_S2", Values: []float64{nan, 2}},
				{Label: "C_S3", Values: []float64{1, nan}},
			},
		}
	}

	tests := []struct {
		name    string
		cols    int
		removed int
		labels  []string
	}{
		{"first column only", 1, 2, []string{"A_S1", "C_S3"}},
		{"all columns", 2, 3, []string{"A_S1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := newTable()
			removed := RemoveIncompleteRows(table, tt.cols)
			if removed != tt.removed {
				t.Errorf("removed = %d, want %d", removed, tt.removed)
			}
			var labels []string
			for _, r := range table.Rows {
				labels = append(labels, r.Label)
			}
			if !reflect.DeepEqual(labels, tt.labels) {
				t.Errorf("kept %v, want %v", labels, tt.labels)
			}
		})
	}
}

func TestConfigIndices(t *testing.T) {
	c := &Config{MinSub: 3}
	got := c.Indices([]int{5, 1, 3, 2, 9})
	if want := []int{0, 2, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Indices() = %v, want %v", got, want)
	}

	all := &Config{}
	if len(all.Indices([]int{0, 1})) != 2 {
		t.Error("MinSub 0 should keep every kinase")
	}
}
