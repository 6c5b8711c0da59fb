package aggregate

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/ChrisMcGann/KSEA/pkg/core"
)

func TestFromPairs(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		values []float64
		want   map[string]float64
		order  []string
	}{
		{
			name:   "duplicate site averaged",
			labels: []string{"S", "S"},
			values: []float64{2, 4},
			want:   map[string]float64{"S": 3.0},
			order:  []string{"S"},
		},
		{
			name:   "multi site label feeds both sites",
			labels: []string{"A_S1;B_S2", "A_S1"},
			values: []float64{4, 8},
			want:   map[string]float64{"A_S1": 6, "B_S2": 4},
			order:  []string{"A_S1", "B_S2"},
		},
		{
			name:   "ambiguous fragment excluded",
			labels: []string{"GENE_S1;NO_MOD_X"},
			values: []float64{1.5},
			want:   map[string]float64{"GENE_S1": 1.5},
			order:  []string{"GENE_S1"},
		},
		{
			name:   "case folded",
			labels: []string{"gene_s1", "GENE_S1"},
			values: []float64{1, 3},
			want:   map[string]float64{"GENE_S1": 2},
			order:  []string{"GENE_S1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := FromPairs(1, tt.labels, tt.values)
			if err != nil {
				t.Fatalf("FromPairs() error: %v", err)
			}
			if !reflect.DeepEqual(c.Sites, tt.order) {
				t.Errorf("Sites = %v, want %v", c.Sites, tt.order)
			}
			for site, want := range tt.want {
				got, ok := c.Value(site)
				if !ok || got != want {
					t.Errorf("Value(%s) = %v (%v), want %v", site, got, ok, want)
				}
			}
			if c.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", c.Len(), len(tt.want))
			}
		})
	}
}

func TestAggregateRowOrderIndependent(t *testing.T) {
	a, err := FromPairs(1, []string{"A_S1", "B_S2", "A_S1"}, []float64{1, 5, 3})
	if err != nil {
		t.Fatal(err)
	}
	b, err := FromPairs(1, []string{"A_S1", "A_S1", "B_S2"}, []float64{3, 1, 5})
	if err != nil {
		t.Fatal(err)
	}

	for _, site := range []string{"A_S1", "B_S2"} {
		va, _ := a.Value(site)
		vb, _ := b.Value(site)
		if va != vb {
			t.Errorf("%s: %v != %v", site, va, vb)
		}
	}
}

func TestAggregateIdempotent(t *testing.T) {
	table := &core.Table{
		Header: []string{"Site", "s1"},
		Rows: []core.RawRow{
			{Label: "A_S1", Values: []float64{2}},
			{Label: "A_S1;B_S2", Values: []float64{4}},
		},
	}

	first, err := Aggregate(table, 1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Aggregate(table, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("aggregating twice differs: %+v vs %+v", first, second)
	}

	// Aggregating an already aggregated column is a no-op.
	again, err := FromPairs(1, first.Sites, first.Values())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, again) {
		t.Errorf("re-aggregation changed values: %+v vs %+v", first, again)
	}
}

func TestAggregateErrors(t *testing.T) {
	table := &core.Table{
		Header: []string{"Site", "s1"},
		Rows:   []core.RawRow{{Label: "A_S1", Values: []float64{1}}},
	}

	_, err := Aggregate(table, 2)
	var dfe *core.DataFormatError
	if !errors.As(err, &dfe) {
		t.Errorf("missing column: expected DataFormatError, got %v", err)
	}

	_, err = FromPairs(1, []string{"A_S1"}, []float64{math.Inf(1)})
	if !errors.As(err, &dfe) {
		t.Errorf("infinite value: expected DataFormatError, got %v", err)
	}
}

func TestColumnStatistics(t *testing.T) {
	c, err := FromPairs(1, []string{"A", "B", "C", "D"}, []float64{2, 4, 4, 6})
	if err != nil {
		t.Fatal(err)
	}

	if c.Sum() != 16 {
		t.Errorf("Sum() = %v, want 16", c.Sum())
	}
	if c.Mean() != 4 {
		t.Errorf("Mean() = %v, want 4", c.Mean())
	}
	// population variance = (4+0+0+4)/4 = 2
	if math.Abs(c.PopStdDev()-math.Sqrt2) > 1e-12 {
		t.Errorf("PopStdDev() = %v, want %v", c.PopStdDev(), math.Sqrt2)
	}
}
