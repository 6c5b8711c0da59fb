package cmd

import (
	"math"
	"reflect"
	"testing"

	"github.com/ChrisMcGann/KSEA/pkg/core"
)

func TestTopKinases(t *testing.T) {
	db := core.NewReferenceDB("edges", []core.ReferenceEntry{
		{Site: "A_S1", Kinase: "CK2"},
		{Site: "B_S2", Kinase: "AKT1"},
		{Site: "C_S3", Kinase: "AKT1"},
		{Site: "D_S4", Kinase: "SRC"},
		{Site: "E_Y5", Kinase: "SRC"},
		{Site: "F_S6", Kinase: "PKACA"},
	})

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"all", 10, []string{"AKT1", "SRC", "CK2", "PKACA"}},
		{"truncated", 2, []string{"AKT1", "SRC"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := topKinases(db, db.Kinases(), tt.n)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("topKinases() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColumnMean(t *testing.T) {
	table := &core.Table{
		Header: []string{"Site", "s1", "s2"},
		Rows: []core.RawRow{
			{Label: "A_S1", Values: []float64{1, math.NaN()}},
			{Label: "B_S2", Values: []float64{2, math.NaN()}},
		},
	}

	if got := columnMean(table, 0); math.Abs(got-1.5) > 1e-12 {
		t.Errorf("columnMean(s1) = %v, want 1.5", got)
	}
	if got := columnMean(table, 1); !math.IsNaN(got) {
		t.Errorf("columnMean(s2) = %v, want NaN", got)
	}
}
