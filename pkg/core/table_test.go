package core

import (
	"errors"
	"math"
	"testing"
)

func TestTableValidation(t *testing.T) {
	tests := []struct {
		name    string
		table   *Table
		wantErr bool
	}{
		{
			name: "valid table",
			table: &Table{
				Header: []string{"Site", "s1", "s2"},
				Rows: []RawRow{
					{Label: "A_S1", Values: []float64{1, 2}},
					{Label: "B_T2;C_Y3", Values: []float64{-1, 0.5}},
				},
			},
			wantErr: false,
		},
		{
			name:    "no sample column",
			table:   &Table{Header: []string{"Site"}, Rows: []RawRow{{Label: "A_S1"}}},
			wantErr: true,
		},
		{
			name:    "no rows",
			table:   &Table{Header: []string{"Site", "s1"}},
			wantErr: true,
		},
		{
			name: "empty label",
			table: &Table{
				Header: []string{"Site", "s1"},
				Rows:   []RawRow{{Label: "", Values: []float64{1}}},
			},
			wantErr: true,
		},
		{
			name: "short row",
			table: &Table{
				Header: []string{"Site", "s1", "s2"},
				Rows:   []RawRow{{Label: "A_S1", Values: []float64{1}}},
			},
			wantErr: true,
		},
		{
			name: "NaN value",
			table: &Table{
				Header: []string{"Site", "s1"},
				Rows:   []RawRow{{Label: "A_S1", Values: []float64{math.NaN()}}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			var dfe *DataFormatError
			if err != nil && !errors.As(err, &dfe) {
				t.Errorf("expected *DataFormatError, got %T", err)
			}
		})
	}
}

func TestTableColumn(t *testing.T) {
	table := &Table{
		Header: []string{"Site", "s1", "s2"},
		Rows: []RawRow{
			{Label: "A_S1", Values: []float64{1, 2}},
			{Label: "B_S2", Values: []float64{3, 4}},
		},
	}

	labels, values, err := table.Column(2)
	if err != nil {
		t.Fatalf("Column(2) error: %v", err)
	}
	if labels[1] != "B_S2" || values[0] != 2 || values[1] != 4 {
		t.Errorf("Column(2) = %v %v", labels, values)
	}

	if _, _, err := table.Column(3); err == nil {
		t.Error("expected error for missing column")
	}
	if _, _, err := table.Column(0); err == nil {
		t.Error("expected error for site column")
	}
}

func TestTableHead(t *testing.T) {
	table := &Table{
		Header: []string{"Site", "s1", "s2"},
		Rows:   []RawRow{{Label: "A_S1", Values: []float64{1, math.NaN()}}},
	}

	h := table.Head(1)
	if h.NumSamples() != 1 || len(h.Rows[0].Values) != 1 {
		t.Fatalf("Head(1) = %+v", h)
	}
	if err := h.Validate(); err != nil {
		t.Errorf("unused NaN column should not fail validation: %v", err)
	}
	if table.Head(5) != table {
		t.Error("Head beyond width should return the table itself")
	}
}

func TestRoundFloat(t *testing.T) {
	tests := []struct {
		name      string
		val       float64
		precision int
		want      float64
	}{
		{"round to 2 decimals", 3.14159, 2, 3.14},
		{"round to 4 decimals", 3.14159, 4, 3.1416},
		{"round to 0 decimals", 3.6, 0, 4.0},
		{"round negative", -3.14159, 2, -3.14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundFloat(tt.val, tt.precision)
			if got != tt.want {
				t.Errorf("RoundFloat() = %v, want %v", got, tt.want)
			}
		})
	}

	if !math.IsInf(RoundFloat(math.Inf(-1), 3), -1) {
		t.Error("RoundFloat(-Inf) should stay -Inf")
	}
}
