package table

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ChrisMcGann/KSEA/pkg/core"
)

func TestRead(t *testing.T) {
	data := "Site\tctrl\ttreated\n" +
		"A_S1\t1.5\t-2\n" +
		"B_T2;C_Y3\tNA\t0.25\n" +
		"D_Y4\t\t1e-3\n" +
		"E_S5\t3\n"

	tbl, err := Read(strings.NewReader(data), Options{})
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}

	if want := []string{"Site", "ctrl", "treated"}; !reflect.DeepEqual(tbl.Header, want) {
		t.Errorf("Header = %v, want %v", tbl.Header, want)
	}
	if len(tbl.Rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(tbl.Rows))
	}

	tests := []struct {
		row, col int
		want     float64
		nan      bool
	}{
		{0, 0, 1.5, false},
		{0, 1, -2, false},
		{1, 0, 0, true},
		{1, 1, 0.25, false},
		{2, 0, 0, true},
		{2, 1, 0.001, false},
		{3, 1, 0, true},
	}
	for _, tt := range tests {
		got := tbl.Rows[tt.row].Values[tt.col]
		if tt.nan {
			if !math.IsNaN(got) {
				t.Errorf("row %d col %d = %v, want NaN", tt.row, tt.col, got)
			}
			continue
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("row %d col %d = %v, want %v", tt.row, tt.col, got, tt.want)
		}
	}

	if tbl.Rows[1].Label != "B_T2;C_Y3" {
		t.Errorf("label = %q", tbl.Rows[1].Label)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		opts    Options
		wantRow int
		wantCol int
	}{
		{
			name:    "empty input",
			data:    "",
			wantCol: -1,
		},
		{
			name:    "header without samples",
			data:    "Site\nA_S1\n",
			wantCol: 1,
		},
		{
			name:    "non numeric cell",
			data:    "Site\ts1\ts2\nA_S1\t1\t2\nB_S2\t3\tabc\n",
			wantRow: 2,
			wantCol: 2,
		},
		{
			name:    "infinite cell",
			data:    "Site\ts1\nA_S1\tInf\n",
			wantRow: 1,
			wantCol: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.data), tt.opts)
			var dfe *core.DataFormatError
			if !errors.As(err, &dfe) {
				t.Fatalf("expected *core.DataFormatError, got %v", err)
			}
			if dfe.Row != tt.wantRow || dfe.Column != tt.wantCol {
				t.Errorf("error at row %d col %d, want row %d col %d", dfe.Row, dfe.Column, tt.wantRow, tt.wantCol)
			}
		})
	}
}

func TestReadSizeLimit(t *testing.T) {
	data := "Site\ts1\n" + strings.Repeat("A_S1\t1\n", 100)

	if _, err := Read(strings.NewReader(data), Options{MaxBytes: 64}); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
	if _, err := Read(strings.NewReader(data), Options{MaxBytes: int64(len(data))}); err != nil {
		t.Errorf("input at the limit should be accepted: %v", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "input.csv")
	if err := os.WriteFile(csvPath, []byte("\ufeffSite,s1\nA_S1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := ReadFile(csvPath, DefaultMaxBytes)
	if err != nil {
		t.Fatalf("ReadFile(csv) error: %v", err)
	}
	if tbl.Header[0] != "Site" || tbl.Rows[0].Values[0] != 2 {
		t.Errorf("csv table = %+v", tbl)
	}

	tsvPath := filepath.Join(dir, "input.tsv")
	if err := os.WriteFile(tsvPath, []byte("Site\ts1\nA_S1\t2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(tsvPath, 0); err != nil {
		t.Errorf("ReadFile(tsv) error: %v", err)
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.tsv"), 0); err == nil {
		t.Error("expected error for missing file")
	}
}
