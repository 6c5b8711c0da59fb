// Package sqlite provides SQLite database writing for enrichment results
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ChrisMcGann/KSEA/pkg/enrich"
	"github.com/ChrisMcGann/KSEA/pkg/score"
	_ "github.com/mattn/go-sqlite3"
)

const (
	// Date format for HeaderTable (ISO 8601)
	headerDateFormat = "2006-01-02"
	schemaVersion    = 1
)

// Writer handles writing enrichment results to SQLite database files
type Writer struct {
	db         *sql.DB
	outputPath string
	scoreStmt  *sql.Stmt
	linkStmt   *sql.Stmt
	heatStmt   *sql.Stmt
	scoreID    int
	linkID     int

	method   score.Method
	mode     enrich.Mode
	database string
	samples  []string
}

// NewWriter creates a new SQLite writer
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
		scoreID:    1,
		linkID:     1,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ScoreTable (
		ScoreId INTEGER PRIMARY KEY,
		Kinase TEXT NOT NULL,
		Sample TEXT,
		ColumnIndex INTEGER,
		SubCount INTEGER,
		TotalSubCount INTEGER,
		SumValue DOUBLE,
		MeanValue DOUBLE,
		Score DOUBLE,
		PValue DOUBLE,
		LogP DOUBLE,
		Significance TEXT
	);

	CREATE TABLE IF NOT EXISTS LinkTable (
		LinkId INTEGER PRIMARY KEY,
		Kinase TEXT NOT NULL,
		Site TEXT NOT NULL,
		Sequence TEXT,
		Source TEXT,
		blobValues BLOB
	);

	CREATE TABLE IF NOT EXISTS HeatmapTable (
		RowIndex INTEGER PRIMARY KEY,
		Kinase TEXT NOT NULL,
		blobValues BLOB,
		blobPValues BLOB
	);

	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		CreationDate TEXT,
		Method TEXT,
		Mode TEXT,
		DatabaseName TEXT,
		Samples TEXT,
		Description TEXT
	);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// prepareStatements prepares SQL statements for batch insertion
func (w *Writer) prepareStatements() error {
	var err error

	w.scoreStmt, err = w.db.Prepare(`
		INSERT INTO ScoreTable (
			ScoreId, Kinase, Sample, ColumnIndex, SubCount, TotalSubCount,
			SumValue, MeanValue, Score, PValue, LogP, Significance
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare score statement: %w", err)
	}

	w.linkStmt, err = w.db.Prepare(`
		INSERT INTO LinkTable (LinkId, Kinase, Site, Sequence, Source, blobValues)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare link statement: %w", err)
	}

	w.heatStmt, err = w.db.Prepare(`
		INSERT INTO HeatmapTable (RowIndex, Kinase, blobValues, blobPValues)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare heatmap statement: %w", err)
	}

	return nil
}

// WriteResult writes every record, link and series row of res
func (w *Writer) WriteResult(res *enrich.Result) error {
	w.method = res.Method
	w.mode = res.Mode
	w.database = res.Database
	w.samples = res.Samples

	for _, rec := range res.Records {
		if err := w.WriteRecord(rec, res.Samples); err != nil {
			return err
		}
	}
	for _, l := range res.Links {
		if err := w.WriteLink(l); err != nil {
			return err
		}
	}
	return w.WriteSeries(&res.Series)
}

// WriteRecord writes one row per sample for a kinase record
func (w *Writer) WriteRecord(rec *enrich.Record, samples []string) error {
	for i, st := range rec.Stats {
		sample := ""
		if i < len(samples) {
			sample = samples[i]
		}

		_, err := w.scoreStmt.Exec(
			w.scoreID,           // ScoreId
			rec.Kinase,          // Kinase
			sample,              // Sample
			i+1,                 // ColumnIndex
			rec.SubCount,        // SubCount
			rec.TotalSubstrates, // TotalSubCount
			nullable(st.Sum),    // SumValue
			nullable(st.Mean),   // MeanValue
			nullable(st.Score),  // Score
			nullable(st.PValue), // PValue
			nullable(st.LogP),   // LogP
			st.Band().String(),  // Significance
		)
		if err != nil {
			return fmt.Errorf("failed to insert score for %s: %w", rec.Kinase, err)
		}
		w.scoreID++
	}
	return nil
}

// WriteLink writes a kinase-substrate pair with its per-sample values
func (w *Writer) WriteLink(l enrich.LinkRow) error {
	_, err := w.linkStmt.Exec(
		w.linkID,
		l.Kinase,
		l.Site,
		l.Sequence,
		l.Source,
		encodeFloat64(l.Values),
	)
	if err != nil {
		return fmt.Errorf("failed to insert link %s/%s: %w", l.Kinase, l.Site, err)
	}

	w.linkID++
	return nil
}

// WriteSeries writes the plotting series, one row per kinase
func (w *Writer) WriteSeries(s *enrich.Series) error {
	for i, kinase := range s.Kinases {
		var pBlob []byte
		if s.PValues != nil {
			pBlob = encodeFloat64(s.PValues[i])
		}
		if _, err := w.heatStmt.Exec(i, kinase, encodeFloat64(s.Values[i]), pBlob); err != nil {
			return fmt.Errorf("failed to insert heatmap row for %s: %w", kinase, err)
		}
	}
	return nil
}

// DecodeFloat64 reverses the blob encoding used for value columns
func DecodeFloat64(blob []byte) []float64 {
	out := make([]float64, len(blob)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return out
}

// encodeFloat64 encodes values as a little-endian float64 blob
func encodeFloat64(values []float64) []byte {
	buf := make([]byte, len(values)*8)
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

// nullable maps NaN to SQL NULL
func nullable(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

// Finalize writes the header table and closes the database
func (w *Writer) Finalize() error {
	now := time.Now().Format(headerDateFormat)
	_, err := w.db.Exec(`
		INSERT INTO HeaderTable (version, CreationDate, Method, Mode, DatabaseName, Samples, Description)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, schemaVersion, now, string(w.method), string(w.mode), w.database, strings.Join(w.samples, "\t"), "kinase-substrate enrichment")
	if err != nil {
		return fmt.Errorf("failed to insert header: %w", err)
	}

	// Close prepared statements
	for _, stmt := range []*sql.Stmt{w.scoreStmt, w.linkStmt, w.heatStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}

	// Close database
	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// Close closes the database connection (alias for Finalize)
func (w *Writer) Close() error {
	return w.Finalize()
}
