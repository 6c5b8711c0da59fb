package core

import (
	"fmt"
	"strings"
)

// DataFormatError reports input that cannot be turned into numeric site data:
// an unparseable cell, a missing column, or an empty table.
type DataFormatError struct {
	Row     int // 1-based data row, 0 when not tied to a row
	Column  int // 0-based column index, -1 when not tied to a column
	Value   string
	Message string
}

func (e *DataFormatError) Error() string {
	var loc []string
	if e.Row > 0 {
		loc = append(loc, fmt.Sprintf("row %d", e.Row))
	}
	if e.Column >= 0 {
		loc = append(loc, fmt.Sprintf("column %d", e.Column))
	}
	msg := e.Message
	if e.Value != "" {
		msg = fmt.Sprintf("%s (value %q)", msg, e.Value)
	}
	if len(loc) == 0 {
		return fmt.Sprintf("data format error: %s", msg)
	}
	return fmt.Sprintf("data format error at %s: %s", strings.Join(loc, ", "), msg)
}

// DegenerateStatisticError reports a scoring formula that cannot be evaluated
// for a kinase, e.g. a division by zero.
type DegenerateStatisticError struct {
	Method  string
	Kinase  string
	Column  int // 1-based sample column
	Message string
}

func (e *DegenerateStatisticError) Error() string {
	return fmt.Sprintf("degenerate %s statistic for kinase %s in column %d: %s",
		e.Method, e.Kinase, e.Column, e.Message)
}
