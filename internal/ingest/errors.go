package ingest

// errors.go defines the validation error taxonomy. Schema and data-quality
// problems are fatal for the offending source table and carry enough detail
// (which file, which column, which rows) for the user to fix the upload.
// Warnings never block a run.

import (
	"fmt"
	"strings"
)

// SchemaErrorKind classifies structural problems with a source table.
type SchemaErrorKind string

const (
	SchemaMissingColumns SchemaErrorKind = "missing_columns"
	SchemaEmptyTable     SchemaErrorKind = "empty_table"
	SchemaDuplicateKey   SchemaErrorKind = "duplicate_key"
)

// SchemaError reports a structural problem that fails the run. The user
// must fix the file and re-upload.
type SchemaError struct {
	Source  string          // Human-readable source label, e.g. "Stock CSV"
	Kind    SchemaErrorKind
	Columns []string // Missing columns, for SchemaMissingColumns
	Keys    []string // Repeated ingredient keys, for SchemaDuplicateKey
}

func (e *SchemaError) Error() string {
	switch e.Kind {
	case SchemaMissingColumns:
		return fmt.Sprintf("%s is missing required columns: %s", e.Source, strings.Join(e.Columns, ", "))
	case SchemaEmptyTable:
		return fmt.Sprintf("%s is empty; provide a CSV file with data rows", e.Source)
	case SchemaDuplicateKey:
		return fmt.Sprintf("%s contains duplicate ingredients: %s", e.Source, strings.Join(e.Keys, ", "))
	default:
		return fmt.Sprintf("%s failed schema validation", e.Source)
	}
}

// DataQualityError reports non-numeric values in a numeric column. Fatal
// for the run, like a SchemaError, but distinct so callers can point users
// at specific cells rather than the file shape.
type DataQualityError struct {
	Source string
	Column string
	Lines  []int // File line numbers (header is line 1)
}

func (e *DataQualityError) Error() string {
	return fmt.Sprintf("%s has non-numeric values in column %q at lines %s",
		e.Source, e.Column, joinInts(e.Lines))
}

// WarningKind classifies non-fatal data observations.
type WarningKind string

const (
	WarnNegativeValue    WarningKind = "negative_value"
	WarnUnexpectedColumn WarningKind = "unexpected_column"
)

// Warning is a non-fatal data quality note. The run continues; warnings are
// logged and surfaced alongside the report.
type Warning struct {
	Source  string
	Kind    WarningKind
	Column  string   // Offending column, for WarnNegativeValue
	Lines   []int    // File line numbers, for WarnNegativeValue
	Columns []string // Unexpected columns, for WarnUnexpectedColumn
}

// String renders the warning as a user-facing message.
func (w Warning) String() string {
	switch w.Kind {
	case WarnNegativeValue:
		return fmt.Sprintf("%s has negative values in column %q at lines %s",
			w.Source, w.Column, joinInts(w.Lines))
	case WarnUnexpectedColumn:
		return fmt.Sprintf("%s has unexpected columns: %s", w.Source, strings.Join(w.Columns, ", "))
	default:
		return fmt.Sprintf("%s has a data quality warning", w.Source)
	}
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}
