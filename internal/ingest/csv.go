package ingest

// csv.go reads raw CSV input into an untyped RawTable. Parsing is kept
// separate from validation so the validator can report problems in terms of
// the original row numbers users see in their spreadsheet program.

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// RawTable holds a parsed but unvalidated CSV file.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// HeaderIndex maps column names (lowercase) to their position in a row.
type HeaderIndex map[string]int

// ReadTable parses CSV data into a RawTable. Records may have varying
// lengths; short rows are tolerated here and handled during validation.
func ReadTable(r io.Reader) (RawTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return RawTable{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return RawTable{}, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = CleanCell(h)
	}
	// Strip a UTF-8 BOM left by Excel exports.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	return RawTable{Header: header, Rows: records[1:]}, nil
}

// MakeHeaderIndex creates a HeaderIndex from a header row.
// Keys are lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		idx[strings.ToLower(CleanCell(h))] = i
	}
	return idx
}

// CleanCell removes common CSV artifacts from a cell value:
//   - Trims whitespace
//   - Removes Excel formula prefix (="...")
//   - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)

	return s
}

// cell returns the cleaned value at pos for row, or "" when the row is
// shorter than the header.
func cell(row []string, pos int) string {
	if pos < 0 || pos >= len(row) {
		return ""
	}
	return CleanCell(row[pos])
}
