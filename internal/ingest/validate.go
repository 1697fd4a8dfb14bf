package ingest

// validate.go checks a RawTable against its source schema before any
// processing happens.
//
// Validation happens at two levels:
//  1. Shape: required columns present, at least one data row, no duplicate
//     ingredient keys after normalization.
//  2. Cells: every value in the required numeric column must coerce to a
//     decimal; negative values and unexpected columns are reported as
//     warnings but do not block the run.

import (
	"sort"
	"strings"
)

// Validate checks raw against the schema for spec and returns the typed
// source table plus any non-fatal warnings. The error, when non-nil, is a
// *SchemaError or *DataQualityError describing what the user must fix.
func Validate(raw RawTable, spec SourceSpec) (Table, []Warning, error) {
	idx := MakeHeaderIndex(raw.Header)

	// Check 1: required columns.
	var missing []string
	for _, col := range spec.RequiredColumns() {
		if _, ok := idx[strings.ToLower(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return Table{}, nil, &SchemaError{Source: spec.Label, Kind: SchemaMissingColumns, Columns: missing}
	}

	keyPos := idx[strings.ToLower(ColIngredient)]
	valPos := idx[strings.ToLower(spec.ValueColumn)]

	// Check 2: at least one data row. Fully blank lines are not data.
	type dataRow struct {
		line       int // file line number, header is line 1
		ingredient string
		rawValue   string
	}
	var rows []dataRow
	for i, row := range raw.Rows {
		if isBlankRow(row) {
			continue
		}
		rows = append(rows, dataRow{
			line:       i + 2,
			ingredient: NormalizeIngredient(cell(row, keyPos)),
			rawValue:   cell(row, valPos),
		})
	}
	if len(rows) == 0 {
		return Table{}, nil, &SchemaError{Source: spec.Label, Kind: SchemaEmptyTable}
	}

	// Check 3: duplicate ingredient keys (post-normalization). Duplicates
	// are an input error, never merged.
	seen := make(map[string]bool, len(rows))
	var dupes []string
	dupeSeen := make(map[string]bool)
	for _, r := range rows {
		if seen[r.ingredient] && !dupeSeen[r.ingredient] {
			dupes = append(dupes, r.ingredient)
			dupeSeen[r.ingredient] = true
		}
		seen[r.ingredient] = true
	}
	if len(dupes) > 0 {
		return Table{}, nil, &SchemaError{Source: spec.Label, Kind: SchemaDuplicateKey, Keys: dupes}
	}

	// Check 4: numeric coercion of the value column. Collect every bad cell
	// so the user can fix the file in one pass.
	var warnings []Warning
	var badLines, negativeLines []int
	records := make([]Record, 0, len(rows))
	for _, r := range rows {
		v, ok := ParseQuantity(r.rawValue)
		if !ok {
			badLines = append(badLines, r.line)
			continue
		}
		if v.IsNegative() {
			negativeLines = append(negativeLines, r.line)
		}
		records = append(records, Record{Ingredient: r.ingredient, Value: v})
	}
	if len(badLines) > 0 {
		return Table{}, nil, &DataQualityError{Source: spec.Label, Column: spec.ValueColumn, Lines: badLines}
	}

	// Non-fatal: negative quantities are unusual but not invalid.
	if len(negativeLines) > 0 {
		warnings = append(warnings, Warning{
			Source: spec.Label,
			Kind:   WarnNegativeValue,
			Column: spec.ValueColumn,
			Lines:  negativeLines,
		})
	}

	// Non-fatal: columns outside the required set are likely typos or
	// leftover spreadsheet data.
	if extra := extraColumns(raw.Header, spec.RequiredColumns()); len(extra) > 0 {
		warnings = append(warnings, Warning{
			Source:  spec.Label,
			Kind:    WarnUnexpectedColumn,
			Columns: extra,
		})
	}

	return Table{Kind: spec.Kind, Records: records}, warnings, nil
}

// extraColumns returns header columns outside the required set, sorted for
// stable messages.
func extraColumns(header, required []string) []string {
	want := make(map[string]bool, len(required))
	for _, c := range required {
		want[strings.ToLower(c)] = true
	}
	var extra []string
	for _, h := range header {
		h = CleanCell(h)
		if h == "" {
			continue
		}
		if !want[strings.ToLower(h)] {
			extra = append(extra, h)
		}
	}
	sort.Strings(extra)
	return extra
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
