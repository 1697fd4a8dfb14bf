// Package ingest provides CSV loading and schema validation for the four
// source tables that feed an ingredient report: ingredient info, received
// stock, usage, and waste. This package has no HTTP dependencies and can be
// driven by any frontend.
package ingest

import "github.com/shopspring/decimal"

// Canonical column names shared by the source schemas. These strings match
// the CSV headers users upload and the column names exposed by reports.
const (
	ColIngredient  = "Ingredient"
	ColUnitCost    = "Unit Cost"
	ColReceivedQty = "Received Qty"
	ColUsedQty     = "Used Qty"
	ColWastedQty   = "Wasted Qty"
)

// SourceKind identifies one of the four fixed input tables.
type SourceKind string

const (
	SourceIngredientInfo SourceKind = "ingredient_info"
	SourceStock          SourceKind = "stock"
	SourceUsage          SourceKind = "usage"
	SourceWaste          SourceKind = "waste"
)

// SourceSpec defines the expected shape of a source table.
type SourceSpec struct {
	Kind        SourceKind
	Label       string // Human-readable name used in error messages
	ValueColumn string // The numeric column joined into the report
}

// specs holds the four fixed source schemas. Every source carries an
// Ingredient key column plus exactly one numeric value column.
var specs = map[SourceKind]SourceSpec{
	SourceIngredientInfo: {Kind: SourceIngredientInfo, Label: "Ingredient Info CSV", ValueColumn: ColUnitCost},
	SourceStock:          {Kind: SourceStock, Label: "Stock CSV", ValueColumn: ColReceivedQty},
	SourceUsage:          {Kind: SourceUsage, Label: "Usage CSV", ValueColumn: ColUsedQty},
	SourceWaste:          {Kind: SourceWaste, Label: "Waste CSV", ValueColumn: ColWastedQty},
}

// Spec returns the schema for a source kind. The bool is false for an
// unknown kind.
func Spec(kind SourceKind) (SourceSpec, bool) {
	s, ok := specs[kind]
	return s, ok
}

// Kinds returns the four source kinds in pipeline order.
func Kinds() []SourceKind {
	return []SourceKind{SourceIngredientInfo, SourceStock, SourceUsage, SourceWaste}
}

// RequiredColumns returns the required column set for the spec, key first.
func (s SourceSpec) RequiredColumns() []string {
	return []string{ColIngredient, s.ValueColumn}
}

// Record is one validated row of a source table. The ingredient key is
// normalized (trimmed, title-cased) and the value is an exact decimal.
type Record struct {
	Ingredient string
	Value      decimal.Decimal
}

// Table is a validated source table ready for reconciliation. Records keep
// the file's row order; ingredient keys are unique within the table.
type Table struct {
	Kind    SourceKind
	Records []Record
}

// Lookup returns the table's records as a map keyed by ingredient.
func (t Table) Lookup() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(t.Records))
	for _, r := range t.Records {
		m[r.Ingredient] = r.Value
	}
	return m
}
