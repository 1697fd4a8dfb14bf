// Package report implements the data reconciliation and metrics engine: it
// joins the four validated source tables on the ingredient key, derives
// cost and shrinkage metrics per ingredient, and answers filter, sort,
// summary, alert, and insight queries over the result.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/restopsdev/platewatch/internal/ingest"
	"github.com/shopspring/decimal"
)

// Canonical derived column names. Base column names come from ingest.
const (
	ColExpectedUse   = "Expected Use"
	ColShrinkageQty  = "Shrinkage"
	ColUsedCost      = "Used Cost"
	ColWasteCost     = "Waste Cost"
	ColShrinkageCost = "Shrinkage Cost"
	ColTotalCost     = "Total Cost"
	ColWastePct      = "Waste %"
	ColShrinkagePct  = "Shrinkage %"
)

// Columns lists every report column in canonical order.
var Columns = []string{
	ingest.ColIngredient,
	ingest.ColUnitCost,
	ingest.ColReceivedQty,
	ingest.ColUsedQty,
	ingest.ColWastedQty,
	ColExpectedUse,
	ColShrinkageQty,
	ColUsedCost,
	ColWasteCost,
	ColShrinkageCost,
	ColTotalCost,
	ColWastePct,
	ColShrinkagePct,
}

// Row is one reconciled ingredient with its derived metrics. All numeric
// fields are exact decimals; rounding happens only when a row is rendered
// into records or exports.
type Row struct {
	Ingredient  string          `json:"ingredient"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	ReceivedQty decimal.Decimal `json:"received_qty"`
	UsedQty     decimal.Decimal `json:"used_qty"`
	WastedQty   decimal.Decimal `json:"wasted_qty"`

	ExpectedUse   decimal.Decimal `json:"expected_use"`
	ShrinkageQty  decimal.Decimal `json:"shrinkage_qty"`
	UsedCost      decimal.Decimal `json:"used_cost"`
	WasteCost     decimal.Decimal `json:"waste_cost"`
	ShrinkageCost decimal.Decimal `json:"shrinkage_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	WastePct      decimal.Decimal `json:"waste_pct"`
	ShrinkagePct  decimal.Decimal `json:"shrinkage_pct"`

	// MissingFromInfo marks placeholder rows added during reconciliation
	// for ingredients that had activity but no entry in the info table.
	MissingFromInfo bool `json:"missing_from_info,omitempty"`
}

// Table is an immutable set of reconciled rows. Query operations return new
// tables; they never mutate the receiver.
type Table struct {
	Rows []Row `json:"rows"`
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// clone returns a copy of the table's row slice so query operations can
// reorder or trim without touching the original.
func (t Table) clone() Table {
	rows := make([]Row, len(t.Rows))
	copy(rows, t.Rows)
	return Table{Rows: rows}
}

// Notice is an informational reconciliation message. The run continues;
// the listed ingredients get zero-cost placeholder rows.
type Notice struct {
	MissingFromInfo []string `json:"missing_from_info"`
}

func (n Notice) String() string {
	return "ingredients found in stock, usage, or waste but missing from ingredient info: " +
		strings.Join(n.MissingFromInfo, ", ")
}

// SummaryStats aggregates a whole table.
type SummaryStats struct {
	TotalItems         int             `json:"total_ingredients"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	TotalUsedCost      decimal.Decimal `json:"total_used_cost"`
	TotalWasteCost     decimal.Decimal `json:"total_waste_cost"`
	TotalShrinkageCost decimal.Decimal `json:"total_shrinkage_cost"`
	AvgWastePct        decimal.Decimal `json:"avg_waste_percentage"`
	AvgShrinkagePct    decimal.Decimal `json:"avg_shrinkage_percentage"`
	HighShrinkageItems int             `json:"high_shrinkage_items"`
	MissingStockItems  int             `json:"missing_stock_items"`
}

// AlertKind identifies what triggered an alert.
type AlertKind string

const (
	AlertHighShrinkage AlertKind = "high_shrinkage"
	AlertHighWaste     AlertKind = "high_waste"
	AlertMissingStock  AlertKind = "missing_stock"
)

// Severity ranks an alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// Alert flags a problematic ingredient. Alerts are generated on demand and
// never persisted.
type Alert struct {
	Kind       AlertKind       `json:"type"`
	Severity   Severity        `json:"severity"`
	Ingredient string          `json:"ingredient"`
	Message    string          `json:"message"`
	Value      decimal.Decimal `json:"value"`
}

// Report is the result of one processing run: the derived table plus the
// validation warnings and reconciliation notices collected along the way.
// A report is immutable once produced; a new run fully replaces it.
type Report struct {
	Table       Table     `json:"table"`
	Warnings    []string  `json:"warnings,omitempty"`
	Notices     []Notice  `json:"notices,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ProcessingError reports an unexpected failure during reconciliation or
// metrics derivation. The caller receives an empty result, never a partial
// table; the run is recoverable by re-uploading corrected input.
type ProcessingError struct {
	Stage string
	Err   error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing failed during %s: %v", e.Stage, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }
