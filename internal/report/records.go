package report

// records.go renders a table as plain, display-rounded records: money to
// two decimal places, percentages to one, quantities as given. This is the
// hand-off format for JSON APIs and for PDF/spreadsheet renderers; internal
// computation always runs on the unrounded table.

import (
	"github.com/restopsdev/platewatch/internal/ingest"
	"github.com/shopspring/decimal"
)

// Record is one flat report row keyed by canonical column name. Iterate
// Columns for a stable column order.
type Record map[string]string

// Records converts a table to display records, one per row, in row order.
func Records(t Table) []Record {
	recs := make([]Record, 0, len(t.Rows))
	for _, r := range t.Rows {
		recs = append(recs, Record{
			ingest.ColIngredient:  r.Ingredient,
			ingest.ColUnitCost:    money(r.UnitCost),
			ingest.ColReceivedQty: quantity(r.ReceivedQty),
			ingest.ColUsedQty:     quantity(r.UsedQty),
			ingest.ColWastedQty:   quantity(r.WastedQty),
			ColExpectedUse:        quantity(r.ExpectedUse),
			ColShrinkageQty:       quantity(r.ShrinkageQty),
			ColUsedCost:           money(r.UsedCost),
			ColWasteCost:          money(r.WasteCost),
			ColShrinkageCost:      money(r.ShrinkageCost),
			ColTotalCost:          money(r.TotalCost),
			ColWastePct:           percent(r.WastePct),
			ColShrinkagePct:       percent(r.ShrinkagePct),
		})
	}
	return recs
}

// money formats a cost with bankers-free half-up rounding to 2 places.
func money(d decimal.Decimal) string { return d.StringFixed(2) }

// percent formats a percentage rounded to 1 place.
func percent(d decimal.Decimal) string { return d.StringFixed(1) }

// quantity formats a quantity without forced padding; exact values pass
// through as entered.
func quantity(d decimal.Decimal) string { return d.String() }
