package report

// query.go answers read-only questions over a derived table: named filters,
// stable sorting by any canonical column, whole-table summary statistics,
// alerts, and insight strings. Every operation returns a new table or fresh
// values; the input table is never mutated.

import (
	"fmt"
	"sort"
	"strings"

	"github.com/restopsdev/platewatch/internal/ingest"
	"github.com/shopspring/decimal"
)

// FilterName selects one of the fixed row predicates.
type FilterName string

const (
	FilterAll               FilterName = "all"
	FilterHighShrinkage     FilterName = "high_shrinkage"
	FilterHighWaste         FilterName = "high_waste"
	FilterMissingStock      FilterName = "missing_stock"
	FilterNegativeShrinkage FilterName = "negative_shrinkage"
)

// UnknownFilterError reports a filter name outside the fixed set.
type UnknownFilterError struct {
	Name string
}

func (e *UnknownFilterError) Error() string {
	return fmt.Sprintf("unknown filter %q", e.Name)
}

// ApplyFilter returns the subset of rows matching the named filter, in the
// input's row order. The empty name and FilterAll return the table as-is.
func ApplyFilter(t Table, name FilterName, th Thresholds) (Table, error) {
	var pred func(Row) bool
	switch name {
	case "", FilterAll:
		return t.clone(), nil
	case FilterHighShrinkage:
		pred = func(r Row) bool { return r.ShrinkageCost.GreaterThan(th.HighShrinkageCost) }
	case FilterHighWaste:
		pred = func(r Row) bool { return r.WastePct.GreaterThan(th.HighWastePct) }
	case FilterMissingStock:
		pred = func(r Row) bool { return r.ReceivedQty.IsZero() }
	case FilterNegativeShrinkage:
		pred = func(r Row) bool { return r.ShrinkageQty.IsNegative() }
	default:
		return Table{}, &UnknownFilterError{Name: string(name)}
	}

	out := Table{Rows: make([]Row, 0, len(t.Rows))}
	for _, r := range t.Rows {
		if pred(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out, nil
}

// UnknownSortColumnError reports a sort column outside the canonical set.
type UnknownSortColumnError struct {
	Column string
}

func (e *UnknownSortColumnError) Error() string {
	return fmt.Sprintf("unknown sort column %q", e.Column)
}

// SortTable returns a new table sorted by the named column. The sort is
// stable, so rows that compare equal keep their relative order. Order is
// "asc" or "desc"; anything else defaults to descending, matching how the
// report is usually read (biggest costs first).
func SortTable(t Table, column, order string) (Table, error) {
	key, err := sortKey(column)
	if err != nil {
		return Table{}, err
	}
	asc := strings.EqualFold(order, "asc")

	out := t.clone()
	sort.SliceStable(out.Rows, func(i, j int) bool {
		c := key(out.Rows[i], out.Rows[j])
		if asc {
			return c < 0
		}
		return c > 0
	})
	return out, nil
}

// sortKey returns a three-way comparison for the named column.
func sortKey(column string) (func(a, b Row) int, error) {
	numeric := func(get func(Row) decimal.Decimal) func(a, b Row) int {
		return func(a, b Row) int { return get(a).Cmp(get(b)) }
	}

	switch column {
	case ingest.ColIngredient:
		return func(a, b Row) int { return strings.Compare(a.Ingredient, b.Ingredient) }, nil
	case ingest.ColUnitCost:
		return numeric(func(r Row) decimal.Decimal { return r.UnitCost }), nil
	case ingest.ColReceivedQty:
		return numeric(func(r Row) decimal.Decimal { return r.ReceivedQty }), nil
	case ingest.ColUsedQty:
		return numeric(func(r Row) decimal.Decimal { return r.UsedQty }), nil
	case ingest.ColWastedQty:
		return numeric(func(r Row) decimal.Decimal { return r.WastedQty }), nil
	case ColExpectedUse:
		return numeric(func(r Row) decimal.Decimal { return r.ExpectedUse }), nil
	case ColShrinkageQty:
		return numeric(func(r Row) decimal.Decimal { return r.ShrinkageQty }), nil
	case ColUsedCost:
		return numeric(func(r Row) decimal.Decimal { return r.UsedCost }), nil
	case ColWasteCost:
		return numeric(func(r Row) decimal.Decimal { return r.WasteCost }), nil
	case ColShrinkageCost:
		return numeric(func(r Row) decimal.Decimal { return r.ShrinkageCost }), nil
	case ColTotalCost:
		return numeric(func(r Row) decimal.Decimal { return r.TotalCost }), nil
	case ColWastePct:
		return numeric(func(r Row) decimal.Decimal { return r.WastePct }), nil
	case ColShrinkagePct:
		return numeric(func(r Row) decimal.Decimal { return r.ShrinkagePct }), nil
	default:
		return nil, &UnknownSortColumnError{Column: column}
	}
}

// Summarize computes whole-table aggregates. Averages over an empty table
// are zero.
func Summarize(t Table, th Thresholds) SummaryStats {
	stats := SummaryStats{TotalItems: len(t.Rows)}

	var wasteSum, shrinkSum decimal.Decimal
	for _, r := range t.Rows {
		stats.TotalCost = stats.TotalCost.Add(r.TotalCost)
		stats.TotalUsedCost = stats.TotalUsedCost.Add(r.UsedCost)
		stats.TotalWasteCost = stats.TotalWasteCost.Add(r.WasteCost)
		stats.TotalShrinkageCost = stats.TotalShrinkageCost.Add(r.ShrinkageCost)
		wasteSum = wasteSum.Add(r.WastePct)
		shrinkSum = shrinkSum.Add(r.ShrinkagePct)

		if r.ShrinkageCost.GreaterThan(th.HighShrinkageCost) {
			stats.HighShrinkageItems++
		}
		if r.ReceivedQty.IsZero() {
			stats.MissingStockItems++
		}
	}

	if n := len(t.Rows); n > 0 {
		count := decimal.NewFromInt(int64(n))
		stats.AvgWastePct = wasteSum.Div(count)
		stats.AvgShrinkagePct = shrinkSum.Div(count)
	}

	return stats
}

// BuildAlerts generates alerts in a fixed order: critical shrinkage first,
// then waste warnings, then missing stock. Within each category, alerts
// follow table row order.
func BuildAlerts(t Table, th Thresholds) []Alert {
	var alerts []Alert

	for _, r := range t.Rows {
		if r.ShrinkageCost.GreaterThan(th.CriticalShrinkageCost) {
			alerts = append(alerts, Alert{
				Kind:       AlertHighShrinkage,
				Severity:   SeverityCritical,
				Ingredient: r.Ingredient,
				Message: fmt.Sprintf("Critical shrinkage: %s has $%s in missing inventory",
					r.Ingredient, r.ShrinkageCost.StringFixed(2)),
				Value: r.ShrinkageCost,
			})
		}
	}

	for _, r := range t.Rows {
		if r.WastePct.GreaterThan(th.AlertWastePct) {
			alerts = append(alerts, Alert{
				Kind:       AlertHighWaste,
				Severity:   SeverityWarning,
				Ingredient: r.Ingredient,
				Message: fmt.Sprintf("High waste: %s has %s%% waste rate",
					r.Ingredient, r.WastePct.StringFixed(1)),
				Value: r.WastePct,
			})
		}
	}

	for _, r := range t.Rows {
		if r.ReceivedQty.IsZero() {
			alerts = append(alerts, Alert{
				Kind:       AlertMissingStock,
				Severity:   SeverityWarning,
				Ingredient: r.Ingredient,
				Message:    fmt.Sprintf("No stock received for %s but usage/waste recorded", r.Ingredient),
				Value:      decimal.Zero,
			})
		}
	}

	return alerts
}

// BuildInsights generates report-level observations in a fixed order:
// the top three total-cost contributors with their share, a mean-waste
// note, a total-shrinkage note, and an efficiency count.
func BuildInsights(t Table, th Thresholds) []string {
	var insights []string

	stats := Summarize(t, th)

	// Top contributors. Shares are meaningless against a zero total, so
	// that case is skipped rather than divided.
	if stats.TotalCost.IsPositive() {
		top := t.clone()
		sort.SliceStable(top.Rows, func(i, j int) bool {
			return top.Rows[i].TotalCost.GreaterThan(top.Rows[j].TotalCost)
		})
		limit := 3
		if len(top.Rows) < limit {
			limit = len(top.Rows)
		}
		for _, r := range top.Rows[:limit] {
			share := r.TotalCost.Div(stats.TotalCost).Mul(hundred)
			insights = append(insights, fmt.Sprintf("%s accounts for %s%% of total costs ($%s)",
				r.Ingredient, share.StringFixed(1), r.TotalCost.StringFixed(2)))
		}
	}

	if stats.AvgWastePct.GreaterThan(th.AvgWasteNotePct) {
		insights = append(insights, fmt.Sprintf(
			"Average waste rate of %s%% is above recommended %s%% threshold",
			stats.AvgWastePct.StringFixed(1), th.AvgWasteNotePct.String()))
	}

	if stats.TotalShrinkageCost.GreaterThan(th.ShrinkageNoteCost) {
		insights = append(insights, fmt.Sprintf(
			"Total shrinkage cost of $%s indicates potential theft or inventory management issues",
			stats.TotalShrinkageCost.StringFixed(2)))
	}

	efficient := 0
	for _, r := range t.Rows {
		if r.WastePct.LessThan(th.EfficientPct) && r.ShrinkagePct.Abs().LessThan(th.EfficientPct) {
			efficient++
		}
	}
	if efficient > 0 {
		insights = append(insights, fmt.Sprintf(
			"%d ingredients show excellent inventory management with low waste and shrinkage", efficient))
	}

	return insights
}
