package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

// metricsTable builds a small derived table covering every filter case.
func metricsTable() Table {
	return ComputeMetrics(Table{Rows: []Row{
		// Shrinkage 6 * 11.50 = $69: high and critical.
		{Ingredient: "Salmon", UnitCost: dec("11.50"), ReceivedQty: dec("20"), UsedQty: dec("12"), WastedQty: dec("2")},
		// Waste 4/20 = 20%: high waste, above the 15% alert line.
		{Ingredient: "Basil", UnitCost: dec("0.50"), ReceivedQty: dec("20"), UsedQty: dec("14"), WastedQty: dec("4")},
		// No stock received, activity recorded: missing stock, negative shrinkage.
		{Ingredient: "Lemons", UsedQty: dec("3"), WastedQty: dec("1"), MissingFromInfo: true},
		// Clean row: 2% waste, zero shrinkage.
		{Ingredient: "Onions", UnitCost: dec("1.25"), ReceivedQty: dec("50"), UsedQty: dec("49"), WastedQty: dec("1")},
	}})
}

func TestApplyFilter(t *testing.T) {
	table := metricsTable()
	th := DefaultThresholds()

	tests := []struct {
		name FilterName
		want []string
	}{
		{FilterAll, []string{"Salmon", "Basil", "Lemons", "Onions"}},
		{FilterHighShrinkage, []string{"Salmon"}},
		{FilterHighWaste, []string{"Salmon", "Basil"}},
		{FilterMissingStock, []string{"Lemons"}},
		{FilterNegativeShrinkage, []string{"Lemons"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			got, err := ApplyFilter(table, tt.name, th)
			if err != nil {
				t.Fatalf("ApplyFilter returned error: %v", err)
			}
			if got.Len() != len(tt.want) {
				t.Fatalf("expected %d rows, got %d", len(tt.want), got.Len())
			}
			for i, want := range tt.want {
				if got.Rows[i].Ingredient != want {
					t.Errorf("row %d: expected %s, got %s", i, want, got.Rows[i].Ingredient)
				}
			}
		})
	}
}

func TestApplyFilter_EmptyNameIsAll(t *testing.T) {
	table := metricsTable()

	got, err := ApplyFilter(table, "", DefaultThresholds())
	if err != nil {
		t.Fatalf("ApplyFilter returned error: %v", err)
	}
	if got.Len() != table.Len() {
		t.Errorf("empty filter name must return all rows, got %d of %d", got.Len(), table.Len())
	}
}

func TestApplyFilter_MissingStockOrderPreserved(t *testing.T) {
	// Ten rows, exactly two without received stock, not adjacent.
	rows := make([]Row, 10)
	for i := range rows {
		rows[i] = Row{
			Ingredient:  string(rune('A' + i)),
			UnitCost:    dec("1"),
			ReceivedQty: dec("10"),
			UsedQty:     dec("8"),
		}
	}
	rows[3].ReceivedQty = decimal.Zero
	rows[7].ReceivedQty = decimal.Zero
	table := ComputeMetrics(Table{Rows: rows})

	got, err := ApplyFilter(table, FilterMissingStock, DefaultThresholds())
	if err != nil {
		t.Fatalf("ApplyFilter returned error: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("expected exactly 2 rows, got %d", got.Len())
	}
	if got.Rows[0].Ingredient != "D" || got.Rows[1].Ingredient != "H" {
		t.Errorf("expected input order [D H], got [%s %s]",
			got.Rows[0].Ingredient, got.Rows[1].Ingredient)
	}
}

func TestApplyFilter_Unknown(t *testing.T) {
	_, err := ApplyFilter(metricsTable(), "bogus", DefaultThresholds())

	var filterErr *UnknownFilterError
	if !errors.As(err, &filterErr) {
		t.Fatalf("expected *UnknownFilterError, got %v", err)
	}
	if filterErr.Name != "bogus" {
		t.Errorf("expected name bogus, got %q", filterErr.Name)
	}
}

func TestSortTable(t *testing.T) {
	table := metricsTable()

	desc, err := SortTable(table, ColTotalCost, "desc")
	if err != nil {
		t.Fatalf("SortTable returned error: %v", err)
	}
	if desc.Rows[0].Ingredient != "Salmon" {
		t.Errorf("desc sort: expected Salmon first, got %s", desc.Rows[0].Ingredient)
	}
	for i := 1; i < desc.Len(); i++ {
		if desc.Rows[i].TotalCost.GreaterThan(desc.Rows[i-1].TotalCost) {
			t.Errorf("desc sort: row %d out of order", i)
		}
	}

	asc, err := SortTable(table, "Ingredient", "asc")
	if err != nil {
		t.Fatalf("SortTable returned error: %v", err)
	}
	for i := 1; i < asc.Len(); i++ {
		if strings.Compare(asc.Rows[i-1].Ingredient, asc.Rows[i].Ingredient) > 0 {
			t.Errorf("asc sort: row %d out of order", i)
		}
	}

	// Input must be untouched.
	if table.Rows[0].Ingredient != "Salmon" {
		t.Error("SortTable mutated its input")
	}
}

func TestSortTable_StableOnTies(t *testing.T) {
	table := ComputeMetrics(Table{Rows: []Row{
		{Ingredient: "A", UnitCost: dec("1"), ReceivedQty: dec("10"), UsedQty: dec("10")},
		{Ingredient: "B", UnitCost: dec("1"), ReceivedQty: dec("10"), UsedQty: dec("10")},
		{Ingredient: "C", UnitCost: dec("1"), ReceivedQty: dec("10"), UsedQty: dec("10")},
	}})

	sorted, err := SortTable(table, ColTotalCost, "desc")
	if err != nil {
		t.Fatalf("SortTable returned error: %v", err)
	}
	for i, want := range []string{"A", "B", "C"} {
		if sorted.Rows[i].Ingredient != want {
			t.Errorf("tied rows must keep input order: row %d = %s, want %s",
				i, sorted.Rows[i].Ingredient, want)
		}
	}
}

func TestSortTable_UnknownColumn(t *testing.T) {
	_, err := SortTable(metricsTable(), "Profit", "asc")

	var sortErr *UnknownSortColumnError
	if !errors.As(err, &sortErr) {
		t.Fatalf("expected *UnknownSortColumnError, got %v", err)
	}
	if sortErr.Column != "Profit" {
		t.Errorf("expected column Profit, got %q", sortErr.Column)
	}
}

func TestSummarize(t *testing.T) {
	table := metricsTable()
	stats := Summarize(table, DefaultThresholds())

	if stats.TotalItems != 4 {
		t.Errorf("total items = %d, want 4", stats.TotalItems)
	}

	var wantTotal decimal.Decimal
	for _, r := range table.Rows {
		wantTotal = wantTotal.Add(r.TotalCost)
	}
	if !stats.TotalCost.Equal(wantTotal) {
		t.Errorf("total cost = %s, want %s", stats.TotalCost, wantTotal)
	}

	if stats.HighShrinkageItems != 1 {
		t.Errorf("high shrinkage items = %d, want 1 (Salmon)", stats.HighShrinkageItems)
	}
	if stats.MissingStockItems != 1 {
		t.Errorf("missing stock items = %d, want 1 (Lemons)", stats.MissingStockItems)
	}
}

func TestSummarize_Empty(t *testing.T) {
	stats := Summarize(Table{}, DefaultThresholds())

	if stats.TotalItems != 0 {
		t.Errorf("total items = %d, want 0", stats.TotalItems)
	}
	if !stats.AvgWastePct.IsZero() || !stats.AvgShrinkagePct.IsZero() {
		t.Errorf("averages over an empty table must be zero, got waste=%s shrinkage=%s",
			stats.AvgWastePct, stats.AvgShrinkagePct)
	}
}

func TestBuildAlerts(t *testing.T) {
	alerts := BuildAlerts(metricsTable(), DefaultThresholds())

	if len(alerts) != 3 {
		t.Fatalf("expected 3 alerts, got %d: %v", len(alerts), alerts)
	}

	// Fixed category order: critical shrinkage, waste, missing stock.
	if alerts[0].Kind != AlertHighShrinkage || alerts[0].Severity != SeverityCritical {
		t.Errorf("alert 0: expected critical shrinkage, got %+v", alerts[0])
	}
	if alerts[0].Ingredient != "Salmon" {
		t.Errorf("alert 0: expected Salmon, got %s", alerts[0].Ingredient)
	}
	if alerts[0].Message != "Critical shrinkage: Salmon has $69.00 in missing inventory" {
		t.Errorf("alert 0: unexpected message %q", alerts[0].Message)
	}

	if alerts[1].Kind != AlertHighWaste || alerts[1].Ingredient != "Basil" {
		t.Errorf("alert 1: expected Basil waste alert, got %+v", alerts[1])
	}
	if alerts[1].Message != "High waste: Basil has 20.0% waste rate" {
		t.Errorf("alert 1: unexpected message %q", alerts[1].Message)
	}

	if alerts[2].Kind != AlertMissingStock || alerts[2].Ingredient != "Lemons" {
		t.Errorf("alert 2: expected Lemons missing stock, got %+v", alerts[2])
	}
	if alerts[2].Severity != SeverityWarning {
		t.Errorf("alert 2: expected warning severity, got %s", alerts[2].Severity)
	}
}

func TestBuildInsights(t *testing.T) {
	insights := BuildInsights(metricsTable(), DefaultThresholds())

	if len(insights) == 0 {
		t.Fatal("expected insights for a table with costs")
	}

	// Salmon has the biggest total cost and must lead the contributor list.
	if !strings.Contains(insights[0], "Salmon") || !strings.Contains(insights[0], "of total costs") {
		t.Errorf("insight 0: expected top contributor note, got %q", insights[0])
	}

	// Onions (2% waste, 0% shrinkage) and Lemons (zero received, so both
	// percentages are 0) count as efficient.
	found := false
	for _, s := range insights {
		if strings.Contains(s, "excellent inventory management") {
			found = true
			if !strings.HasPrefix(s, "2 ") {
				t.Errorf("expected 2 efficient ingredients, got %q", s)
			}
		}
	}
	if !found {
		t.Error("expected an efficiency insight")
	}
}

func TestBuildInsights_ZeroTotalCost(t *testing.T) {
	table := ComputeMetrics(Table{Rows: []Row{
		{Ingredient: "Water", UnitCost: decimal.Zero, ReceivedQty: dec("10"), UsedQty: dec("10")},
	}})

	insights := BuildInsights(table, DefaultThresholds())
	for _, s := range insights {
		if strings.Contains(s, "of total costs") {
			t.Errorf("contributor shares must be skipped at zero total cost, got %q", s)
		}
	}
}
