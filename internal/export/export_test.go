package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/restopsdev/platewatch/internal/report"
)

func testReport() *report.Report {
	table := report.ComputeMetrics(report.Table{Rows: []report.Row{
		{
			Ingredient:  "Tomatoes",
			UnitCost:    decimal.RequireFromString("2.50"),
			ReceivedQty: decimal.RequireFromString("100"),
			UsedQty:     decimal.RequireFromString("80"),
			WastedQty:   decimal.RequireFromString("5"),
		},
		{
			Ingredient:  "Onions",
			UnitCost:    decimal.RequireFromString("1.25"),
			ReceivedQty: decimal.RequireFromString("50"),
			UsedQty:     decimal.RequireFromString("49"),
			WastedQty:   decimal.RequireFromString("1"),
		},
	}})
	return &report.Report{
		Table:       table,
		GeneratedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestCSVRenderer_Render(t *testing.T) {
	var buf bytes.Buffer
	renderer := CSVRenderer{}

	if err := renderer.Render(&buf, testReport(), report.DefaultThresholds()); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	cr := csv.NewReader(&buf)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		t.Fatalf("rendered CSV does not parse: %v", err)
	}

	// Header row carries the canonical column order.
	if len(rows[0]) != len(report.Columns) {
		t.Fatalf("header has %d columns, want %d", len(rows[0]), len(report.Columns))
	}
	for i, col := range report.Columns {
		if rows[0][i] != col {
			t.Errorf("header column %d = %q, want %q", i, rows[0][i], col)
		}
	}

	// Two data rows with display rounding applied.
	if rows[1][0] != "Tomatoes" || rows[2][0] != "Onions" {
		t.Errorf("unexpected data row order: %q, %q", rows[1][0], rows[2][0])
	}
	if rows[1][1] != "2.50" {
		t.Errorf("unit cost = %q, want 2.50", rows[1][1])
	}
	if rows[1][12] != "15.0" {
		t.Errorf("shrinkage %% = %q, want 15.0", rows[1][12])
	}

	// Footer: totals and generation timestamp.
	joined := make([]string, len(rows))
	for i, r := range rows {
		joined[i] = strings.Join(r, ",")
	}
	all := strings.Join(joined, "\n")
	for _, want := range []string{
		"Summary Totals:",
		"Total Used Cost:,261.25",
		"Total Waste Cost:,13.75",
		"Total Shrinkage Cost:,37.50",
		"Grand Total Cost:,312.50",
		"Report Generated:,2026-03-01 09:30:00",
	} {
		if !strings.Contains(all, want) {
			t.Errorf("rendered CSV missing %q", want)
		}
	}
}

func TestCSVRenderer_Metadata(t *testing.T) {
	renderer := CSVRenderer{}
	if got := renderer.ContentType(); got != "text/csv" {
		t.Errorf("ContentType = %q, want text/csv", got)
	}
	if got := renderer.FileName(); got != "ingredient_report.csv" {
		t.Errorf("FileName = %q, want ingredient_report.csv", got)
	}
}
