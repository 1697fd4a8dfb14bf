// Package export renders a processed report for download. The core hands
// renderers an ordered set of flat records with canonical column names;
// document formats beyond CSV (PDF, spreadsheets) plug in behind the same
// Renderer interface.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/restopsdev/platewatch/internal/report"
)

// Renderer writes a report to an output stream in some document format.
type Renderer interface {
	// Render writes the report table and its summary to w.
	Render(w io.Writer, rep *report.Report, th report.Thresholds) error

	// ContentType returns the MIME type of the rendered document.
	ContentType() string

	// FileName returns a suggested download file name.
	FileName() string
}

// CSVRenderer renders the report as CSV with summary total rows appended,
// mirroring the footer of the printed report.
type CSVRenderer struct{}

// ContentType implements Renderer.
func (CSVRenderer) ContentType() string { return "text/csv" }

// FileName implements Renderer.
func (CSVRenderer) FileName() string { return "ingredient_report.csv" }

// Render implements Renderer.
func (CSVRenderer) Render(w io.Writer, rep *report.Report, th report.Thresholds) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(report.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, rec := range report.Records(rep.Table) {
		row := make([]string, len(report.Columns))
		for i, col := range report.Columns {
			row[i] = rec[col]
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	// Summary totals footer.
	stats := report.Summarize(rep.Table, th)
	footer := [][]string{
		{""},
		{"Summary Totals:"},
		{"Total Used Cost:", stats.TotalUsedCost.StringFixed(2)},
		{"Total Waste Cost:", stats.TotalWasteCost.StringFixed(2)},
		{"Total Shrinkage Cost:", stats.TotalShrinkageCost.StringFixed(2)},
		{"Grand Total Cost:", stats.TotalCost.StringFixed(2)},
		{"Report Generated:", rep.GeneratedAt.Format("2006-01-02 15:04:05")},
	}
	for _, row := range footer {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
