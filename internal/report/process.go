package report

// process.go is the pipeline entry point collaborators call after loading
// raw input: validate all four sources, reconcile, derive metrics. The
// pipeline never proceeds past a failed source, and an unexpected failure
// during the join or derivation yields an empty result, never a partial
// table.

import (
	"fmt"
	"time"

	"github.com/restopsdev/platewatch/internal/ingest"
)

// Process runs the full pipeline over freshly loaded raw tables and returns
// the derived report. The error, when non-nil, is a *ingest.SchemaError,
// *ingest.DataQualityError, or *ProcessingError. Identical input always
// yields an identical table.
func Process(info, stock, usage, waste ingest.RawTable) (rep *Report, err error) {
	sources := []struct {
		kind ingest.SourceKind
		raw  ingest.RawTable
	}{
		{ingest.SourceIngredientInfo, info},
		{ingest.SourceStock, stock},
		{ingest.SourceUsage, usage},
		{ingest.SourceWaste, waste},
	}

	var warnings []string
	validated := make(map[ingest.SourceKind]ingest.Table, len(sources))
	for _, src := range sources {
		spec, _ := ingest.Spec(src.kind)
		table, warns, verr := ingest.Validate(src.raw, spec)
		if verr != nil {
			return nil, verr
		}
		for _, w := range warns {
			warnings = append(warnings, w.String())
		}
		validated[src.kind] = table
	}

	// The join and derivation are pure code, but a structural surprise must
	// surface as a recoverable error with an empty result rather than a
	// panic or a half-built table.
	defer func() {
		if r := recover(); r != nil {
			rep = nil
			err = &ProcessingError{Stage: "reconciliation", Err: fmt.Errorf("%v", r)}
		}
	}()

	table, notices := Reconcile(
		validated[ingest.SourceIngredientInfo],
		validated[ingest.SourceStock],
		validated[ingest.SourceUsage],
		validated[ingest.SourceWaste],
	)
	table = ComputeMetrics(table)

	return &Report{
		Table:       table,
		Warnings:    warnings,
		Notices:     notices,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// ViewResult is everything an interactive view needs for one render.
type ViewResult struct {
	Rows     []Record     `json:"rows"`
	Stats    SummaryStats `json:"stats"`
	Alerts   []Alert      `json:"alerts"`
	Insights []string     `json:"insights"`
}

// View filters and sorts the table, then computes summary statistics,
// alerts, and insights over the filtered subset. An empty sortColumn skips
// sorting and keeps row order.
func View(t Table, filter FilterName, sortColumn, sortOrder string, th Thresholds) (ViewResult, error) {
	filtered, err := ApplyFilter(t, filter, th)
	if err != nil {
		return ViewResult{}, err
	}

	if sortColumn != "" {
		filtered, err = SortTable(filtered, sortColumn, sortOrder)
		if err != nil {
			return ViewResult{}, err
		}
	}

	return ViewResult{
		Rows:     Records(filtered),
		Stats:    Summarize(filtered, th),
		Alerts:   BuildAlerts(filtered, th),
		Insights: BuildInsights(filtered, th),
	}, nil
}
