package report

// reconcile.go joins the four source tables on the ingredient key.
//
// The info table is the base: it defines unit costs. Ingredients that show
// up in stock, usage, or waste without an info entry are not dropped; they
// are appended as zero-cost placeholder rows so that activity against
// unknown ingredients stays visible, and a Notice reports them. Ingredients
// absent from a satellite source get quantity 0 for that source, which is
// valid data ("no usage recorded"), not an error.

import (
	"sort"

	"github.com/restopsdev/platewatch/internal/ingest"
	"github.com/shopspring/decimal"
)

// Reconcile left-joins the stock, usage, and waste tables onto the info
// table's key set, extended with any keys the satellites introduce. The
// output row count equals the size of the union of all four key sets.
func Reconcile(info, stock, usage, waste ingest.Table) (Table, []Notice) {
	unitCost := info.Lookup()
	received := stock.Lookup()
	used := usage.Lookup()
	wasted := waste.Lookup()

	// Keys the satellites know about but the info table does not.
	var missing []string
	seenMissing := make(map[string]bool)
	for _, satellite := range []map[string]decimal.Decimal{received, used, wasted} {
		for key := range satellite {
			if _, ok := unitCost[key]; !ok && !seenMissing[key] {
				missing = append(missing, key)
				seenMissing[key] = true
			}
		}
	}
	sort.Strings(missing)

	var notices []Notice
	if len(missing) > 0 {
		notices = append(notices, Notice{MissingFromInfo: missing})
	}

	rows := make([]Row, 0, len(info.Records)+len(missing))
	for _, rec := range info.Records {
		rows = append(rows, Row{
			Ingredient:  rec.Ingredient,
			UnitCost:    rec.Value,
			ReceivedQty: received[rec.Ingredient],
			UsedQty:     used[rec.Ingredient],
			WastedQty:   wasted[rec.Ingredient],
		})
	}
	for _, key := range missing {
		rows = append(rows, Row{
			Ingredient:      key,
			ReceivedQty:     received[key],
			UsedQty:         used[key],
			WastedQty:       wasted[key],
			MissingFromInfo: true,
		})
	}

	return Table{Rows: rows}, notices
}
