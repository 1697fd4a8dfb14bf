package report

// metrics.go derives the cost and shrinkage columns. The derivation is a
// pure function of the four base quantities plus unit cost, row by row:
//
//	Expected Use   = Used Qty + Wasted Qty
//	Shrinkage      = Received Qty - Expected Use
//	Used Cost      = Used Qty × Unit Cost
//	Waste Cost     = Wasted Qty × Unit Cost
//	Shrinkage Cost = Shrinkage × Unit Cost
//	Total Cost     = Used Cost + Waste Cost + Shrinkage Cost
//	Waste %        = Wasted Qty / Received Qty × 100 (0 when nothing received)
//	Shrinkage %    = Shrinkage / Received Qty × 100  (0 when nothing received)
//
// Shrinkage is priced from the shrinkage quantity, not from separately
// rounded stocked/expected-use costs; all intermediate values stay
// unrounded, and display rounding happens only in Records and exports.

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ComputeMetrics returns a new table with every derived column filled in.
// It is total: every row gets values, and the two percentage fields return
// 0 instead of dividing by a zero received quantity.
func ComputeMetrics(t Table) Table {
	out := t.clone()
	for i := range out.Rows {
		out.Rows[i] = computeRow(out.Rows[i])
	}
	return out
}

func computeRow(r Row) Row {
	r.ExpectedUse = r.UsedQty.Add(r.WastedQty)
	r.ShrinkageQty = r.ReceivedQty.Sub(r.ExpectedUse)

	r.UsedCost = r.UsedQty.Mul(r.UnitCost)
	r.WasteCost = r.WastedQty.Mul(r.UnitCost)
	r.ShrinkageCost = r.ShrinkageQty.Mul(r.UnitCost)
	r.TotalCost = r.UsedCost.Add(r.WasteCost).Add(r.ShrinkageCost)

	if r.ReceivedQty.IsZero() {
		r.WastePct = decimal.Zero
		r.ShrinkagePct = decimal.Zero
	} else {
		r.WastePct = r.WastedQty.Div(r.ReceivedQty).Mul(hundred)
		r.ShrinkagePct = r.ShrinkageQty.Div(r.ReceivedQty).Mul(hundred)
	}

	return r
}
