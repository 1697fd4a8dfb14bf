package report

import (
	"testing"

	"github.com/shopspring/decimal"
)

// dec is a test shorthand for exact decimal literals.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeMetrics_Derivation(t *testing.T) {
	// Tomatoes at $2.50/unit: 100 received, 80 used, 5 wasted.
	in := Table{Rows: []Row{{
		Ingredient:  "Tomatoes",
		UnitCost:    dec("2.50"),
		ReceivedQty: dec("100"),
		UsedQty:     dec("80"),
		WastedQty:   dec("5"),
	}}}

	out := ComputeMetrics(in)
	r := out.Rows[0]

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"expected use", r.ExpectedUse, "85"},
		{"shrinkage qty", r.ShrinkageQty, "15"},
		{"used cost", r.UsedCost, "200"},
		{"waste cost", r.WasteCost, "12.5"},
		{"shrinkage cost", r.ShrinkageCost, "37.5"},
		{"total cost", r.TotalCost, "250"},
		{"waste pct", r.WastePct, "5"},
		{"shrinkage pct", r.ShrinkagePct, "15"},
	}
	for _, c := range checks {
		if !c.got.Equal(dec(c.want)) {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}
}

func TestComputeMetrics_ZeroReceived(t *testing.T) {
	in := Table{Rows: []Row{{
		Ingredient: "Basil",
		UnitCost:   dec("0.50"),
		UsedQty:    dec("3"),
		WastedQty:  dec("1"),
	}}}

	out := ComputeMetrics(in)
	r := out.Rows[0]

	if !r.WastePct.IsZero() || !r.ShrinkagePct.IsZero() {
		t.Errorf("percentages must be 0 when nothing received, got waste=%s shrinkage=%s",
			r.WastePct, r.ShrinkagePct)
	}
	// Shrinkage goes negative: used without receiving.
	if !r.ShrinkageQty.Equal(dec("-4")) {
		t.Errorf("shrinkage qty = %s, want -4", r.ShrinkageQty)
	}
	if !r.ShrinkageCost.Equal(dec("-2")) {
		t.Errorf("shrinkage cost = %s, want -2", r.ShrinkageCost)
	}
}

func TestComputeMetrics_TotalCostIdentity(t *testing.T) {
	in := Table{Rows: []Row{
		{Ingredient: "A", UnitCost: dec("1.37"), ReceivedQty: dec("93.3"), UsedQty: dec("71.01"), WastedQty: dec("4.2")},
		{Ingredient: "B", UnitCost: dec("0.03"), ReceivedQty: dec("7"), UsedQty: dec("11"), WastedQty: dec("0.5")},
		{Ingredient: "C", UnitCost: dec("25"), ReceivedQty: dec("0"), UsedQty: dec("0"), WastedQty: dec("0")},
	}}

	out := ComputeMetrics(in)
	for _, r := range out.Rows {
		sum := r.UsedCost.Add(r.WasteCost).Add(r.ShrinkageCost)
		if !r.TotalCost.Equal(sum) {
			t.Errorf("%s: total cost %s != used+waste+shrinkage %s", r.Ingredient, r.TotalCost, sum)
		}
		// The identity collapses to received * unit cost.
		if !r.TotalCost.Equal(r.ReceivedQty.Mul(r.UnitCost)) {
			t.Errorf("%s: total cost %s != received*unit %s",
				r.Ingredient, r.TotalCost, r.ReceivedQty.Mul(r.UnitCost))
		}
	}
}

func TestComputeMetrics_Idempotent(t *testing.T) {
	in := Table{Rows: []Row{{
		Ingredient:  "Tomatoes",
		UnitCost:    dec("2.50"),
		ReceivedQty: dec("100"),
		UsedQty:     dec("80"),
		WastedQty:   dec("5"),
	}}}

	once := ComputeMetrics(in)
	twice := ComputeMetrics(once)

	a, b := once.Rows[0], twice.Rows[0]
	if !a.TotalCost.Equal(b.TotalCost) || !a.ShrinkagePct.Equal(b.ShrinkagePct) {
		t.Errorf("second derivation changed values: %+v vs %+v", a, b)
	}
}

func TestComputeMetrics_DoesNotMutateInput(t *testing.T) {
	in := Table{Rows: []Row{{
		Ingredient:  "Tomatoes",
		UnitCost:    dec("2.50"),
		ReceivedQty: dec("100"),
		UsedQty:     dec("80"),
	}}}

	ComputeMetrics(in)

	if !in.Rows[0].ExpectedUse.IsZero() || !in.Rows[0].TotalCost.IsZero() {
		t.Error("ComputeMetrics mutated its input table")
	}
}
