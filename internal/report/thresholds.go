package report

import "github.com/shopspring/decimal"

// Thresholds are the policy constants behind filters, alerts, and insights.
// They are configuration, not derived values; the defaults below are the
// documented product policy. Dollar thresholds compare against costs,
// percentage thresholds against the two percentage columns.
type Thresholds struct {
	// HighShrinkageCost flags an ingredient as high-shrinkage ($).
	HighShrinkageCost decimal.Decimal
	// CriticalShrinkageCost escalates shrinkage to a critical alert ($).
	CriticalShrinkageCost decimal.Decimal
	// HighWastePct flags an ingredient as high-waste (%).
	HighWastePct decimal.Decimal
	// AlertWastePct raises a waste warning alert (%).
	AlertWastePct decimal.Decimal
	// EfficientPct bounds waste and |shrinkage| for "efficient" items (%).
	EfficientPct decimal.Decimal
	// AvgWasteNotePct triggers the mean-waste insight (%).
	AvgWasteNotePct decimal.Decimal
	// ShrinkageNoteCost triggers the total-shrinkage insight ($).
	ShrinkageNoteCost decimal.Decimal
}

// DefaultThresholds returns the documented defaults:
// high shrinkage $10, critical shrinkage $50, high waste 5%, waste alert
// 15%, efficient 5%, mean-waste note 10%, total-shrinkage note $100.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighShrinkageCost:     decimal.NewFromInt(10),
		CriticalShrinkageCost: decimal.NewFromInt(50),
		HighWastePct:          decimal.NewFromInt(5),
		AlertWastePct:         decimal.NewFromInt(15),
		EfficientPct:          decimal.NewFromInt(5),
		AvgWasteNotePct:       decimal.NewFromInt(10),
		ShrinkageNoteCost:     decimal.NewFromInt(100),
	}
}
