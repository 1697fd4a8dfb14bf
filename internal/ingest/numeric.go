package ingest

// numeric.go handles the messy reality of user-provided numbers: currency
// symbols, thousands separators, and accounting format (parentheses for
// negative values). Quantities and costs are kept as decimals end to end so
// that money math never accumulates float error.

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numericRegex validates that a string is a valid numeric format after
// cleanup. Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ParseQuantity converts a raw cell into a decimal quantity or cost.
// The bool is false when the value is empty or not numeric.
func ParseQuantity(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}

	// Detect negative accounting format "(123.45)".
	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	// Remove common currency symbols and thousands separators.
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
