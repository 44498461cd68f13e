package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL formats a decimal amount as a string like "R$ 1.234,56".
// Uses dot as thousands separator and comma for cents (Brazilian format).
func FormatBRL(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	if neg {
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	intPart, centsPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	// Pre-allocate: digits + separators + prefix
	b.Grow(len(fixed) + len(intPart)/3 + 4)
	if neg {
		b.WriteString("-R$ ")
	} else {
		b.WriteString("R$ ")
	}

	// Insert separators from the left.
	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte('.')
		b.WriteString(intPart[i : i+3])
	}

	b.WriteByte(',')
	b.WriteString(centsPart)

	return b.String()
}
