package utils

import "github.com/shopspring/decimal"

// OrderLine is the (quantity, unit price) pair both order flows aggregate
// over. Sales orders use the frozen sale price, production orders the cost
// price at creation time.
type OrderLine struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// LineSubtotal returns quantity × unit price.
func LineSubtotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// OrderTotals returns the total quantity and total value of a set of lines.
// An order's value total must equal this sum at all times.
func OrderTotals(lines []OrderLine) (int, decimal.Decimal) {
	quantity := 0
	total := decimal.Zero
	for _, line := range lines {
		quantity += line.Quantity
		total = total.Add(LineSubtotal(line.Quantity, line.UnitPrice))
	}
	return quantity, total
}

// QuantityDelta returns the stock effect of changing a sales line from oldQty
// to newQty: positive means an additional debit, negative a restore.
func QuantityDelta(oldQty, newQty int) int {
	return newQty - oldQty
}
