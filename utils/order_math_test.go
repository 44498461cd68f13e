package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLineSubtotal(t *testing.T) {
	price := decimal.NewFromFloat(29.90)
	assert.True(t, LineSubtotal(4, price).Equal(decimal.NewFromFloat(119.60)))
	assert.True(t, LineSubtotal(1, price).Equal(price))
	assert.True(t, LineSubtotal(0, price).IsZero())
}

func TestOrderTotals(t *testing.T) {
	lines := []OrderLine{
		{Quantity: 4, UnitPrice: decimal.NewFromFloat(29.90)},
		{Quantity: 2, UnitPrice: decimal.NewFromFloat(49.90)},
	}

	quantity, value := OrderTotals(lines)
	assert.Equal(t, 6, quantity)
	assert.True(t, value.Equal(decimal.NewFromFloat(219.40)), "got %s", value)
}

func TestOrderTotalsEmpty(t *testing.T) {
	quantity, value := OrderTotals(nil)
	assert.Equal(t, 0, quantity)
	assert.True(t, value.IsZero())
}

func TestOrderTotalsNoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 style sums must stay exact.
	lines := []OrderLine{
		{Quantity: 1, UnitPrice: decimal.NewFromFloat(0.10)},
		{Quantity: 1, UnitPrice: decimal.NewFromFloat(0.20)},
	}

	_, value := OrderTotals(lines)
	assert.Equal(t, "0.3", value.String())
}

func TestQuantityDelta(t *testing.T) {
	assert.Equal(t, 2, QuantityDelta(4, 6))
	assert.Equal(t, -3, QuantityDelta(5, 2))
	assert.Equal(t, 0, QuantityDelta(7, 7))
}
