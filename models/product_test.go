package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockBand(t *testing.T) {
	testCases := []struct {
		stock    int
		expected string
	}{
		{0, StockBandEsgotado},
		{1, StockBandCritico},
		{2, StockBandCritico},
		{3, StockBandNormal},
		{9, StockBandNormal},
		{10, StockBandAlto},
		{100, StockBandAlto},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, StockBand(tc.stock), "stock=%d", tc.stock)
	}
}

func TestValidSalesStatus(t *testing.T) {
	for _, status := range SalesStatuses() {
		assert.True(t, ValidSalesStatus(status), status)
	}
	assert.False(t, ValidSalesStatus("Enviado"))
	assert.False(t, ValidSalesStatus(""))
	assert.False(t, ValidSalesStatus("pendente"), "statuses are case sensitive")
}

func TestValidSize(t *testing.T) {
	assert.True(t, ValidSize("2"))
	assert.True(t, ValidSize("12"))
	assert.True(t, ValidSize("PP"))
	assert.True(t, ValidSize("GG"))
	assert.False(t, ValidSize("XXG"))
	assert.False(t, ValidSize("14"))
}

func TestConfigForSchool(t *testing.T) {
	municipal := ConfigForSchool("Municipal")
	assert.NotEmpty(t, municipal.PreferredSizes)
	assert.NotEmpty(t, municipal.PreferredColors)

	// Unknown schools fall back to the full catalog.
	unknown := ConfigForSchool("Colégio Novo")
	assert.Equal(t, AllSizes(), unknown.PreferredSizes)
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, ValidCategory(c), c)
	}
	assert.False(t, ValidCategory("Uniformes"))
}
