package models

import "github.com/shopspring/decimal"

// Product categories. Labels match the catalog forms.
const (
	CategoryCamisetas    = "Camisetas"
	CategoryCalcasShorts = "Calças/Shorts"
	CategoryAgasalhos    = "Agasalhos"
	CategoryAcessorios   = "Acessórios"
	CategoryOutros       = "Outros"
)

// Categories returns the category vocabulary.
func Categories() []string {
	return []string{
		CategoryCamisetas,
		CategoryCalcasShorts,
		CategoryAgasalhos,
		CategoryAcessorios,
		CategoryOutros,
	}
}

// ValidCategory reports whether c belongs to the category vocabulary.
func ValidCategory(c string) bool {
	for _, cat := range Categories() {
		if cat == c {
			return true
		}
	}
	return false
}

// Product represents one (name, size, color) variant of a uniform for one
// school. Stock is the single source of truth for how many units exist and
// are sellable.
type Product struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Size        string           `json:"size"`
	Color       string           `json:"color"`
	CostPrice   *decimal.Decimal `json:"costPrice,omitempty"`
	SalePrice   decimal.Decimal  `json:"salePrice"`
	Stock       int              `json:"stock"`
	Description string           `json:"description,omitempty"`
	SchoolID    int64            `json:"schoolId"`
	SchoolName  string           `json:"schoolName,omitempty"`
	CreatedAt   string           `json:"createdAt"`
}

// CreateProductRequest represents the request body for registering a product variant
// Example: {"name": "Camiseta Básica", "category": "Camisetas", "schoolId": 1,
//           "size": "10", "color": "Branco", "salePrice": "29.90", "initialStock": 10}
type CreateProductRequest struct {
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	SchoolID     int64            `json:"schoolId"`
	Size         string           `json:"size"`
	Color        string           `json:"color"`
	CostPrice    *decimal.Decimal `json:"costPrice,omitempty"`
	SalePrice    decimal.Decimal  `json:"salePrice"`
	InitialStock int              `json:"initialStock"`
	Description  string           `json:"description,omitempty"`
}

// UpdateProductRequest represents the editable fields of a product. Stock is
// deliberately absent: it is mutated only through the stock actions and the
// order flows.
type UpdateProductRequest struct {
	SalePrice   *decimal.Decimal `json:"salePrice,omitempty"`
	CostPrice   *decimal.Decimal `json:"costPrice,omitempty"`
	Color       *string          `json:"color,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// ProductFilters represents optional filter parameters for listing products
type ProductFilters struct {
	Category *string
	SchoolID *int64
	Size     *string
	Color    *string
	InStock  bool
}

// ProductListResponse represents the response for listing products
type ProductListResponse struct {
	Products []Product `json:"products"`
}

// AdjustStockRequest represents the request body for a relative stock adjustment
// Example: {"productId": 12, "delta": -3}
type AdjustStockRequest struct {
	ProductID int64 `json:"productId"`
	Delta     int   `json:"delta"`
}

// SetStockRequest represents the request body for an absolute stock override
// Example: {"productId": 12, "stock": 25}
type SetStockRequest struct {
	ProductID int64 `json:"productId"`
	Stock     int   `json:"stock"`
}

// Stock bands used by the inventory listing and the alert views.
const (
	StockBandEsgotado = "Esgotado"
	StockBandCritico  = "Crítico"
	StockBandNormal   = "Normal"
	StockBandAlto     = "Alto"
)

// LowStockThreshold is the dashboard alert cut-off.
const LowStockThreshold = 5

// StockBand classifies a stock quantity into the inventory band labels.
func StockBand(stock int) string {
	switch {
	case stock == 0:
		return StockBandEsgotado
	case stock < 3:
		return StockBandCritico
	case stock < 10:
		return StockBandNormal
	default:
		return StockBandAlto
	}
}

// InventoryRow is a product plus its stock band, for the inventory report.
type InventoryRow struct {
	Product
	Band string `json:"band"`
}

// InventoryResponse represents the full inventory listing
type InventoryResponse struct {
	Items []InventoryRow `json:"items"`
}
