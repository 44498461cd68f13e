package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"sistema-fardamentos/models"
	"sistema-fardamentos/repository"
)

// StockController handles the direct inventory mutations and views. Order
// flows mutate stock through their own endpoints.
type StockController struct {
	repository repository.ProductRepositoryInterface
}

// NewStockController creates a new StockController
func NewStockController(repo repository.ProductRepositoryInterface) *StockController {
	return &StockController{
		repository: repo,
	}
}

// AdjustStock handles POST /admin/stock/adjust
// Applies a relative delta; rejected if the result would be negative
func (c *StockController) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req models.AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "AdjustStock", models.NewValidationError("invalid request body: %v", err))
		return
	}

	if req.Delta == 0 {
		respondError(w, "AdjustStock", models.NewValidationError("delta must be non-zero"))
		return
	}

	ctx := context.Background()

	product, err := c.repository.AdjustStock(ctx, req.ProductID, req.Delta)
	if err != nil {
		respondError(w, "AdjustStock", err)
		return
	}

	logger.Info().Msgf("📦 Stock adjusted: product id=%d delta=%+d now=%d", product.ID, req.Delta, product.Stock)
	respondJSON(w, http.StatusOK, product)
}

// SetStock handles POST /admin/stock/set
// Overrides the absolute quantity, for physical recounts
func (c *StockController) SetStock(w http.ResponseWriter, r *http.Request) {
	var req models.SetStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "SetStock", models.NewValidationError("invalid request body: %v", err))
		return
	}

	ctx := context.Background()

	product, err := c.repository.SetStock(ctx, req.ProductID, req.Stock)
	if err != nil {
		respondError(w, "SetStock", err)
		return
	}

	logger.Info().Msgf("📦 Stock set: product id=%d now=%d", product.ID, product.Stock)
	respondJSON(w, http.StatusOK, product)
}

// Inventory handles GET /admin/stock/inventory
// Returns every product with its stock band
func (c *StockController) Inventory(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	items, err := c.repository.Inventory(ctx)
	if err != nil {
		respondError(w, "Inventory", err)
		return
	}

	respondJSON(w, http.StatusOK, models.InventoryResponse{Items: items})
}

// LowStockAlerts handles GET /admin/stock/alerts
// Returns products below the low stock threshold
func (c *StockController) LowStockAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	products, err := c.repository.LowStock(ctx, models.LowStockThreshold)
	if err != nil {
		respondError(w, "LowStockAlerts", err)
		return
	}

	respondJSON(w, http.StatusOK, models.ProductListResponse{Products: products})
}
