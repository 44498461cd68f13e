package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"sistema-fardamentos/models"
	"sistema-fardamentos/repository"
)

// ProductionOrderController handles HTTP requests for production orders
type ProductionOrderController struct {
	repository repository.ProductionOrderRepositoryInterface
}

// NewProductionOrderController creates a new ProductionOrderController
func NewProductionOrderController(repo repository.ProductionOrderRepositoryInterface) *ProductionOrderController {
	return &ProductionOrderController{
		repository: repo,
	}
}

// CreateOrder handles POST /admin/production-orders
// No stock effect until the order is completed
func (c *ProductionOrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductionOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "CreateProductionOrder", models.NewValidationError("invalid request body: %v", err))
		return
	}

	ctx := context.Background()

	order, err := c.repository.Create(ctx, &req)
	if err != nil {
		respondError(w, "CreateProductionOrder", err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// ListOrders handles GET /admin/production-orders
// Supported query parameters: status, schoolId
func (c *ProductionOrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	var filters models.ProductionOrderFilters
	query := r.URL.Query()

	if status := query.Get("status"); status != "" {
		filters.Status = &status
	}
	if rawSchoolID := query.Get("schoolId"); rawSchoolID != "" {
		schoolID, err := strconv.ParseInt(rawSchoolID, 10, 64)
		if err != nil {
			respondError(w, "ListProductionOrders", models.NewValidationError("invalid schoolId %q", rawSchoolID))
			return
		}
		filters.SchoolID = &schoolID
	}

	ctx := context.Background()

	orders, err := c.repository.List(ctx, filters)
	if err != nil {
		respondError(w, "ListProductionOrders", err)
		return
	}

	respondJSON(w, http.StatusOK, models.ProductionOrderListResponse{Orders: orders})
}

// GetOrder handles GET /admin/production-orders/:id
func (c *ProductionOrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/admin/production-orders/")
	if err != nil {
		respondError(w, "GetProductionOrder", err)
		return
	}

	ctx := context.Background()

	order, err := c.repository.GetByID(ctx, id)
	if err != nil {
		respondError(w, "GetProductionOrder", err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// CompleteOrder handles POST /admin/production-orders/:id/complete
// Credits every item's quantity to stock, exactly once per order
func (c *ProductionOrderController) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/admin/production-orders/")
	rawID := strings.TrimSuffix(path, "/complete")
	orderID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || orderID <= 0 {
		respondError(w, "CompleteProductionOrder", models.NewValidationError("invalid order id %q", rawID))
		return
	}

	ctx := context.Background()

	order, err := c.repository.Complete(ctx, orderID)
	if err != nil {
		respondError(w, "CompleteProductionOrder", err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}
