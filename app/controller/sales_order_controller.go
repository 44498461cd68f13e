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

// SalesOrderController handles HTTP requests for sales orders
type SalesOrderController struct {
	repository repository.SalesOrderRepositoryInterface
}

// NewSalesOrderController creates a new SalesOrderController
func NewSalesOrderController(repo repository.SalesOrderRepositoryInterface) *SalesOrderController {
	return &SalesOrderController{
		repository: repo,
	}
}

// CreateOrder handles POST /admin/sales-orders
// Debits stock for every line; any line without enough stock aborts the
// whole order.
func (c *SalesOrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSalesOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "CreateSalesOrder", models.NewValidationError("invalid request body: %v", err))
		return
	}

	ctx := context.Background()

	order, err := c.repository.Create(ctx, &req)
	if err != nil {
		respondError(w, "CreateSalesOrder", err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// ListOrders handles GET /admin/sales-orders
// Supported query parameters: status, schoolId
func (c *SalesOrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	var filters models.SalesOrderFilters
	query := r.URL.Query()

	if status := query.Get("status"); status != "" {
		if !models.ValidSalesStatus(status) {
			respondError(w, "ListSalesOrders", models.NewValidationError("invalid status %q", status))
			return
		}
		filters.Status = &status
	}
	if rawSchoolID := query.Get("schoolId"); rawSchoolID != "" {
		schoolID, err := strconv.ParseInt(rawSchoolID, 10, 64)
		if err != nil {
			respondError(w, "ListSalesOrders", models.NewValidationError("invalid schoolId %q", rawSchoolID))
			return
		}
		filters.SchoolID = &schoolID
	}

	ctx := context.Background()

	orders, err := c.repository.List(ctx, filters)
	if err != nil {
		respondError(w, "ListSalesOrders", err)
		return
	}

	respondJSON(w, http.StatusOK, models.SalesOrderListResponse{Orders: orders})
}

// GetOrder handles GET /admin/sales-orders/:id
func (c *SalesOrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/admin/sales-orders/")
	if err != nil {
		respondError(w, "GetSalesOrder", err)
		return
	}

	ctx := context.Background()

	order, err := c.repository.GetByID(ctx, id)
	if err != nil {
		respondError(w, "GetSalesOrder", err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// UpdateItemQuantity handles PUT /admin/sales-orders/:orderId/items/:itemId
// Adjusts stock by the quantity difference
func (c *SalesOrderController) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/admin/sales-orders/")
	parts := strings.Split(path, "/")
	if len(parts) != 3 || parts[1] != "items" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	orderID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || orderID <= 0 {
		respondError(w, "UpdateSalesOrderItem", models.NewValidationError("invalid order id %q", parts[0]))
		return
	}
	itemID, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || itemID <= 0 {
		respondError(w, "UpdateSalesOrderItem", models.NewValidationError("invalid item id %q", parts[2]))
		return
	}

	var req models.EditSalesOrderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "UpdateSalesOrderItem", models.NewValidationError("invalid request body: %v", err))
		return
	}

	ctx := context.Background()

	order, err := c.repository.UpdateItemQuantity(ctx, orderID, itemID, req.Quantity)
	if err != nil {
		respondError(w, "UpdateSalesOrderItem", err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// UpdateStatus handles PUT /admin/sales-orders/:id/status
func (c *SalesOrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/admin/sales-orders/")
	rawID := strings.TrimSuffix(path, "/status")
	orderID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || orderID <= 0 {
		respondError(w, "UpdateSalesOrderStatus", models.NewValidationError("invalid order id %q", rawID))
		return
	}

	var req models.UpdateSalesOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "UpdateSalesOrderStatus", models.NewValidationError("invalid request body: %v", err))
		return
	}

	ctx := context.Background()

	order, err := c.repository.UpdateStatus(ctx, orderID, req.Status)
	if err != nil {
		respondError(w, "UpdateSalesOrderStatus", err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// DeleteOrder handles DELETE /admin/sales-orders/:id
// Restores every line's quantity to stock
func (c *SalesOrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/admin/sales-orders/")
	if err != nil {
		respondError(w, "DeleteSalesOrder", err)
		return
	}

	ctx := context.Background()

	if err := c.repository.Delete(ctx, id); err != nil {
		respondError(w, "DeleteSalesOrder", err)
		return
	}

	logger.Info().Msgf("✅ Sales order id=%d deleted, stock restored", id)
	respondJSON(w, http.StatusOK, map[string]string{"message": "sales order deleted, stock restored"})
}
