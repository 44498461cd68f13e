package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"sistema-fardamentos/models"
	"sistema-fardamentos/repository"
)

// CustomerController handles HTTP requests for customers
type CustomerController struct {
	repository repository.CustomerRepositoryInterface
}

// NewCustomerController creates a new CustomerController
func NewCustomerController(repo repository.CustomerRepositoryInterface) *CustomerController {
	return &CustomerController{
		repository: repo,
	}
}

// CreateCustomer handles POST /admin/customers
func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "CreateCustomer", models.NewValidationError("invalid request body: %v", err))
		return
	}

	ctx := context.Background()

	customer, err := c.repository.Create(ctx, &req)
	if err != nil {
		respondError(w, "CreateCustomer", err)
		return
	}

	logger.Info().Msgf("✅ Registered customer %s (id=%d)", customer.Name, customer.ID)
	respondJSON(w, http.StatusCreated, customer)
}

// ListCustomers handles GET /admin/customers
func (c *CustomerController) ListCustomers(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	customers, err := c.repository.List(ctx)
	if err != nil {
		respondError(w, "ListCustomers", err)
		return
	}

	respondJSON(w, http.StatusOK, models.CustomerListResponse{Customers: customers})
}

// DeleteCustomer handles DELETE /admin/customers/:id
// Refused while sales orders still reference the customer
func (c *CustomerController) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/admin/customers/")
	if err != nil {
		respondError(w, "DeleteCustomer", err)
		return
	}

	ctx := context.Background()

	if err := c.repository.Delete(ctx, id); err != nil {
		respondError(w, "DeleteCustomer", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "customer deleted"})
}
