package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"sistema-fardamentos/models"
	"sistema-fardamentos/repository"
)

// ProductController handles HTTP requests for the product catalog
type ProductController struct {
	repository repository.ProductRepositoryInterface
}

// NewProductController creates a new ProductController
func NewProductController(repo repository.ProductRepositoryInterface) *ProductController {
	return &ProductController{
		repository: repo,
	}
}

// CreateProduct handles POST /admin/products
func (c *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "CreateProduct", models.NewValidationError("invalid request body: %v", err))
		return
	}

	ctx := context.Background()

	product, err := c.repository.Create(ctx, &req)
	if err != nil {
		respondError(w, "CreateProduct", err)
		return
	}

	logger.Info().Msgf("✅ Registered product %s %s/%s (id=%d, stock=%d)",
		product.Name, product.Size, product.Color, product.ID, product.Stock)
	respondJSON(w, http.StatusCreated, product)
}

// ListProducts handles GET /admin/products
// Supported query parameters: category, schoolId, size, color, inStock
func (c *ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	var filters models.ProductFilters
	query := r.URL.Query()

	if category := query.Get("category"); category != "" {
		filters.Category = &category
	}
	if rawSchoolID := query.Get("schoolId"); rawSchoolID != "" {
		schoolID, err := strconv.ParseInt(rawSchoolID, 10, 64)
		if err != nil {
			respondError(w, "ListProducts", models.NewValidationError("invalid schoolId %q", rawSchoolID))
			return
		}
		filters.SchoolID = &schoolID
	}
	if size := query.Get("size"); size != "" {
		filters.Size = &size
	}
	if color := query.Get("color"); color != "" {
		filters.Color = &color
	}
	filters.InStock = query.Get("inStock") == "true"

	ctx := context.Background()

	products, err := c.repository.List(ctx, filters)
	if err != nil {
		respondError(w, "ListProducts", err)
		return
	}

	respondJSON(w, http.StatusOK, models.ProductListResponse{Products: products})
}

// GetProduct handles GET /admin/products/:id
func (c *ProductController) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/admin/products/")
	if err != nil {
		respondError(w, "GetProduct", err)
		return
	}

	ctx := context.Background()

	product, err := c.repository.GetByID(ctx, id)
	if err != nil {
		respondError(w, "GetProduct", err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// UpdateProduct handles PUT /admin/products/:id
// Only prices, color and description are editable here; stock moves through
// the stock actions and the order flows.
func (c *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/admin/products/")
	if err != nil {
		respondError(w, "UpdateProduct", err)
		return
	}

	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "UpdateProduct", models.NewValidationError("invalid request body: %v", err))
		return
	}

	ctx := context.Background()

	product, err := c.repository.Update(ctx, id, &req)
	if err != nil {
		respondError(w, "UpdateProduct", err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /admin/products/:id
// Refused while order items still reference the product
func (c *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/admin/products/")
	if err != nil {
		respondError(w, "DeleteProduct", err)
		return
	}

	ctx := context.Background()

	if err := c.repository.Delete(ctx, id); err != nil {
		respondError(w, "DeleteProduct", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
