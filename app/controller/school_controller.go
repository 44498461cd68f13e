package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"sistema-fardamentos/models"
	"sistema-fardamentos/repository"
)

// SchoolController handles HTTP requests for schools
type SchoolController struct {
	repository repository.SchoolRepositoryInterface
}

// NewSchoolController creates a new SchoolController
func NewSchoolController(repo repository.SchoolRepositoryInterface) *SchoolController {
	return &SchoolController{
		repository: repo,
	}
}

// CreateSchool handles POST /admin/schools
func (c *SchoolController) CreateSchool(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSchoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "CreateSchool", models.NewValidationError("invalid request body: %v", err))
		return
	}

	ctx := context.Background()

	school, err := c.repository.Create(ctx, &req)
	if err != nil {
		respondError(w, "CreateSchool", err)
		return
	}

	respondJSON(w, http.StatusCreated, school)
}

// ListSchools handles GET /admin/schools
// Returns every school with its preferred size/color configuration
func (c *SchoolController) ListSchools(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	schools, err := c.repository.List(ctx)
	if err != nil {
		respondError(w, "ListSchools", err)
		return
	}

	respondJSON(w, http.StatusOK, models.SchoolListResponse{Schools: schools})
}

// GetSchool handles GET /admin/schools/:id
func (c *SchoolController) GetSchool(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/admin/schools/")
	if err != nil {
		respondError(w, "GetSchool", err)
		return
	}

	ctx := context.Background()

	school, err := c.repository.GetByID(ctx, id)
	if err != nil {
		respondError(w, "GetSchool", err)
		return
	}

	respondJSON(w, http.StatusOK, models.SchoolWithConfig{
		School: *school,
		Config: models.ConfigForSchool(school.Name),
	})
}

// DeleteSchool handles DELETE /admin/schools/:id
// Refused while customers, products or orders still reference the school
func (c *SchoolController) DeleteSchool(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/admin/schools/")
	if err != nil {
		respondError(w, "DeleteSchool", err)
		return
	}

	ctx := context.Background()

	if err := c.repository.Delete(ctx, id); err != nil {
		respondError(w, "DeleteSchool", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "school deleted"})
}

// ListSizes handles GET /admin/reference/sizes
func (c *SchoolController) ListSizes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"infantil": models.SizesInfantil,
		"adulto":   models.SizesAdulto,
	})
}

// ListCategories handles GET /admin/reference/categories
func (c *SchoolController) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": models.Categories(),
	})
}
