package controller

import (
	"context"
	"net/http"

	"sistema-fardamentos/repository"
)

// ReportController handles the dashboard and report endpoints
type ReportController struct {
	repository repository.ReportRepositoryInterface
}

// NewReportController creates a new ReportController
func NewReportController(repo repository.ReportRepositoryInterface) *ReportController {
	return &ReportController{
		repository: repo,
	}
}

// Dashboard handles GET /admin/dashboard
func (c *ReportController) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	metrics, err := c.repository.Dashboard(ctx)
	if err != nil {
		respondError(w, "Dashboard", err)
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}

// SalesReport handles GET /admin/reports/sales
func (c *ReportController) SalesReport(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	report, err := c.repository.SalesReport(ctx)
	if err != nil {
		respondError(w, "SalesReport", err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}
