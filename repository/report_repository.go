package repository

import (
	"context"
	"fmt"

	"sistema-fardamentos/db"
	"sistema-fardamentos/models"
)

// ReportRepository aggregates dashboard and sales figures
type ReportRepository struct{}

// NewReportRepository creates a new ReportRepository
func NewReportRepository() *ReportRepository {
	return &ReportRepository{}
}

// Ensure ReportRepository implements ReportRepositoryInterface
var _ ReportRepositoryInterface = (*ReportRepository)(nil)

// Dashboard returns the headline counters shown on the main screen
func (r *ReportRepository) Dashboard(ctx context.Context) (*models.DashboardMetrics, error) {
	metrics := &models.DashboardMetrics{}

	query := `
		SELECT
			(SELECT COUNT(*) FROM sales_orders),
			(SELECT COUNT(*) FROM sales_orders WHERE status = $1),
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM products WHERE stock < $2),
			(SELECT COUNT(*) FROM production_orders WHERE status = $3)
	`
	err := db.DB.QueryRowContext(ctx, query,
		models.SalesStatusPendente,
		models.LowStockThreshold,
		models.ProductionStatusEmProducao,
	).Scan(
		&metrics.TotalSalesOrders,
		&metrics.PendingSalesOrders,
		&metrics.ActiveCustomers,
		&metrics.LowStockAlerts,
		&metrics.ProductionInProgress,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Error computing dashboard metrics")
		return nil, fmt.Errorf("failed to compute dashboard metrics: %w", err)
	}

	return metrics, nil
}

func countByLabel(ctx context.Context, query string) ([]models.CountByLabel, error) {
	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.CountByLabel
	for rows.Next() {
		var c models.CountByLabel
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// SalesReport breaks ordered piece counts down by school, status and size
func (r *ReportRepository) SalesReport(ctx context.Context) (*models.SalesReport, error) {
	bySchool, err := countByLabel(ctx, `
		SELECT s.name, COALESCE(SUM(o.quantity_total), 0)
		FROM sales_orders o
		INNER JOIN schools s ON o.school_id = s.id
		GROUP BY s.name
		ORDER BY s.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales by school: %w", err)
	}

	byStatus, err := countByLabel(ctx, `
		SELECT status, COUNT(*)
		FROM sales_orders
		GROUP BY status
		ORDER BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales by status: %w", err)
	}

	bySize, err := countByLabel(ctx, `
		SELECT p.size, COALESCE(SUM(i.quantity), 0)
		FROM sales_order_items i
		INNER JOIN products p ON i.product_id = p.id
		GROUP BY p.size
		ORDER BY p.size
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales by size: %w", err)
	}

	return &models.SalesReport{
		BySchool: bySchool,
		ByStatus: byStatus,
		BySize:   bySize,
	}, nil
}
