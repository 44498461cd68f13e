package models

// DashboardMetrics are the headline numbers on the dashboard
type DashboardMetrics struct {
	TotalSalesOrders     int `json:"totalSalesOrders"`
	PendingSalesOrders   int `json:"pendingSalesOrders"`
	ActiveCustomers      int `json:"activeCustomers"`
	LowStockAlerts       int `json:"lowStockAlerts"`
	ProductionInProgress int `json:"productionInProgress"`
}

// CountByLabel is one bucket of a grouped count
type CountByLabel struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SalesReport groups sales orders by school, status and size
type SalesReport struct {
	BySchool []CountByLabel `json:"bySchool"`
	ByStatus []CountByLabel `json:"byStatus"`
	BySize   []CountByLabel `json:"bySize"`
}
