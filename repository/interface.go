package repository

import (
	"context"

	"sistema-fardamentos/models"
)

// SchoolRepositoryInterface defines the contract for school reference data
type SchoolRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateSchoolRequest) (*models.School, error)
	List(ctx context.Context) ([]models.SchoolWithConfig, error)
	GetByID(ctx context.Context, id int64) (*models.School, error)
	Delete(ctx context.Context, id int64) error
}

// CustomerRepositoryInterface defines the contract for customer operations
type CustomerRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
	Delete(ctx context.Context, id int64) error
}

// ProductRepositoryInterface defines the contract for the product catalog and
// the inventory ledger. AdjustStock and SetStock are the only direct stock
// mutations; everything else goes through the order flows.
type ProductRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context, filters models.ProductFilters) ([]models.Product, error)
	Delete(ctx context.Context, id int64) error
	AdjustStock(ctx context.Context, productID int64, delta int) (*models.Product, error)
	SetStock(ctx context.Context, productID int64, stock int) (*models.Product, error)
	Inventory(ctx context.Context) ([]models.InventoryRow, error)
	LowStock(ctx context.Context, threshold int) ([]models.Product, error)
}

// SalesOrderRepositoryInterface defines the contract for the sales order
// flow. Create debits stock, Delete restores it, UpdateItemQuantity applies
// the delta; all three are atomic with the order mutation.
type SalesOrderRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateSalesOrderRequest) (*models.SalesOrder, error)
	GetByID(ctx context.Context, id int64) (*models.SalesOrder, error)
	List(ctx context.Context, filters models.SalesOrderFilters) ([]models.SalesOrder, error)
	UpdateItemQuantity(ctx context.Context, orderID, itemID int64, newQuantity int) (*models.SalesOrder, error)
	UpdateStatus(ctx context.Context, orderID int64, status string) (*models.SalesOrder, error)
	Delete(ctx context.Context, orderID int64) error
}

// ProductionOrderRepositoryInterface defines the contract for the production
// order flow. Create has no stock effect; Complete credits stock exactly once.
type ProductionOrderRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateProductionOrderRequest) (*models.ProductionOrder, error)
	GetByID(ctx context.Context, id int64) (*models.ProductionOrder, error)
	List(ctx context.Context, filters models.ProductionOrderFilters) ([]models.ProductionOrder, error)
	Complete(ctx context.Context, orderID int64) (*models.ProductionOrder, error)
}

// ReportRepositoryInterface defines the read-only aggregation queries
type ReportRepositoryInterface interface {
	Dashboard(ctx context.Context) (*models.DashboardMetrics, error)
	SalesReport(ctx context.Context) (*models.SalesReport, error)
}

// UserRepositoryInterface defines the contract for the login gate
type UserRepositoryInterface interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	EnsureDefaultUsers(ctx context.Context) error
}
