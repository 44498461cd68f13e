package app

import (
	"context"
	"fmt"

	"sistema-fardamentos/app/controller"
	"sistema-fardamentos/app/router"
	"sistema-fardamentos/db"
	"sistema-fardamentos/repository"
)

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	ctx := context.Background()

	// Apply schema and seed reference data
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	schoolRepo := repository.NewSchoolRepository()
	customerRepo := repository.NewCustomerRepository()
	productRepo := repository.NewProductRepository()
	salesOrderRepo := repository.NewSalesOrderRepository()
	productionOrderRepo := repository.NewProductionOrderRepository()
	reportRepo := repository.NewReportRepository()

	// Seed the default accounts
	if err := userRepo.EnsureDefaultUsers(ctx); err != nil {
		return fmt.Errorf("failed to seed default users: %w", err)
	}

	// Create controllers
	controllers := &router.Controllers{
		Auth:            controller.NewAuthController(userRepo),
		School:          controller.NewSchoolController(schoolRepo),
		Customer:        controller.NewCustomerController(customerRepo),
		Product:         controller.NewProductController(productRepo),
		Stock:           controller.NewStockController(productRepo),
		SalesOrder:      controller.NewSalesOrderController(salesOrderRepo),
		ProductionOrder: controller.NewProductionOrderController(productionOrderRepo),
		Report:          controller.NewReportController(reportRepo),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
