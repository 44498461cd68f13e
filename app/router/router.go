package router

import (
	"net/http"
	"strings"

	"sistema-fardamentos/app/controller"
	"sistema-fardamentos/auth"
)

type Controllers struct {
	Auth            *controller.AuthController
	School          *controller.SchoolController
	Customer        *controller.CustomerController
	Product         *controller.ProductController
	Stock           *controller.StockController
	SalesOrder      *controller.SalesOrderController
	ProductionOrder *controller.ProductionOrderController
	Report          *controller.ReportController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// protected wraps a handler with the bearer token check. Everything under
// /admin goes through it; /ping and /login do not.
func protected(h http.HandlerFunc) http.HandlerFunc {
	return auth.Middleware(h).ServeHTTP
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Login endpoint
	http.HandleFunc("/login", controllers.Auth.Login)

	// Reference data routes
	http.HandleFunc("/admin/reference/sizes", protected(controllers.School.ListSizes))
	http.HandleFunc("/admin/reference/categories", protected(controllers.School.ListCategories))

	// Schools routes
	http.HandleFunc("/admin/schools", protected(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.School.CreateSchool(w, r)
		} else if r.Method == http.MethodGet {
			controllers.School.ListSchools(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// School by ID - handles GET and DELETE
	http.HandleFunc("/admin/schools/", protected(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.School.GetSchool(w, r)
		} else if r.Method == http.MethodDelete {
			controllers.School.DeleteSchool(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Customers routes
	http.HandleFunc("/admin/customers", protected(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Customer.CreateCustomer(w, r)
		} else if r.Method == http.MethodGet {
			controllers.Customer.ListCustomers(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Delete customer by ID
	http.HandleFunc("/admin/customers/", protected(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			controllers.Customer.DeleteCustomer(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Products routes
	http.HandleFunc("/admin/products", protected(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Product.CreateProduct(w, r)
		} else if r.Method == http.MethodGet {
			controllers.Product.ListProducts(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Product by ID - handles GET, PUT and DELETE
	http.HandleFunc("/admin/products/", protected(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			controllers.Product.GetProduct(w, r)
		case http.MethodPut:
			controllers.Product.UpdateProduct(w, r)
		case http.MethodDelete:
			controllers.Product.DeleteProduct(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Stock routes
	http.HandleFunc("/admin/stock/adjust", protected(controllers.Stock.AdjustStock))
	http.HandleFunc("/admin/stock/set", protected(controllers.Stock.SetStock))
	http.HandleFunc("/admin/stock/inventory", protected(controllers.Stock.Inventory))
	http.HandleFunc("/admin/stock/alerts", protected(controllers.Stock.LowStockAlerts))

	// Sales orders routes
	http.HandleFunc("/admin/sales-orders", protected(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.SalesOrder.CreateOrder(w, r)
		} else if r.Method == http.MethodGet {
			controllers.SalesOrder.ListOrders(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Sales order actions
	http.HandleFunc("/admin/sales-orders/", protected(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/admin/sales-orders/")

		// Handle PUT /admin/sales-orders/:id/status
		if strings.HasSuffix(path, "/status") && r.Method == http.MethodPut {
			controllers.SalesOrder.UpdateStatus(w, r)
			return
		}
		// Handle PUT /admin/sales-orders/:orderId/items/:itemId
		if strings.Contains(path, "/items/") && r.Method == http.MethodPut {
			controllers.SalesOrder.UpdateItemQuantity(w, r)
			return
		}
		// Otherwise treat as /admin/sales-orders/:id
		if r.Method == http.MethodGet {
			controllers.SalesOrder.GetOrder(w, r)
			return
		}
		if r.Method == http.MethodDelete {
			controllers.SalesOrder.DeleteOrder(w, r)
			return
		}

		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}))

	// Production orders routes
	http.HandleFunc("/admin/production-orders", protected(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.ProductionOrder.CreateOrder(w, r)
		} else if r.Method == http.MethodGet {
			controllers.ProductionOrder.ListOrders(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Production order actions
	http.HandleFunc("/admin/production-orders/", protected(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/admin/production-orders/")

		// Handle POST /admin/production-orders/:id/complete
		if strings.HasSuffix(path, "/complete") && r.Method == http.MethodPost {
			controllers.ProductionOrder.CompleteOrder(w, r)
			return
		}
		if r.Method == http.MethodGet {
			controllers.ProductionOrder.GetOrder(w, r)
			return
		}

		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}))

	// Dashboard and reports
	http.HandleFunc("/admin/dashboard", protected(controllers.Report.Dashboard))
	http.HandleFunc("/admin/reports/sales", protected(controllers.Report.SalesReport))
}
