package models

import "github.com/shopspring/decimal"

// Sales order statuses. Any status can be set to any other; the only
// status-coupled side effect is that Entregue stamps the actual delivery
// date. Cancellation goes through delete, which restores stock.
const (
	SalesStatusPendente   = "Pendente"
	SalesStatusCortando   = "Cortando"
	SalesStatusCosturando = "Costurando"
	SalesStatusPronto     = "Pronto"
	SalesStatusEntregue   = "Entregue"
	SalesStatusCancelado  = "Cancelado"
)

// SalesStatuses returns the sales status vocabulary.
func SalesStatuses() []string {
	return []string{
		SalesStatusPendente,
		SalesStatusCortando,
		SalesStatusCosturando,
		SalesStatusPronto,
		SalesStatusEntregue,
		SalesStatusCancelado,
	}
}

// ValidSalesStatus reports whether s belongs to the status vocabulary.
func ValidSalesStatus(s string) bool {
	for _, status := range SalesStatuses() {
		if status == s {
			return true
		}
	}
	return false
}

// SalesOrderItem is one line of a sales order. The unit price is frozen from
// the product's sale price at creation time, not read live.
type SalesOrderItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"orderId"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	Size        string          `json:"size,omitempty"`
	Color       string          `json:"color,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SalesOrder represents a customer order that consumes stock
type SalesOrder struct {
	ID                   int64            `json:"id"`
	CustomerID           int64            `json:"customerId"`
	CustomerName         string           `json:"customerName,omitempty"`
	SchoolID             int64            `json:"schoolId"`
	SchoolName           string           `json:"schoolName,omitempty"`
	Status               string           `json:"status"`
	CreatedAt            string           `json:"createdAt"`
	DeliveryDateExpected string           `json:"deliveryDateExpected,omitempty"`
	DeliveryDateActual   string           `json:"deliveryDateActual,omitempty"`
	PaymentMethod        string           `json:"paymentMethod,omitempty"`
	QuantityTotal        int              `json:"quantityTotal"`
	ValueTotal           decimal.Decimal  `json:"valueTotal"`
	Notes                string           `json:"notes,omitempty"`
	Items                []SalesOrderItem `json:"items,omitempty"`
}

// OrderItemInput is a (product, quantity) pair in a cart
type OrderItemInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CreateSalesOrderRequest represents the request body for creating a sales order
// Example: {"customerId": 3, "schoolId": 1, "items": [{"productId": 12, "quantity": 4}],
//           "deliveryDateExpected": "2026-09-15", "paymentMethod": "Pix"}
type CreateSalesOrderRequest struct {
	CustomerID           int64            `json:"customerId"`
	SchoolID             int64            `json:"schoolId"`
	Items                []OrderItemInput `json:"items"`
	DeliveryDateExpected string           `json:"deliveryDateExpected,omitempty"`
	PaymentMethod        string           `json:"paymentMethod,omitempty"`
	Notes                string           `json:"notes,omitempty"`
}

// EditSalesOrderItemRequest represents the request body for changing a line's quantity
// Example: {"quantity": 6}
type EditSalesOrderItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateSalesOrderStatusRequest represents the request body for a status change
// Example: {"status": "Cortando"}
type UpdateSalesOrderStatusRequest struct {
	Status string `json:"status"`
}

// SalesOrderFilters represents optional filter parameters for listing sales orders
type SalesOrderFilters struct {
	Status   *string
	SchoolID *int64
}

// SalesOrderListResponse represents the response for listing sales orders
type SalesOrderListResponse struct {
	Orders []SalesOrder `json:"orders"`
}
