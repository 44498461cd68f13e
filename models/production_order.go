package models

import "github.com/shopspring/decimal"

// Production order statuses. Unlike sales orders this is a true two-state
// machine: Em Produção transitions exactly once to Concluída, and stock is
// credited atomically with that transition.
const (
	ProductionStatusEmProducao = "Em Produção"
	ProductionStatusConcluida  = "Concluída"
)

// Production priorities
const (
	PriorityNormal  = "Normal"
	PriorityAlta    = "Alta"
	PriorityUrgente = "Urgente"
)

// ValidPriority reports whether p belongs to the priority vocabulary.
func ValidPriority(p string) bool {
	return p == PriorityNormal || p == PriorityAlta || p == PriorityUrgente
}

// ProductionOrderItem is one line of a production order
type ProductionOrderItem struct {
	ID          int64  `json:"id"`
	OrderID     int64  `json:"orderId"`
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	Size        string `json:"size,omitempty"`
	Color       string `json:"color,omitempty"`
	Quantity    int    `json:"quantity"`
	CreatedAt   string `json:"createdAt"`
}

// ProductionOrder represents an internal manufacturing order. It has no stock
// effect until completion, when every item's quantity is credited to its
// product.
type ProductionOrder struct {
	ID                   int64                 `json:"id"`
	SchoolID             int64                 `json:"schoolId"`
	SchoolName           string                `json:"schoolName,omitempty"`
	Status               string                `json:"status"`
	CreatedAt            string                `json:"createdAt"`
	DeliveryDateExpected string                `json:"deliveryDateExpected,omitempty"`
	CompletedAt          string                `json:"completedAt,omitempty"`
	QuantityTotal        int                   `json:"quantityTotal"`
	CostTotal            decimal.Decimal       `json:"costTotal"`
	Notes                string                `json:"notes,omitempty"`
	Priority             string                `json:"priority"`
	Items                []ProductionOrderItem `json:"items,omitempty"`
}

// CreateProductionOrderRequest represents the request body for creating a production order
// Example: {"schoolId": 1, "items": [{"productId": 12, "quantity": 20}],
//           "deliveryDateExpected": "2026-09-20", "priority": "Alta"}
type CreateProductionOrderRequest struct {
	SchoolID             int64            `json:"schoolId"`
	Items                []OrderItemInput `json:"items"`
	DeliveryDateExpected string           `json:"deliveryDateExpected,omitempty"`
	Notes                string           `json:"notes,omitempty"`
	Priority             string           `json:"priority,omitempty"`
}

// ProductionOrderFilters represents optional filter parameters for listing
// production orders
type ProductionOrderFilters struct {
	Status   *string
	SchoolID *int64
}

// ProductionOrderListResponse represents the response for listing production orders
type ProductionOrderListResponse struct {
	Orders []ProductionOrder `json:"orders"`
}
