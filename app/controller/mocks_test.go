package controller

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"sistema-fardamentos/models"
	"sistema-fardamentos/utils"
)

// fakeStock is the shared in-memory product store used by the mock
// repositories. It enforces the same non-negative stock rule as the real
// ledger so the handler tests exercise honest stock arithmetic.
type fakeStock struct {
	products map[int64]*models.Product
}

func newFakeStock(products ...*models.Product) *fakeStock {
	s := &fakeStock{products: make(map[int64]*models.Product)}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeStock) get(id int64) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "product", ID: id}
	}
	return p, nil
}

func (s *fakeStock) adjust(id int64, delta int) error {
	p, err := s.get(id)
	if err != nil {
		return err
	}
	if p.Stock+delta < 0 {
		return &models.InsufficientStockError{
			ProductID: id,
			Product:   p.Name,
			Requested: -delta,
			Available: p.Stock,
		}
	}
	p.Stock += delta
	return nil
}

// --- Sales order mock ---

type mockSalesOrderRepo struct {
	stock  *fakeStock
	orders map[int64]*models.SalesOrder
	nextID int64
	err    error
}

func newMockSalesOrderRepo(stock *fakeStock) *mockSalesOrderRepo {
	return &mockSalesOrderRepo{
		stock:  stock,
		orders: make(map[int64]*models.SalesOrder),
		nextID: 1,
	}
}

func (m *mockSalesOrderRepo) Create(ctx context.Context, req *models.CreateSalesOrderRequest) (*models.SalesOrder, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(req.Items) == 0 {
		return nil, models.NewValidationError("order must have at least one item")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, models.NewValidationError("item quantity must be greater than 0")
		}
	}

	// Verify every line before touching stock, the real flow is
	// all-or-nothing.
	items := make([]models.SalesOrderItem, len(req.Items))
	lines := make([]utils.OrderLine, len(req.Items))
	for i, input := range req.Items {
		p, err := m.stock.get(input.ProductID)
		if err != nil {
			return nil, err
		}
		if p.Stock < input.Quantity {
			return nil, &models.InsufficientStockError{
				ProductID: input.ProductID,
				Product:   p.Name,
				Requested: input.Quantity,
				Available: p.Stock,
			}
		}
		items[i] = models.SalesOrderItem{
			ID:          int64(i + 1),
			ProductID:   input.ProductID,
			ProductName: p.Name,
			Size:        p.Size,
			Quantity:    input.Quantity,
			UnitPrice:   p.SalePrice,
			Subtotal:    utils.LineSubtotal(input.Quantity, p.SalePrice),
		}
		lines[i] = utils.OrderLine{Quantity: input.Quantity, UnitPrice: p.SalePrice}
	}
	for _, item := range items {
		if err := m.stock.adjust(item.ProductID, -item.Quantity); err != nil {
			return nil, err
		}
	}

	quantityTotal, valueTotal := utils.OrderTotals(lines)
	order := &models.SalesOrder{
		ID:            m.nextID,
		CustomerID:    req.CustomerID,
		SchoolID:      req.SchoolID,
		Status:        models.SalesStatusPendente,
		QuantityTotal: quantityTotal,
		ValueTotal:    valueTotal,
		Items:         items,
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	m.orders[order.ID] = order
	m.nextID++
	return order, nil
}

func (m *mockSalesOrderRepo) GetByID(ctx context.Context, id int64) (*models.SalesOrder, error) {
	if m.err != nil {
		return nil, m.err
	}
	order, ok := m.orders[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "sales order", ID: id}
	}
	return order, nil
}

func (m *mockSalesOrderRepo) List(ctx context.Context, filters models.SalesOrderFilters) ([]models.SalesOrder, error) {
	if m.err != nil {
		return nil, m.err
	}
	var orders []models.SalesOrder
	for _, order := range m.orders {
		if filters.Status != nil && order.Status != *filters.Status {
			continue
		}
		if filters.SchoolID != nil && order.SchoolID != *filters.SchoolID {
			continue
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (m *mockSalesOrderRepo) UpdateItemQuantity(ctx context.Context, orderID, itemID int64, newQuantity int) (*models.SalesOrder, error) {
	if m.err != nil {
		return nil, m.err
	}
	if newQuantity <= 0 {
		return nil, models.NewValidationError("quantity must be greater than 0")
	}
	order, ok := m.orders[orderID]
	if !ok {
		return nil, &models.NotFoundError{Entity: "sales order", ID: orderID}
	}
	for i := range order.Items {
		item := &order.Items[i]
		if item.ID != itemID {
			continue
		}
		delta := utils.QuantityDelta(item.Quantity, newQuantity)
		if err := m.stock.adjust(item.ProductID, -delta); err != nil {
			return nil, err
		}
		item.Quantity = newQuantity
		item.Subtotal = utils.LineSubtotal(newQuantity, item.UnitPrice)

		lines := make([]utils.OrderLine, len(order.Items))
		for j, it := range order.Items {
			lines[j] = utils.OrderLine{Quantity: it.Quantity, UnitPrice: it.UnitPrice}
		}
		order.QuantityTotal, order.ValueTotal = utils.OrderTotals(lines)
		return order, nil
	}
	return nil, &models.NotFoundError{Entity: "sales order item", ID: itemID}
}

func (m *mockSalesOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status string) (*models.SalesOrder, error) {
	if m.err != nil {
		return nil, m.err
	}
	if !models.ValidSalesStatus(status) {
		return nil, models.NewValidationError("invalid status %q", status)
	}
	order, ok := m.orders[orderID]
	if !ok {
		return nil, &models.NotFoundError{Entity: "sales order", ID: orderID}
	}
	order.Status = status
	if status == models.SalesStatusEntregue {
		order.DeliveryDateActual = "2026-08-31"
	}
	return order, nil
}

func (m *mockSalesOrderRepo) Delete(ctx context.Context, orderID int64) error {
	if m.err != nil {
		return m.err
	}
	order, ok := m.orders[orderID]
	if !ok {
		return &models.NotFoundError{Entity: "sales order", ID: orderID}
	}
	for _, item := range order.Items {
		if err := m.stock.adjust(item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	delete(m.orders, orderID)
	return nil
}

// --- Production order mock ---

type mockProductionOrderRepo struct {
	stock  *fakeStock
	orders map[int64]*models.ProductionOrder
	nextID int64
	err    error
}

func newMockProductionOrderRepo(stock *fakeStock) *mockProductionOrderRepo {
	return &mockProductionOrderRepo{
		stock:  stock,
		orders: make(map[int64]*models.ProductionOrder),
		nextID: 1,
	}
}

func (m *mockProductionOrderRepo) Create(ctx context.Context, req *models.CreateProductionOrderRequest) (*models.ProductionOrder, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(req.Items) == 0 {
		return nil, models.NewValidationError("order must have at least one item")
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}
	if !models.ValidPriority(priority) {
		return nil, models.NewValidationError("invalid priority %q", req.Priority)
	}

	items := make([]models.ProductionOrderItem, len(req.Items))
	quantityTotal := 0
	costTotal := decimal.Zero
	for i, input := range req.Items {
		if input.Quantity <= 0 {
			return nil, models.NewValidationError("item quantity must be greater than 0")
		}
		p, err := m.stock.get(input.ProductID)
		if err != nil {
			return nil, err
		}
		items[i] = models.ProductionOrderItem{
			ID:          int64(i + 1),
			ProductID:   input.ProductID,
			ProductName: p.Name,
			Quantity:    input.Quantity,
		}
		quantityTotal += input.Quantity
		if p.CostPrice != nil {
			costTotal = costTotal.Add(p.CostPrice.Mul(decimal.NewFromInt(int64(input.Quantity))))
		}
	}

	order := &models.ProductionOrder{
		ID:            m.nextID,
		SchoolID:      req.SchoolID,
		Status:        models.ProductionStatusEmProducao,
		Priority:      priority,
		QuantityTotal: quantityTotal,
		CostTotal:     costTotal,
		Items:         items,
	}
	m.orders[order.ID] = order
	m.nextID++
	return order, nil
}

func (m *mockProductionOrderRepo) GetByID(ctx context.Context, id int64) (*models.ProductionOrder, error) {
	if m.err != nil {
		return nil, m.err
	}
	order, ok := m.orders[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "production order", ID: id}
	}
	return order, nil
}

func (m *mockProductionOrderRepo) List(ctx context.Context, filters models.ProductionOrderFilters) ([]models.ProductionOrder, error) {
	if m.err != nil {
		return nil, m.err
	}
	var orders []models.ProductionOrder
	for _, order := range m.orders {
		if filters.Status != nil && order.Status != *filters.Status {
			continue
		}
		if filters.SchoolID != nil && order.SchoolID != *filters.SchoolID {
			continue
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (m *mockProductionOrderRepo) Complete(ctx context.Context, orderID int64) (*models.ProductionOrder, error) {
	if m.err != nil {
		return nil, m.err
	}
	order, ok := m.orders[orderID]
	if !ok {
		return nil, &models.NotFoundError{Entity: "production order", ID: orderID}
	}
	if order.Status == models.ProductionStatusConcluida {
		return nil, &models.AlreadyCompletedError{OrderID: orderID}
	}
	for _, item := range order.Items {
		if err := m.stock.adjust(item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}
	order.Status = models.ProductionStatusConcluida
	order.CompletedAt = "2026-08-31 12:00:00"
	return order, nil
}

// --- School mock ---

type mockSchoolRepo struct {
	schools    map[int64]*models.School
	referenced map[int64]bool
}

func (m *mockSchoolRepo) Create(ctx context.Context, req *models.CreateSchoolRequest) (*models.School, error) {
	for _, s := range m.schools {
		if s.Name == req.Name {
			return nil, models.NewValidationError("school %q already exists", req.Name)
		}
	}
	school := &models.School{ID: int64(len(m.schools) + 1), Name: req.Name}
	m.schools[school.ID] = school
	return school, nil
}

func (m *mockSchoolRepo) List(ctx context.Context) ([]models.SchoolWithConfig, error) {
	var schools []models.SchoolWithConfig
	for _, s := range m.schools {
		schools = append(schools, models.SchoolWithConfig{
			School: *s,
			Config: models.ConfigForSchool(s.Name),
		})
	}
	return schools, nil
}

func (m *mockSchoolRepo) GetByID(ctx context.Context, id int64) (*models.School, error) {
	school, ok := m.schools[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "school", ID: id}
	}
	return school, nil
}

func (m *mockSchoolRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.schools[id]; !ok {
		return &models.NotFoundError{Entity: "school", ID: id}
	}
	if m.referenced[id] {
		return &models.ReferentialIntegrityError{Entity: "school", ID: id, Dependents: "customers, products or orders"}
	}
	delete(m.schools, id)
	return nil
}

// --- Customer mock ---

type mockCustomerRepo struct {
	customers  map[int64]*models.Customer
	withOrders map[int64]bool
}

func (m *mockCustomerRepo) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if req.Name == "" {
		return nil, models.NewValidationError("customer name is required")
	}
	customer := &models.Customer{
		ID:       int64(len(m.customers) + 1),
		Name:     req.Name,
		SchoolID: req.SchoolID,
	}
	m.customers[customer.ID] = customer
	return customer, nil
}

func (m *mockCustomerRepo) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	for _, c := range m.customers {
		customers = append(customers, *c)
	}
	return customers, nil
}

func (m *mockCustomerRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.customers[id]; !ok {
		return &models.NotFoundError{Entity: "customer", ID: id}
	}
	if m.withOrders[id] {
		return &models.ReferentialIntegrityError{Entity: "customer", ID: id, Dependents: "sales orders"}
	}
	delete(m.customers, id)
	return nil
}

// --- Product/stock mock ---

type mockProductRepo struct {
	stock      *fakeStock
	referenced map[int64]bool
	err        error
}

func (m *mockProductRepo) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockProductRepo) Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stock.get(id)
}

func (m *mockProductRepo) List(ctx context.Context, filters models.ProductFilters) ([]models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	var products []models.Product
	for _, p := range m.stock.products {
		products = append(products, *p)
	}
	return products, nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.stock.products[id]; !ok {
		return &models.NotFoundError{Entity: "product", ID: id}
	}
	if m.referenced[id] {
		return &models.ReferentialIntegrityError{Entity: "product", ID: id, Dependents: "order items"}
	}
	delete(m.stock.products, id)
	return nil
}

func (m *mockProductRepo) AdjustStock(ctx context.Context, productID int64, delta int) (*models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	if err := m.stock.adjust(productID, delta); err != nil {
		return nil, err
	}
	return m.stock.get(productID)
}

func (m *mockProductRepo) SetStock(ctx context.Context, productID int64, stock int) (*models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	if stock < 0 {
		return nil, models.NewValidationError("stock must not be negative")
	}
	p, err := m.stock.get(productID)
	if err != nil {
		return nil, err
	}
	p.Stock = stock
	return p, nil
}

func (m *mockProductRepo) Inventory(ctx context.Context) ([]models.InventoryRow, error) {
	if m.err != nil {
		return nil, m.err
	}
	var rows []models.InventoryRow
	for _, p := range m.stock.products {
		rows = append(rows, models.InventoryRow{Product: *p, Band: models.StockBand(p.Stock)})
	}
	return rows, nil
}

func (m *mockProductRepo) LowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	var products []models.Product
	for _, p := range m.stock.products {
		if p.Stock < threshold {
			products = append(products, *p)
		}
	}
	return products, nil
}
