package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"sistema-fardamentos/db"
	"sistema-fardamentos/models"
	"sistema-fardamentos/utils"
)

// ProductionOrderRepository handles database operations for production
// orders. Creating one has no stock effect; completing it credits every item
// quantity to stock exactly once.
type ProductionOrderRepository struct{}

// NewProductionOrderRepository creates a new ProductionOrderRepository
func NewProductionOrderRepository() *ProductionOrderRepository {
	return &ProductionOrderRepository{}
}

// Ensure ProductionOrderRepository implements ProductionOrderRepositoryInterface
var _ ProductionOrderRepositoryInterface = (*ProductionOrderRepository)(nil)

// Create registers a production batch in status Em Produção. The cost total
// is frozen from the products' current cost prices; missing cost prices count
// as zero.
func (r *ProductionOrderRepository) Create(ctx context.Context, req *models.CreateProductionOrderRequest) (*models.ProductionOrder, error) {
	if err := validateCart(req.Items); err != nil {
		return nil, err
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}
	if !models.ValidPriority(priority) {
		return nil, models.NewValidationError("invalid priority %q", req.Priority)
	}
	deliveryDate, err := parseDeliveryDate(req.DeliveryDateExpected)
	if err != nil {
		return nil, err
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var schoolName string
	err = tx.QueryRowContext(ctx, `SELECT name FROM schools WHERE id = $1`, req.SchoolID).Scan(&schoolName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Entity: "school", ID: req.SchoolID}
		}
		return nil, fmt.Errorf("failed to fetch school: %w", err)
	}

	items := make([]models.ProductionOrderItem, len(req.Items))
	quantityTotal := 0
	costTotal := decimal.Zero
	for i, input := range req.Items {
		var name, size, color string
		var costPrice decimal.Decimal
		err = tx.QueryRowContext(ctx,
			`SELECT name, size, color, COALESCE(cost_price, 0) FROM products WHERE id = $1`,
			input.ProductID).Scan(&name, &size, &color, &costPrice)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, &models.NotFoundError{Entity: "product", ID: input.ProductID}
			}
			return nil, fmt.Errorf("failed to fetch product: %w", err)
		}
		items[i] = models.ProductionOrderItem{
			ProductID:   input.ProductID,
			ProductName: name,
			Size:        size,
			Color:       color,
			Quantity:    input.Quantity,
		}
		quantityTotal += input.Quantity
		costTotal = costTotal.Add(costPrice.Mul(decimal.NewFromInt(int64(input.Quantity))))
	}

	order := &models.ProductionOrder{
		SchoolID:             req.SchoolID,
		SchoolName:           schoolName,
		Status:               models.ProductionStatusEmProducao,
		Priority:             priority,
		DeliveryDateExpected: req.DeliveryDateExpected,
		QuantityTotal:        quantityTotal,
		CostTotal:            costTotal,
		Notes:                req.Notes,
	}

	insertOrder := `
		INSERT INTO production_orders (school_id, status, priority, delivery_date_expected, quantity_total, cost_total, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err = tx.QueryRowContext(ctx, insertOrder,
		req.SchoolID,
		models.ProductionStatusEmProducao,
		priority,
		deliveryDate,
		quantityTotal,
		costTotal,
		sql.NullString{String: req.Notes, Valid: req.Notes != ""},
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error inserting production order")
		return nil, fmt.Errorf("failed to insert production order: %w", err)
	}

	insertItem := `
		INSERT INTO production_order_items (order_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	for i := range items {
		items[i].OrderID = order.ID
		err = tx.QueryRowContext(ctx, insertItem, order.ID, items[i].ProductID, items[i].Quantity).
			Scan(&items[i].ID, &items[i].CreatedAt)
		if err != nil {
			logger.Error().Err(err).Msg("Error inserting production order item")
			return nil, fmt.Errorf("failed to insert production order item: %w", err)
		}
	}
	order.Items = items

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info().Msgf("🏭 Created production order id=%d pieces=%d cost=%s",
		order.ID, order.QuantityTotal, utils.FormatBRL(order.CostTotal))
	return order, nil
}

func scanProductionOrder(row interface{ Scan(...interface{}) error }) (*models.ProductionOrder, error) {
	var o models.ProductionOrder
	var expected, completed sql.NullTime
	var notes sql.NullString
	err := row.Scan(
		&o.ID,
		&o.SchoolID,
		&o.SchoolName,
		&o.Status,
		&o.Priority,
		&o.CreatedAt,
		&expected,
		&completed,
		&o.QuantityTotal,
		&o.CostTotal,
		&notes,
	)
	if err != nil {
		return nil, err
	}
	if expected.Valid {
		o.DeliveryDateExpected = expected.Time.Format("2006-01-02")
	}
	if completed.Valid {
		o.CompletedAt = completed.Time.Format("2006-01-02 15:04:05")
	}
	if notes.Valid {
		o.Notes = notes.String
	}
	return &o, nil
}

const productionOrderColumns = `
	o.id, o.school_id, s.name, o.status, o.priority, o.created_at,
	o.delivery_date_expected, o.completed_at, o.quantity_total, o.cost_total, o.notes`

// GetByID returns a production order with its items
func (r *ProductionOrderRepository) GetByID(ctx context.Context, id int64) (*models.ProductionOrder, error) {
	query := `
		SELECT ` + productionOrderColumns + `
		FROM production_orders o
		INNER JOIN schools s ON o.school_id = s.id
		WHERE o.id = $1
	`
	order, err := scanProductionOrder(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Entity: "production order", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch production order: %w", err)
	}

	itemsQuery := `
		SELECT i.id, i.order_id, i.product_id, p.name, p.size, p.color, i.quantity, i.created_at
		FROM production_order_items i
		INNER JOIN products p ON i.product_id = p.id
		WHERE i.order_id = $1
		ORDER BY i.id
	`
	rows, err := db.DB.QueryContext(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch production order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ProductionOrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Size,
			&item.Color,
			&item.Quantity,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan production order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate production order items: %w", err)
	}

	return order, nil
}

// List returns production orders matching the provided filters, newest first,
// without their items.
func (r *ProductionOrderRepository) List(ctx context.Context, filters models.ProductionOrderFilters) ([]models.ProductionOrder, error) {
	query := `
		SELECT ` + productionOrderColumns + `
		FROM production_orders o
		INNER JOIN schools s ON o.school_id = s.id
	`
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("o.status = $%d", argIndex))
		args = append(args, *filters.Status)
		argIndex++
	}
	if filters.SchoolID != nil {
		conditions = append(conditions, fmt.Sprintf("o.school_id = $%d", argIndex))
		args = append(args, *filters.SchoolID)
		argIndex++
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY o.id DESC"

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing production orders")
		return nil, fmt.Errorf("failed to list production orders: %w", err)
	}
	defer rows.Close()

	var orders []models.ProductionOrder
	for rows.Next() {
		order, err := scanProductionOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan production order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate production orders: %w", err)
	}

	return orders, nil
}

// Complete marks a production order Concluída and credits every item's
// quantity to its product's stock. The row lock on the order makes the credit
// happen exactly once: an order already Concluída is rejected.
func (r *ProductionOrderRepository) Complete(ctx context.Context, orderID int64) (*models.ProductionOrder, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM production_orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Entity: "production order", ID: orderID}
		}
		return nil, fmt.Errorf("failed to fetch production order: %w", err)
	}
	if status == models.ProductionStatusConcluida {
		return nil, &models.AlreadyCompletedError{OrderID: orderID}
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT product_id, quantity FROM production_order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch production order items: %w", err)
	}
	defer rows.Close()

	type credit struct {
		productID int64
		quantity  int
	}
	var credits []credit
	for rows.Next() {
		var item credit
		if err := rows.Scan(&item.productID, &item.quantity); err != nil {
			return nil, fmt.Errorf("failed to scan production order item: %w", err)
		}
		credits = append(credits, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate production order items: %w", err)
	}

	for _, item := range credits {
		_, err = tx.ExecContext(ctx,
			`UPDATE products SET stock = stock + $1 WHERE id = $2`, item.quantity, item.productID)
		if err != nil {
			return nil, fmt.Errorf("failed to credit stock: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE production_orders SET status = $1, completed_at = NOW() WHERE id = $2`,
		models.ProductionStatusConcluida, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to complete production order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info().Msgf("✅ Completed production order id=%d, credited %d line(s) to stock", orderID, len(credits))
	return r.GetByID(ctx, orderID)
}
