package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"sistema-fardamentos/db"
	"sistema-fardamentos/models"
	"sistema-fardamentos/utils"
)

// SalesOrderRepository handles database operations for sales orders. Stock is
// debited on create, delta-adjusted on quantity edits and restored on delete,
// always inside the same transaction as the order mutation.
type SalesOrderRepository struct{}

// NewSalesOrderRepository creates a new SalesOrderRepository
func NewSalesOrderRepository() *SalesOrderRepository {
	return &SalesOrderRepository{}
}

// Ensure SalesOrderRepository implements SalesOrderRepositoryInterface
var _ SalesOrderRepositoryInterface = (*SalesOrderRepository)(nil)

// parseDeliveryDate parses an optional YYYY-MM-DD date string.
func parseDeliveryDate(value string) (sql.NullTime, error) {
	if value == "" {
		return sql.NullTime{}, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return sql.NullTime{}, models.NewValidationError("invalid delivery date %q, use YYYY-MM-DD", value)
	}
	return sql.NullTime{Time: t, Valid: true}, nil
}

func validateCart(items []models.OrderItemInput) error {
	if len(items) == 0 {
		return models.NewValidationError("order must have at least one item")
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return models.NewValidationError("item quantity must be greater than 0")
		}
	}
	return nil
}

// lockProductForSale locks a product row and returns its identifying fields,
// price and current stock.
func lockProductForSale(ctx context.Context, tx *sql.Tx, productID int64) (name, size, color string, salePrice decimal.Decimal, stock int, err error) {
	query := `
		SELECT name, size, color, sale_price, stock
		FROM products
		WHERE id = $1
		FOR UPDATE
	`
	err = tx.QueryRowContext(ctx, query, productID).Scan(&name, &size, &color, &salePrice, &stock)
	if err == sql.ErrNoRows {
		err = &models.NotFoundError{Entity: "product", ID: productID}
	}
	return
}

// debitStock decrements a product's stock inside tx. The conditional WHERE
// keeps the ledger from ever going negative; zero affected rows means the
// stock check lost to a concurrent debit.
func debitStock(ctx context.Context, tx *sql.Tx, productID int64, productName string, quantity, available int) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`,
		quantity, productID)
	if err != nil {
		return fmt.Errorf("failed to debit stock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check debited rows: %w", err)
	}
	if affected == 0 {
		return &models.InsufficientStockError{
			ProductID: productID,
			Product:   productName,
			Requested: quantity,
			Available: available,
		}
	}
	return nil
}

// Create validates the cart against current stock, inserts the order and its
// items with unit prices frozen from the products' sale prices, and debits
// stock for every line. All-or-nothing: any failure rolls the whole order
// back.
func (r *SalesOrderRepository) Create(ctx context.Context, req *models.CreateSalesOrderRequest) (*models.SalesOrder, error) {
	if err := validateCart(req.Items); err != nil {
		return nil, err
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

	var customerName string
	err = tx.QueryRowContext(ctx, `SELECT name FROM customers WHERE id = $1`, req.CustomerID).Scan(&customerName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Entity: "customer", ID: req.CustomerID}
		}
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}

	var schoolName string
	err = tx.QueryRowContext(ctx, `SELECT name FROM schools WHERE id = $1`, req.SchoolID).Scan(&schoolName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Entity: "school", ID: req.SchoolID}
		}
		return nil, fmt.Errorf("failed to fetch school: %w", err)
	}

	// Lock every product, verify stock and freeze unit prices before any row
	// is written. A failing line aborts the entire order.
	items := make([]models.SalesOrderItem, len(req.Items))
	lines := make([]utils.OrderLine, len(req.Items))
	availables := make([]int, len(req.Items))
	for i, input := range req.Items {
		name, size, color, salePrice, stock, err := lockProductForSale(ctx, tx, input.ProductID)
		if err != nil {
			return nil, err
		}
		if stock < input.Quantity {
			return nil, &models.InsufficientStockError{
				ProductID: input.ProductID,
				Product:   name,
				Requested: input.Quantity,
				Available: stock,
			}
		}
		items[i] = models.SalesOrderItem{
			ProductID:   input.ProductID,
			ProductName: name,
			Size:        size,
			Color:       color,
			Quantity:    input.Quantity,
			UnitPrice:   salePrice,
			Subtotal:    utils.LineSubtotal(input.Quantity, salePrice),
		}
		lines[i] = utils.OrderLine{Quantity: input.Quantity, UnitPrice: salePrice}
		availables[i] = stock
	}

	quantityTotal, valueTotal := utils.OrderTotals(lines)

	order := &models.SalesOrder{
		CustomerID:           req.CustomerID,
		CustomerName:         customerName,
		SchoolID:             req.SchoolID,
		SchoolName:           schoolName,
		Status:               models.SalesStatusPendente,
		DeliveryDateExpected: req.DeliveryDateExpected,
		PaymentMethod:        req.PaymentMethod,
		QuantityTotal:        quantityTotal,
		ValueTotal:           valueTotal,
		Notes:                req.Notes,
	}

	insertOrder := `
		INSERT INTO sales_orders (customer_id, school_id, status, delivery_date_expected, payment_method, quantity_total, value_total, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err = tx.QueryRowContext(ctx, insertOrder,
		req.CustomerID,
		req.SchoolID,
		models.SalesStatusPendente,
		deliveryDate,
		sql.NullString{String: req.PaymentMethod, Valid: req.PaymentMethod != ""},
		quantityTotal,
		valueTotal,
		sql.NullString{String: req.Notes, Valid: req.Notes != ""},
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error inserting sales order")
		return nil, fmt.Errorf("failed to insert sales order: %w", err)
	}

	insertItem := `
		INSERT INTO sales_order_items (order_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	for i := range items {
		items[i].OrderID = order.ID
		err = tx.QueryRowContext(ctx, insertItem,
			order.ID,
			items[i].ProductID,
			items[i].Quantity,
			items[i].UnitPrice,
			items[i].Subtotal,
		).Scan(&items[i].ID)
		if err != nil {
			logger.Error().Err(err).Msg("Error inserting sales order item")
			return nil, fmt.Errorf("failed to insert sales order item: %w", err)
		}
		if err := debitStock(ctx, tx, items[i].ProductID, items[i].ProductName, items[i].Quantity, availables[i]); err != nil {
			return nil, err
		}
	}
	order.Items = items

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info().Msgf("✅ Created sales order id=%d items=%d total=%s",
		order.ID, len(order.Items), utils.FormatBRL(order.ValueTotal))
	return order, nil
}

func scanSalesOrder(row interface{ Scan(...interface{}) error }) (*models.SalesOrder, error) {
	var o models.SalesOrder
	var expected, actual sql.NullTime
	var paymentMethod, notes sql.NullString
	err := row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.CustomerName,
		&o.SchoolID,
		&o.SchoolName,
		&o.Status,
		&o.CreatedAt,
		&expected,
		&actual,
		&paymentMethod,
		&o.QuantityTotal,
		&o.ValueTotal,
		&notes,
	)
	if err != nil {
		return nil, err
	}
	if expected.Valid {
		o.DeliveryDateExpected = expected.Time.Format("2006-01-02")
	}
	if actual.Valid {
		o.DeliveryDateActual = actual.Time.Format("2006-01-02")
	}
	if paymentMethod.Valid {
		o.PaymentMethod = paymentMethod.String
	}
	if notes.Valid {
		o.Notes = notes.String
	}
	return &o, nil
}

const salesOrderColumns = `
	o.id, o.customer_id, c.name, o.school_id, s.name, o.status, o.created_at,
	o.delivery_date_expected, o.delivery_date_actual, o.payment_method,
	o.quantity_total, o.value_total, o.notes`

// GetByID returns a sales order with its items
func (r *SalesOrderRepository) GetByID(ctx context.Context, id int64) (*models.SalesOrder, error) {
	query := `
		SELECT ` + salesOrderColumns + `
		FROM sales_orders o
		INNER JOIN customers c ON o.customer_id = c.id
		INNER JOIN schools s ON o.school_id = s.id
		WHERE o.id = $1
	`
	order, err := scanSalesOrder(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Entity: "sales order", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch sales order: %w", err)
	}

	itemsQuery := `
		SELECT i.id, i.order_id, i.product_id, p.name, p.size, p.color, i.quantity, i.unit_price, i.subtotal
		FROM sales_order_items i
		INNER JOIN products p ON i.product_id = p.id
		WHERE i.order_id = $1
		ORDER BY i.id
	`
	rows, err := db.DB.QueryContext(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sales order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.SalesOrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Size,
			&item.Color,
			&item.Quantity,
			&item.UnitPrice,
			&item.Subtotal,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sales order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sales order items: %w", err)
	}

	return order, nil
}

// List returns sales orders matching the provided filters, newest first,
// without their items.
func (r *SalesOrderRepository) List(ctx context.Context, filters models.SalesOrderFilters) ([]models.SalesOrder, error) {
	query := `
		SELECT ` + salesOrderColumns + `
		FROM sales_orders o
		INNER JOIN customers c ON o.customer_id = c.id
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
		logger.Error().Err(err).Msg("Error listing sales orders")
		return nil, fmt.Errorf("failed to list sales orders: %w", err)
	}
	defer rows.Close()

	var orders []models.SalesOrder
	for rows.Next() {
		order, err := scanSalesOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sales order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sales orders: %w", err)
	}

	return orders, nil
}

// UpdateItemQuantity changes one line's quantity. A positive delta is an
// additional stock debit (rejected if it would drive stock negative), a
// negative delta restores the difference. Item, order totals and stock move
// together or not at all.
func (r *SalesOrderRepository) UpdateItemQuantity(ctx context.Context, orderID, itemID int64, newQuantity int) (*models.SalesOrder, error) {
	if newQuantity <= 0 {
		return nil, models.NewValidationError("quantity must be greater than 0")
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var oldQuantity int
	var productID int64
	var unitPrice decimal.Decimal
	itemQuery := `
		SELECT quantity, product_id, unit_price
		FROM sales_order_items
		WHERE id = $1 AND order_id = $2
		FOR UPDATE
	`
	err = tx.QueryRowContext(ctx, itemQuery, itemID, orderID).Scan(&oldQuantity, &productID, &unitPrice)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Entity: "sales order item", ID: itemID}
		}
		return nil, fmt.Errorf("failed to fetch sales order item: %w", err)
	}

	delta := utils.QuantityDelta(oldQuantity, newQuantity)
	if delta != 0 {
		var productName string
		var stock int
		err = tx.QueryRowContext(ctx,
			`SELECT name, stock FROM products WHERE id = $1 FOR UPDATE`, productID).
			Scan(&productName, &stock)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch product stock: %w", err)
		}

		if delta > 0 {
			if err := debitStock(ctx, tx, productID, productName, delta, stock); err != nil {
				return nil, err
			}
		} else {
			_, err = tx.ExecContext(ctx,
				`UPDATE products SET stock = stock + $1 WHERE id = $2`, -delta, productID)
			if err != nil {
				return nil, fmt.Errorf("failed to restore stock: %w", err)
			}
		}
	}

	subtotal := utils.LineSubtotal(newQuantity, unitPrice)
	_, err = tx.ExecContext(ctx,
		`UPDATE sales_order_items SET quantity = $1, subtotal = $2 WHERE id = $3`,
		newQuantity, subtotal, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to update sales order item: %w", err)
	}

	// Re-derive order totals from the items so value_total always equals the
	// sum of subtotals.
	_, err = tx.ExecContext(ctx, `
		UPDATE sales_orders SET
			quantity_total = (SELECT COALESCE(SUM(quantity), 0) FROM sales_order_items WHERE order_id = $1),
			value_total    = (SELECT COALESCE(SUM(subtotal), 0) FROM sales_order_items WHERE order_id = $1)
		WHERE id = $1
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to update sales order totals: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info().Msgf("✅ Updated sales order %d item %d quantity %d → %d (delta %+d)",
		orderID, itemID, oldQuantity, newQuantity, delta)
	return r.GetByID(ctx, orderID)
}

// UpdateStatus sets an order's status. Any status can be set to any other;
// Entregue additionally stamps the actual delivery date. No stock effect.
func (r *SalesOrderRepository) UpdateStatus(ctx context.Context, orderID int64, status string) (*models.SalesOrder, error) {
	if !models.ValidSalesStatus(status) {
		return nil, models.NewValidationError("invalid status %q", status)
	}

	query := `
		UPDATE sales_orders
		SET status = $1,
		    delivery_date_actual = CASE WHEN $1 = 'Entregue' THEN NOW() ELSE delivery_date_actual END
		WHERE id = $2
	`
	res, err := db.DB.ExecContext(ctx, query, status, orderID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating status for sales order id=%d", orderID)
		return nil, fmt.Errorf("failed to update sales order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return nil, &models.NotFoundError{Entity: "sales order", ID: orderID}
	}

	logger.Info().Msgf("✅ Sales order id=%d status set to %s", orderID, status)
	return r.GetByID(ctx, orderID)
}

// Delete cancels an order: every item's quantity is restored to its
// product's stock, then the order and its items are removed. Atomic with the
// restoration.
func (r *SalesOrderRepository) Delete(ctx context.Context, orderID int64) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM sales_orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return &models.NotFoundError{Entity: "sales order", ID: orderID}
		}
		return fmt.Errorf("failed to fetch sales order: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT product_id, quantity FROM sales_order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("failed to fetch sales order items: %w", err)
	}
	defer rows.Close()

	type restore struct {
		productID int64
		quantity  int
	}
	var restores []restore
	for rows.Next() {
		var item restore
		if err := rows.Scan(&item.productID, &item.quantity); err != nil {
			return fmt.Errorf("failed to scan sales order item: %w", err)
		}
		restores = append(restores, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate sales order items: %w", err)
	}

	for _, item := range restores {
		_, err = tx.ExecContext(ctx,
			`UPDATE products SET stock = stock + $1 WHERE id = $2`, item.quantity, item.productID)
		if err != nil {
			return fmt.Errorf("failed to restore stock: %w", err)
		}
	}

	// Items go with the order via ON DELETE CASCADE.
	_, err = tx.ExecContext(ctx, `DELETE FROM sales_orders WHERE id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete sales order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info().Msgf("✅ Deleted sales order id=%d, restored %d line(s) to stock", orderID, len(restores))
	return nil
}
