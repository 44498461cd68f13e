package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"sistema-fardamentos/db"
	"sistema-fardamentos/models"
)

// ProductRepository handles database operations for products, including the
// stock column that acts as the inventory ledger.
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

const productColumns = `
	p.id, p.name, p.category, p.size, p.color, p.cost_price, p.sale_price,
	p.stock, p.description, p.school_id, s.name, p.created_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*models.Product, error) {
	var p models.Product
	var costPrice decimal.NullDecimal
	var description sql.NullString
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Category,
		&p.Size,
		&p.Color,
		&costPrice,
		&p.SalePrice,
		&p.Stock,
		&description,
		&p.SchoolID,
		&p.SchoolName,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if costPrice.Valid {
		p.CostPrice = &costPrice.Decimal
	}
	if description.Valid {
		p.Description = description.String
	}
	return &p, nil
}

func validateCreateProduct(req *models.CreateProductRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return models.NewValidationError("product name is required")
	}
	if !models.ValidCategory(req.Category) {
		return models.NewValidationError("invalid category %q", req.Category)
	}
	if !models.ValidSize(req.Size) {
		return models.NewValidationError("invalid size %q", req.Size)
	}
	if strings.TrimSpace(req.Color) == "" {
		return models.NewValidationError("product color is required")
	}
	if !req.SalePrice.IsPositive() {
		return models.NewValidationError("sale price must be greater than zero")
	}
	if req.CostPrice != nil && req.CostPrice.IsNegative() {
		return models.NewValidationError("cost price cannot be negative")
	}
	if req.InitialStock < 0 {
		return models.NewValidationError("initial stock cannot be negative")
	}
	return nil
}

// Create registers a new product variant
func (r *ProductRepository) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if err := validateCreateProduct(req); err != nil {
		return nil, err
	}

	var schoolName string
	err := db.DB.QueryRowContext(ctx, `SELECT name FROM schools WHERE id = $1`, req.SchoolID).Scan(&schoolName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Entity: "school", ID: req.SchoolID}
		}
		return nil, fmt.Errorf("failed to fetch school: %w", err)
	}

	var costPrice decimal.NullDecimal
	if req.CostPrice != nil {
		costPrice = decimal.NullDecimal{Decimal: *req.CostPrice, Valid: true}
	}

	query := `
		INSERT INTO products (name, category, size, color, cost_price, sale_price, stock, description, school_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	var product models.Product
	err = db.DB.QueryRowContext(ctx, query,
		strings.TrimSpace(req.Name),
		req.Category,
		req.Size,
		strings.TrimSpace(req.Color),
		costPrice,
		req.SalePrice,
		req.InitialStock,
		sql.NullString{String: req.Description, Valid: req.Description != ""},
		req.SchoolID,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.NewValidationError(
				"product %q size %s color %s already exists for this school",
				req.Name, req.Size, req.Color)
		}
		logger.Error().Err(err).Msg("Error creating product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	product.Name = strings.TrimSpace(req.Name)
	product.Category = req.Category
	product.Size = req.Size
	product.Color = strings.TrimSpace(req.Color)
	product.CostPrice = req.CostPrice
	product.SalePrice = req.SalePrice
	product.Stock = req.InitialStock
	product.Description = req.Description
	product.SchoolID = req.SchoolID
	product.SchoolName = schoolName

	logger.Info().Msgf("✅ Created product id=%d name=%s size=%s stock=%d",
		product.ID, product.Name, product.Size, product.Stock)
	return &product, nil
}

// Update changes the editable fields of a product. Stock is not among them.
func (r *ProductRepository) Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {
	var sets []string
	var args []interface{}
	argIndex := 1

	if req.SalePrice != nil {
		if !req.SalePrice.IsPositive() {
			return nil, models.NewValidationError("sale price must be greater than zero")
		}
		sets = append(sets, fmt.Sprintf("sale_price = $%d", argIndex))
		args = append(args, *req.SalePrice)
		argIndex++
	}
	if req.CostPrice != nil {
		if req.CostPrice.IsNegative() {
			return nil, models.NewValidationError("cost price cannot be negative")
		}
		sets = append(sets, fmt.Sprintf("cost_price = $%d", argIndex))
		args = append(args, *req.CostPrice)
		argIndex++
	}
	if req.Color != nil {
		if strings.TrimSpace(*req.Color) == "" {
			return nil, models.NewValidationError("product color is required")
		}
		sets = append(sets, fmt.Sprintf("color = $%d", argIndex))
		args = append(args, strings.TrimSpace(*req.Color))
		argIndex++
	}
	if req.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argIndex))
		args = append(args, *req.Description)
		argIndex++
	}
	if len(sets) == 0 {
		return nil, models.NewValidationError("no fields to update")
	}

	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d", strings.Join(sets, ", "), argIndex)
	args = append(args, id)

	res, err := db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.NewValidationError("another product with the same name, size and color already exists for this school")
		}
		logger.Error().Err(err).Msgf("Error updating product id=%d", id)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return nil, &models.NotFoundError{Entity: "product", ID: id}
	}

	return r.GetByID(ctx, id)
}

// GetByID returns one product
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		INNER JOIN schools s ON p.school_id = s.id
		WHERE p.id = $1
	`
	product, err := scanProduct(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Entity: "product", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return product, nil
}

// List returns products matching the provided filters
func (r *ProductRepository) List(ctx context.Context, filters models.ProductFilters) ([]models.Product, error) {
	baseQuery := `
		SELECT ` + productColumns + `
		FROM products p
		INNER JOIN schools s ON p.school_id = s.id
	`

	// Build WHERE conditions dynamically
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("p.category = $%d", argIndex))
		args = append(args, *filters.Category)
		argIndex++
	}
	if filters.SchoolID != nil {
		conditions = append(conditions, fmt.Sprintf("p.school_id = $%d", argIndex))
		args = append(args, *filters.SchoolID)
		argIndex++
	}
	if filters.Size != nil && *filters.Size != "" {
		conditions = append(conditions, fmt.Sprintf("p.size = $%d", argIndex))
		args = append(args, *filters.Size)
		argIndex++
	}
	if filters.Color != nil && *filters.Color != "" {
		conditions = append(conditions, fmt.Sprintf("p.color = $%d", argIndex))
		args = append(args, *filters.Color)
		argIndex++
	}
	if filters.InStock {
		conditions = append(conditions, "p.stock > 0")
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY s.name, p.category, p.name, p.size"

	rows, err := db.DB.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// Delete removes a product. Refused while any order item references it.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	var references int
	query := `
		SELECT (SELECT COUNT(*) FROM sales_order_items WHERE product_id = $1)
		     + (SELECT COUNT(*) FROM production_order_items WHERE product_id = $1)
	`
	if err := db.DB.QueryRowContext(ctx, query, id).Scan(&references); err != nil {
		return fmt.Errorf("failed to count product references: %w", err)
	}
	if references > 0 {
		return &models.ReferentialIntegrityError{Entity: "product", ID: id, Dependents: "order items"}
	}

	res, err := db.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting product id=%d", id)
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return &models.NotFoundError{Entity: "product", ID: id}
	}

	logger.Info().Msgf("✅ Deleted product id=%d", id)
	return nil
}

// AdjustStock applies a relative delta to a product's stock. A delta that
// would drive stock negative is rejected in full, leaving stock unchanged.
func (r *ProductRepository) AdjustStock(ctx context.Context, productID int64, delta int) (*models.Product, error) {
	if delta == 0 {
		return nil, models.NewValidationError("delta cannot be zero")
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var name string
	var stock int
	err = tx.QueryRowContext(ctx,
		`SELECT name, stock FROM products WHERE id = $1 FOR UPDATE`, productID).
		Scan(&name, &stock)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Entity: "product", ID: productID}
		}
		return nil, fmt.Errorf("failed to fetch product stock: %w", err)
	}

	// Conditional update: the WHERE clause re-checks the floor so the ledger
	// can never go negative even if the row changed since the read.
	res, err := tx.ExecContext(ctx,
		`UPDATE products SET stock = stock + $1 WHERE id = $2 AND stock + $1 >= 0`,
		delta, productID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error adjusting stock for product id=%d", productID)
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check adjusted rows: %w", err)
	}
	if affected == 0 {
		return nil, &models.InsufficientStockError{
			ProductID: productID,
			Product:   name,
			Requested: -delta,
			Available: stock,
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info().Msgf("✅ Adjusted stock for product id=%d: %d → %d", productID, stock, stock+delta)
	return r.GetByID(ctx, productID)
}

// SetStock is the admin override: unconditionally sets stock to an absolute
// non-negative value.
func (r *ProductRepository) SetStock(ctx context.Context, productID int64, stock int) (*models.Product, error) {
	if stock < 0 {
		return nil, models.NewValidationError("stock cannot be negative")
	}

	res, err := db.DB.ExecContext(ctx, `UPDATE products SET stock = $1 WHERE id = $2`, stock, productID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error setting stock for product id=%d", productID)
		return nil, fmt.Errorf("failed to set stock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return nil, &models.NotFoundError{Entity: "product", ID: productID}
	}

	logger.Info().Msgf("✅ Set stock for product id=%d to %d", productID, stock)
	return r.GetByID(ctx, productID)
}

// Inventory returns every product with its stock band, sorted the way the
// inventory report displays it.
func (r *ProductRepository) Inventory(ctx context.Context) ([]models.InventoryRow, error) {
	products, err := r.List(ctx, models.ProductFilters{})
	if err != nil {
		return nil, err
	}

	rows := make([]models.InventoryRow, len(products))
	for i, p := range products {
		rows[i] = models.InventoryRow{Product: p, Band: models.StockBand(p.Stock)}
	}
	return rows, nil
}

// LowStock returns products under the given stock threshold
func (r *ProductRepository) LowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		INNER JOIN schools s ON p.school_id = s.id
		WHERE p.stock < $1
		ORDER BY p.stock, s.name, p.name
	`
	rows, err := db.DB.QueryContext(ctx, query, threshold)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing low-stock products")
		return nil, fmt.Errorf("failed to list low-stock products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}
