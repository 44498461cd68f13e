package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"sistema-fardamentos/db"
	"sistema-fardamentos/models"
)

// CustomerRepository handles database operations for customers
type CustomerRepository struct{}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{}
}

// Ensure CustomerRepository implements CustomerRepositoryInterface
var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)

// Create registers a new customer
func (r *CustomerRepository) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.NewValidationError("customer name is required")
	}

	// Resolve the school so a dangling reference is reported as not-found
	// instead of a raw FK error.
	var schoolName string
	err := db.DB.QueryRowContext(ctx, `SELECT name FROM schools WHERE id = $1`, req.SchoolID).Scan(&schoolName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Entity: "school", ID: req.SchoolID}
		}
		return nil, fmt.Errorf("failed to fetch school: %w", err)
	}

	query := `
		INSERT INTO customers (name, school_id, phone, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, school_id, phone, email, created_at
	`

	var customer models.Customer
	var phone, email sql.NullString
	err = db.DB.QueryRowContext(ctx, query,
		name,
		req.SchoolID,
		sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		sql.NullString{String: req.Email, Valid: req.Email != ""},
	).Scan(
		&customer.ID,
		&customer.Name,
		&customer.SchoolID,
		&phone,
		&email,
		&customer.CreatedAt,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating customer")
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	if phone.Valid {
		customer.Phone = phone.String
	}
	if email.Valid {
		customer.Email = email.String
	}
	customer.SchoolName = schoolName

	logger.Info().Msgf("✅ Created customer id=%d name=%s", customer.ID, customer.Name)
	return &customer, nil
}

// List returns all customers with their school names
func (r *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	query := `
		SELECT c.id, c.name, c.school_id, s.name, c.phone, c.email, c.created_at
		FROM customers c
		INNER JOIN schools s ON c.school_id = s.id
		ORDER BY c.created_at DESC
	`
	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing customers")
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		var phone, email sql.NullString
		err := rows.Scan(&c.ID, &c.Name, &c.SchoolID, &c.SchoolName, &phone, &email, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		if phone.Valid {
			c.Phone = phone.String
		}
		if email.Valid {
			c.Email = email.String
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customers: %w", err)
	}

	return customers, nil
}

// Delete removes a customer. Refused while the customer still owns orders.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	var orders int
	err := db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM sales_orders WHERE customer_id = $1`, id).Scan(&orders)
	if err != nil {
		return fmt.Errorf("failed to count customer orders: %w", err)
	}
	if orders > 0 {
		return &models.ReferentialIntegrityError{Entity: "customer", ID: id, Dependents: "sales orders"}
	}

	res, err := db.DB.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting customer id=%d", id)
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return &models.NotFoundError{Entity: "customer", ID: id}
	}

	logger.Info().Msgf("✅ Deleted customer id=%d", id)
	return nil
}
