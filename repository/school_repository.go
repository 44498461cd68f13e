package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"sistema-fardamentos/db"
	"sistema-fardamentos/models"
)

// pgUniqueViolation is the Postgres error code for a unique constraint hit.
const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// SchoolRepository handles database operations for schools
type SchoolRepository struct{}

// NewSchoolRepository creates a new SchoolRepository
func NewSchoolRepository() *SchoolRepository {
	return &SchoolRepository{}
}

// Ensure SchoolRepository implements SchoolRepositoryInterface
var _ SchoolRepositoryInterface = (*SchoolRepository)(nil)

// Create registers a new school
func (r *SchoolRepository) Create(ctx context.Context, req *models.CreateSchoolRequest) (*models.School, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.NewValidationError("school name is required")
	}

	query := `INSERT INTO schools (name) VALUES ($1) RETURNING id, name`

	var school models.School
	err := db.DB.QueryRowContext(ctx, query, name).Scan(&school.ID, &school.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.NewValidationError("school %q already exists", name)
		}
		logger.Error().Err(err).Msg("Error creating school")
		return nil, fmt.Errorf("failed to create school: %w", err)
	}

	logger.Info().Msgf("✅ Created school id=%d name=%s", school.ID, school.Name)
	return &school, nil
}

// List returns all schools with their size/color configuration
func (r *SchoolRepository) List(ctx context.Context) ([]models.SchoolWithConfig, error) {
	rows, err := db.DB.QueryContext(ctx, `SELECT id, name FROM schools ORDER BY name`)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing schools")
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}
	defer rows.Close()

	var schools []models.SchoolWithConfig
	for rows.Next() {
		var s models.SchoolWithConfig
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan school: %w", err)
		}
		s.Config = models.ConfigForSchool(s.Name)
		schools = append(schools, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schools: %w", err)
	}

	return schools, nil
}

// GetByID returns one school
func (r *SchoolRepository) GetByID(ctx context.Context, id int64) (*models.School, error) {
	var school models.School
	err := db.DB.QueryRowContext(ctx, `SELECT id, name FROM schools WHERE id = $1`, id).
		Scan(&school.ID, &school.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Entity: "school", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch school: %w", err)
	}
	return &school, nil
}

// Delete removes a school. Refused while any customer, product or order still
// references it.
func (r *SchoolRepository) Delete(ctx context.Context, id int64) error {
	var dependents int
	query := `
		SELECT (SELECT COUNT(*) FROM customers WHERE school_id = $1)
		     + (SELECT COUNT(*) FROM products WHERE school_id = $1)
		     + (SELECT COUNT(*) FROM sales_orders WHERE school_id = $1)
		     + (SELECT COUNT(*) FROM production_orders WHERE school_id = $1)
	`
	if err := db.DB.QueryRowContext(ctx, query, id).Scan(&dependents); err != nil {
		return fmt.Errorf("failed to count school references: %w", err)
	}
	if dependents > 0 {
		return &models.ReferentialIntegrityError{Entity: "school", ID: id, Dependents: "customers, products or orders"}
	}

	res, err := db.DB.ExecContext(ctx, `DELETE FROM schools WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting school id=%d", id)
		return fmt.Errorf("failed to delete school: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return &models.NotFoundError{Entity: "school", ID: id}
	}

	logger.Info().Msgf("✅ Deleted school id=%d", id)
	return nil
}
