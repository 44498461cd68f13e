package repository

import (
	"context"
	"database/sql"
	"fmt"

	"sistema-fardamentos/auth"
	"sistema-fardamentos/db"
	"sistema-fardamentos/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new UserRepository
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Ensure UserRepository implements UserRepositoryInterface
var _ UserRepositoryInterface = (*UserRepository)(nil)

// GetByUsername returns a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`
	err := db.DB.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Entity: "user", ID: 0}
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// EnsureDefaultUsers seeds the default accounts when they are missing.
// Existing rows keep whatever password they were changed to.
func (r *UserRepository) EnsureDefaultUsers(ctx context.Context) error {
	defaults := []struct {
		username string
		password string
	}{
		{"admin", "Admin@2024!"},
		{"vendedor", "Vendas@123"},
	}

	for _, u := range defaults {
		_, err := db.DB.ExecContext(ctx,
			`INSERT INTO users (username, password_hash) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING`,
			u.username, auth.HashPassword(u.password))
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.username, err)
		}
	}

	logger.Info().Msg("✅ Default users present")
	return nil
}
