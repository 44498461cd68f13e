package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"sistema-fardamentos/auth"
	"sistema-fardamentos/models"
	"sistema-fardamentos/repository"
)

// AuthController handles login requests
type AuthController struct {
	repository repository.UserRepositoryInterface
}

// NewAuthController creates a new AuthController
func NewAuthController(repo repository.UserRepositoryInterface) *AuthController {
	return &AuthController{
		repository: repo,
	}
}

// Login handles POST /login
// Verifies the credentials and returns a signed token
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Login", models.NewValidationError("invalid request body: %v", err))
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		respondError(w, "Login", models.NewValidationError("username and password are required"))
		return
	}

	ctx := context.Background()

	user, err := c.repository.GetByUsername(ctx, username)
	if err != nil {
		var notFound *models.NotFoundError
		if errors.As(err, &notFound) {
			// Same answer as a wrong password, no username probing.
			respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		respondError(w, "Login", err)
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		logger.Warn().Msgf("❌ Login rejected for user %s", username)
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	token, err := auth.IssueToken(user.Username)
	if err != nil {
		respondError(w, "Login", err)
		return
	}

	logger.Info().Msgf("✅ Login succeeded for user %s", username)
	respondJSON(w, http.StatusOK, models.LoginResponse{Token: token, Username: user.Username})
}
