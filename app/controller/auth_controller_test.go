package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sistema-fardamentos/auth"
	"sistema-fardamentos/models"
)

type mockUserRepo struct {
	users map[string]*models.User
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, &models.NotFoundError{Entity: "user", ID: 0}
	}
	return user, nil
}

func (m *mockUserRepo) EnsureDefaultUsers(ctx context.Context) error {
	return nil
}

func TestLogin(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{
		"admin": {ID: 1, Username: "admin", PasswordHash: auth.HashPassword("Admin@2024!")},
	}}
	ctrl := NewAuthController(repo)

	login := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		ctrl.Login(rec, req)
		return rec
	}

	t.Run("valid credentials return a working token", func(t *testing.T) {
		rec := login(`{"username": "admin", "password": "Admin@2024!"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.LoginResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "admin", resp.Username)

		claims, err := auth.VerifyToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := login(`{"username": "admin", "password": "wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown user gets the same answer as a wrong password", func(t *testing.T) {
		rec := login(`{"username": "ghost", "password": "whatever"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "invalid credentials", resp["error"])
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := login(`{"username": "", "password": ""}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		rec := httptest.NewRecorder()
		ctrl.Login(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
