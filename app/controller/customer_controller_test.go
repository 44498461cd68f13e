package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sistema-fardamentos/models"
)

func TestDeleteCustomer(t *testing.T) {
	newRepo := func() *mockCustomerRepo {
		return &mockCustomerRepo{
			customers: map[int64]*models.Customer{
				1: {ID: 1, Name: "Maria Silva", SchoolID: 1},
				2: {ID: 2, Name: "João Souza", SchoolID: 1},
			},
			withOrders: map[int64]bool{1: true},
		}
	}

	deleteCustomer := func(repo *mockCustomerRepo, path string) *httptest.ResponseRecorder {
		ctrl := NewCustomerController(repo)
		req := httptest.NewRequest(http.MethodDelete, path, nil)
		rec := httptest.NewRecorder()
		ctrl.DeleteCustomer(rec, req)
		return rec
	}

	t.Run("customer with orders is refused", func(t *testing.T) {
		repo := newRepo()
		rec := deleteCustomer(repo, "/admin/customers/1")

		assert.Equal(t, http.StatusConflict, rec.Code)

		var errResp map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
		assert.Contains(t, errResp["error"], "sales orders")

		_, stillThere := repo.customers[1]
		assert.True(t, stillThere, "a refused delete must not remove the customer")
	})

	t.Run("customer without orders is deleted", func(t *testing.T) {
		repo := newRepo()
		rec := deleteCustomer(repo, "/admin/customers/2")

		assert.Equal(t, http.StatusOK, rec.Code)
		_, stillThere := repo.customers[2]
		assert.False(t, stillThere)
	})

	t.Run("missing customer", func(t *testing.T) {
		rec := deleteCustomer(newRepo(), "/admin/customers/99")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := deleteCustomer(newRepo(), "/admin/customers/abc")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateCustomerValidation(t *testing.T) {
	repo := &mockCustomerRepo{customers: map[int64]*models.Customer{}}
	ctrl := NewCustomerController(repo)

	req := httptest.NewRequest(http.MethodPost, "/admin/customers",
		strings.NewReader(`{"name": "", "schoolId": 1}`))
	rec := httptest.NewRecorder()
	ctrl.CreateCustomer(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
