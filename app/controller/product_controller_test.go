package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteProduct(t *testing.T) {
	deleteProduct := func(repo *mockProductRepo, path string) *httptest.ResponseRecorder {
		ctrl := NewProductController(repo)
		req := httptest.NewRequest(http.MethodDelete, path, nil)
		rec := httptest.NewRecorder()
		ctrl.DeleteProduct(rec, req)
		return rec
	}

	t.Run("product referenced by order items is refused", func(t *testing.T) {
		stock := testProducts()
		repo := &mockProductRepo{stock: stock, referenced: map[int64]bool{12: true}}
		rec := deleteProduct(repo, "/admin/products/12")

		assert.Equal(t, http.StatusConflict, rec.Code)

		var errResp map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
		assert.Contains(t, errResp["error"], "order items")

		_, stillThere := stock.products[12]
		assert.True(t, stillThere, "a refused delete must not remove the product")
	})

	t.Run("unreferenced product is deleted", func(t *testing.T) {
		stock := testProducts()
		repo := &mockProductRepo{stock: stock}
		rec := deleteProduct(repo, "/admin/products/13")

		assert.Equal(t, http.StatusOK, rec.Code)
		_, stillThere := stock.products[13]
		assert.False(t, stillThere)
	})

	t.Run("missing product", func(t *testing.T) {
		repo := &mockProductRepo{stock: testProducts()}
		rec := deleteProduct(repo, "/admin/products/999")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetProduct(t *testing.T) {
	repo := &mockProductRepo{stock: testProducts()}
	ctrl := NewProductController(repo)

	req := httptest.NewRequest(http.MethodGet, "/admin/products/12", nil)
	rec := httptest.NewRecorder()
	ctrl.GetProduct(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Camiseta Básica", resp["name"])
}
