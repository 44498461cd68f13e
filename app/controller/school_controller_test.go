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

func newSchoolRepo() *mockSchoolRepo {
	return &mockSchoolRepo{
		schools: map[int64]*models.School{
			1: {ID: 1, Name: "Municipal"},
			2: {ID: 2, Name: "Desperta"},
		},
		referenced: map[int64]bool{1: true},
	}
}

func TestCreateSchoolRejectsDuplicateName(t *testing.T) {
	repo := newSchoolRepo()
	ctrl := NewSchoolController(repo)

	req := httptest.NewRequest(http.MethodPost, "/admin/schools",
		strings.NewReader(`{"name": "Municipal"}`))
	rec := httptest.NewRecorder()
	ctrl.CreateSchool(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Contains(t, errResp["error"], "already exists")
}

func TestGetSchool(t *testing.T) {
	repo := newSchoolRepo()
	ctrl := NewSchoolController(repo)

	t.Run("existing school carries its config", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/schools/1", nil)
		rec := httptest.NewRecorder()
		ctrl.GetSchool(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.SchoolWithConfig
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Municipal", resp.Name)
		assert.NotEmpty(t, resp.Config.PreferredSizes)
		assert.NotEmpty(t, resp.Config.PreferredColors)
	})

	t.Run("missing school", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/schools/99", nil)
		rec := httptest.NewRecorder()
		ctrl.GetSchool(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteSchool(t *testing.T) {
	t.Run("school with dependents is refused", func(t *testing.T) {
		repo := newSchoolRepo()
		ctrl := NewSchoolController(repo)

		req := httptest.NewRequest(http.MethodDelete, "/admin/schools/1", nil)
		rec := httptest.NewRecorder()
		ctrl.DeleteSchool(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		_, stillThere := repo.schools[1]
		assert.True(t, stillThere, "a refused delete must not remove the school")
	})

	t.Run("unreferenced school is deleted", func(t *testing.T) {
		repo := newSchoolRepo()
		ctrl := NewSchoolController(repo)

		req := httptest.NewRequest(http.MethodDelete, "/admin/schools/2", nil)
		rec := httptest.NewRecorder()
		ctrl.DeleteSchool(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		_, stillThere := repo.schools[2]
		assert.False(t, stillThere)
	})
}
