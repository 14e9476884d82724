package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"simpleguide/cmd/internal/contract"
	"simpleguide/cmd/internal/domain/database/repository"
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/domain/policy"
	"simpleguide/cmd/internal/utils/apierror"
)

func newCategoryService(t *testing.T) (*DefaultCategoryService, *entity.User) {
	db := newTestDB(t)
	staff := seedUser(t, db, "staff", entity.PermissionStaff)
	return NewCategoryService(repository.NewCategoryRepository(db), newValidator(), policy.NewRecordPolicy()), staff
}

func TestCreateCategoryUppercasesName(t *testing.T) {
	svc, staff := newCategoryService(t)

	resp, apierr := svc.CreateCategory(staff, &contract.CategoryRequest{Name: "  bakery "})
	require.Nil(t, apierr)
	assert.Equal(t, "BAKERY", resp.Name)
	assert.True(t, resp.Active)
	assert.Equal(t, staff.ID, resp.OwnerID)

	_, apierr = svc.CreateCategory(staff, &contract.CategoryRequest{Name: "Bakery"})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusConflict, apierr.Code())
}

func TestCreateCategoryValidation(t *testing.T) {
	svc, staff := newCategoryService(t)

	_, apierr := svc.CreateCategory(staff, &contract.CategoryRequest{Name: "a category name that is too long"})
	require.NotNil(t, apierr)

	serr, ok := apierr.(*apierror.StructuredError)
	require.True(t, ok)
	assert.Contains(t, serr.Errors, "name")
}

func TestCreateCategoryRequiresPermission(t *testing.T) {
	svc, _ := newCategoryService(t)
	viewer := &entity.User{ID: 99, Permissions: entity.PermissionPerformLookup}

	_, apierr := svc.CreateCategory(viewer, &contract.CategoryRequest{Name: "books"})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusForbidden, apierr.Code())
}

func TestUpdateAndDeleteCategory(t *testing.T) {
	svc, staff := newCategoryService(t)

	created, apierr := svc.CreateCategory(staff, &contract.CategoryRequest{Name: "books"})
	require.Nil(t, apierr)

	updated, apierr := svc.UpdateCategory(staff, created.ID, &contract.CategoryRequest{Name: "comics", Active: ptr(false)})
	require.Nil(t, apierr)
	assert.Equal(t, "COMICS", updated.Name)
	assert.False(t, updated.Active)

	public, apierr := svc.GetActiveCategories()
	require.Nil(t, apierr)
	assert.Empty(t, public)

	assert.Nil(t, svc.DeleteCategory(staff, created.ID))

	_, apierr = svc.GetCategory(staff, created.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusNotFound, apierr.Code())
}

func TestDeleteCategoryInUse(t *testing.T) {
	db := newTestDB(t)
	staff := seedUser(t, db, "staff", entity.PermissionStaff)
	cat := seedCategory(t, db, staff, "books")
	seedCompany(t, db, staff, cat, 1, "READERS", "BA")

	svc := NewCategoryService(repository.NewCategoryRepository(db), newValidator(), policy.NewRecordPolicy())
	apierr := svc.DeleteCategory(staff, cat.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusConflict, apierr.Code())
}
