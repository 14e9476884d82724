package policy

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/utils/apierror"
)

var (
	superuser = &entity.User{ID: 1, Permissions: entity.PermissionAdministrator}
	jedi      = &entity.User{ID: 2, Permissions: entity.PermissionStaff | entity.PermissionSeeAllRecords}
	staff     = &entity.User{ID: 3, Permissions: entity.PermissionStaff}
	readOnly  = &entity.User{ID: 4}
)

func TestRecordPolicyVisibility(t *testing.T) {
	p := NewRecordPolicy()

	assert.True(t, p.CanSee(superuser, 99))
	assert.True(t, p.CanSee(jedi, 99))
	assert.True(t, p.CanSee(staff, 3))
	assert.False(t, p.CanSee(staff, 99))
	assert.False(t, p.CanSee(nil, 3))

	assert.Equal(t, apierror.NotFoundError, p.CheckVisible(staff, 99))
	assert.Nil(t, p.CheckVisible(staff, 3))
}

func TestRecordPolicyVisibleLists(t *testing.T) {
	p := NewRecordPolicy()
	companies := []*entity.Company{{ID: "a", UserID: 3}, {ID: "b", UserID: 99}}
	subs := []*entity.Subscriber{{ID: 1, UserID: 99}, {ID: 2, UserID: 3}}

	assert.Len(t, p.VisibleCompanies(superuser, companies), 2)
	assert.Len(t, p.VisibleCompanies(jedi, companies), 2)

	mine := p.VisibleCompanies(staff, companies)
	assert.Len(t, mine, 1)
	assert.Equal(t, "a", mine[0].ID)

	mySubs := p.VisibleSubscribers(staff, subs)
	assert.Len(t, mySubs, 1)
	assert.EqualValues(t, 2, mySubs[0].ID)
}

func TestRecordPolicyManage(t *testing.T) {
	p := NewRecordPolicy()

	assert.Nil(t, p.CanManageCategories(staff))
	assert.Equal(t, http.StatusForbidden, p.CanManageCategories(readOnly).Code())

	own := &entity.Company{UserID: 3}
	other := &entity.Company{UserID: 99}
	assert.Nil(t, p.CanManageCompany(staff, own))
	assert.Equal(t, http.StatusNotFound, p.CanManageCompany(staff, other).Code())
	assert.Nil(t, p.CanManageCompany(jedi, other))
	assert.Nil(t, p.CanManageCompany(staff, nil))

	assert.Equal(t, http.StatusForbidden, p.CanManageSubscriber(readOnly, &entity.Subscriber{UserID: 4}).Code())
	assert.Nil(t, p.CanManageSubscriber(superuser, &entity.Subscriber{UserID: 99}))
}

func TestUserPolicy(t *testing.T) {
	p := NewUserPolicy()
	manager := &entity.User{ID: 5, Permissions: entity.PermissionManageUsers}

	assert.Nil(t, p.CanCreateUser(manager, entity.PermissionStaff))
	assert.NotNil(t, p.CanCreateUser(manager, entity.PermissionAdministrator))
	assert.Nil(t, p.CanCreateUser(superuser, entity.PermissionAdministrator))
	assert.NotNil(t, p.CanCreateUser(staff, entity.PermissionStaff))

	assert.Nil(t, p.CanDeleteUser(manager, staff))
	assert.NotNil(t, p.CanDeleteUser(manager, superuser))
	assert.NotNil(t, p.CanDeleteUser(manager, manager))
	assert.NotNil(t, p.CanDeleteUser(staff, readOnly))

	assert.Nil(t, p.CanUpdatePermissions(manager, staff, entity.PermissionStaff|entity.PermissionSeeAllRecords))
	assert.NotNil(t, p.CanUpdatePermissions(manager, staff, entity.PermissionAdministrator))
	assert.NotNil(t, p.CanUpdatePermissions(manager, superuser, 0))

	assert.Nil(t, p.CanUpdateProfile(staff, staff))
	assert.NotNil(t, p.CanUpdateProfile(staff, readOnly))
}
