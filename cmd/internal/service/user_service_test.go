package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"simpleguide/cmd/internal/contract"
	"simpleguide/cmd/internal/domain/database/repository"
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/domain/policy"
	cognitoclient "simpleguide/cmd/internal/infrastructure/aws/cognito"
)

func newUserService(db *gorm.DB, cog *fakeCognito) *DefaultUserService {
	return NewUserService(repository.NewUserRepository(db), newValidator(), cog, policy.NewUserPolicy())
}

func createUserRequest(email string) *contract.CreateUserRequest {
	return &contract.CreateUserRequest{Username: "Maria", Email: email, TemporaryPassword: "Temp@1234"}
}

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)
	manager := seedUser(t, db, "manager", entity.PermissionManageUsers)
	cog := &fakeCognito{sub: "sub-maria"}
	svc := newUserService(db, cog)

	resp, apierr := svc.CreateUser(context.Background(), manager, createUserRequest("Maria@Example.com"))
	require.Nil(t, apierr)
	assert.Equal(t, "maria@example.com", resp.Email)
	assert.Equal(t, int64(entity.PermissionStaff), resp.Perms)
	assert.Equal(t, []string{"maria@example.com"}, cog.created)

	stored, err := repository.NewUserRepository(db).FindBySub("sub-maria")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Active)
}

func TestCreateUserChecksPermissions(t *testing.T) {
	db := newTestDB(t)
	staff := seedUser(t, db, "staff", entity.PermissionStaff)
	manager := seedUser(t, db, "manager", entity.PermissionManageUsers)
	cog := &fakeCognito{sub: "sub-x"}
	svc := newUserService(db, cog)

	_, apierr := svc.CreateUser(context.Background(), staff, createUserRequest("x@example.com"))
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusForbidden, apierr.Code())

	req := createUserRequest("x@example.com")
	req.Perms = ptr(int64(entity.PermissionAdministrator))
	_, apierr = svc.CreateUser(context.Background(), manager, req)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusForbidden, apierr.Code())
	assert.Empty(t, cog.created)
}

func TestCreateUserRejectsExistingEmail(t *testing.T) {
	db := newTestDB(t)
	manager := seedUser(t, db, "manager", entity.PermissionManageUsers)
	cog := &fakeCognito{sub: "sub-x"}

	_, apierr := newUserService(db, cog).CreateUser(context.Background(), manager, createUserRequest("MANAGER@example.com"))
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusConflict, apierr.Code())
	assert.Empty(t, cog.created)
}

func TestCreateUserRevertsCognitoOnLocalFailure(t *testing.T) {
	db := newTestDB(t)
	manager := seedUser(t, db, "manager", entity.PermissionManageUsers)
	// the provider hands back a sub that is already registered
	cog := &fakeCognito{sub: manager.SubUUID}

	_, apierr := newUserService(db, cog).CreateUser(context.Background(), manager, createUserRequest("new@example.com"))
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusConflict, apierr.Code())
	assert.Equal(t, []string{"new@example.com"}, cog.deleted)
}

func TestCreateUserMapsProviderErrors(t *testing.T) {
	db := newTestDB(t)
	manager := seedUser(t, db, "manager", entity.PermissionManageUsers)
	cog := &fakeCognito{createErr: &types.InvalidPasswordException{}}

	_, apierr := newUserService(db, cog).CreateUser(context.Background(), manager, createUserRequest("new@example.com"))
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())
}

func TestCreateUserValidates(t *testing.T) {
	db := newTestDB(t)
	manager := seedUser(t, db, "manager", entity.PermissionManageUsers)

	_, apierr := newUserService(db, &fakeCognito{}).CreateUser(context.Background(), manager, &contract.CreateUserRequest{Email: "nope"})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())
}

func TestGetUserHidesPrivateFields(t *testing.T) {
	db := newTestDB(t)
	staff := seedUser(t, db, "staff", entity.PermissionStaff)
	other := seedUser(t, db, "other", entity.PermissionStaff)
	svc := newUserService(db, &fakeCognito{})

	me, apierr := svc.GetUser(staff, "@me")
	require.Nil(t, apierr)
	assert.Equal(t, staff.Email, me.Email)
	require.NotNil(t, me.Active)

	resp, apierr := svc.GetUser(staff, fmt.Sprint(other.ID))
	require.Nil(t, apierr)
	assert.Empty(t, resp.Email)
	assert.Nil(t, resp.Active)

	_, apierr = svc.GetUser(staff, "999")
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusNotFound, apierr.Code())

	_, apierr = svc.GetUser(staff, "abc")
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())
}

func TestUpdateUser(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", entity.PermissionAdministrator)
	manager := seedUser(t, db, "manager", entity.PermissionManageUsers)
	staff := seedUser(t, db, "staff", entity.PermissionStaff)
	svc := newUserService(db, &fakeCognito{})

	resp, apierr := svc.UpdateUser(staff, "@me", &contract.UpdateUserRequest{Username: ptr("Renamed")})
	require.Nil(t, apierr)
	assert.Equal(t, "Renamed", resp.Username)

	_, apierr = svc.UpdateUser(staff, "@me", &contract.UpdateUserRequest{Perms: ptr(int64(entity.PermissionManageUsers))})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusForbidden, apierr.Code())

	resp, apierr = svc.UpdateUser(manager, fmt.Sprint(staff.ID), &contract.UpdateUserRequest{Active: ptr(false)})
	require.Nil(t, apierr)
	require.NotNil(t, resp.Active)
	assert.False(t, *resp.Active)

	stored, err := repository.NewUserRepository(db).FindByID(staff.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
	assert.Equal(t, "Renamed", stored.Username)

	_, apierr = svc.UpdateUser(manager, fmt.Sprint(admin.ID), &contract.UpdateUserRequest{Active: ptr(false)})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusForbidden, apierr.Code())
}

func TestDeleteUser(t *testing.T) {
	db := newTestDB(t)
	manager := seedUser(t, db, "manager", entity.PermissionManageUsers)
	idle := seedUser(t, db, "idle", entity.PermissionStaff)
	owner := seedUser(t, db, "owner", entity.PermissionStaff)
	seedCategory(t, db, owner, "bakery")
	cog := &fakeCognito{}
	svc := newUserService(db, cog)

	apierr := svc.DeleteUser(context.Background(), manager, fmt.Sprint(owner.ID))
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusConflict, apierr.Code())

	apierr = svc.DeleteUser(context.Background(), manager, "@me")
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusForbidden, apierr.Code())

	require.Nil(t, svc.DeleteUser(context.Background(), manager, fmt.Sprint(idle.ID)))
	assert.Equal(t, []string{idle.Email}, cog.deleted)

	found, err := repository.NewUserRepository(db).FindByID(idle.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	staff := seedUser(t, db, "staff", entity.PermissionStaff)
	cog := &fakeCognito{}
	svc := newUserService(db, cog)

	resp, apierr := svc.Login(context.Background(), &contract.UserLoginRequest{Email: "STAFF@example.com", Password: "Secret@123"})
	require.Nil(t, apierr)
	assert.Equal(t, "access-"+staff.Email, resp.AccessToken)

	_, apierr = svc.Login(context.Background(), &contract.UserLoginRequest{Email: "ghost@example.com", Password: "Secret@123"})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusNotFound, apierr.Code())

	cog.signInErr = fmt.Errorf("wrapped: %w", cognitoclient.ErrNewPasswordRequired)
	_, apierr = svc.Login(context.Background(), &contract.UserLoginRequest{Email: staff.Email, Password: "Secret@123"})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())

	cog.signInErr = &types.NotAuthorizedException{}
	_, apierr = svc.Login(context.Background(), &contract.UserLoginRequest{Email: staff.Email, Password: "Secret@123"})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())
}

func TestCreateSuperuser(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db, &fakeCognito{})

	user, err := svc.CreateSuperuser("sub-root", "root", "Root@Example.com")
	require.NoError(t, err)
	assert.True(t, user.IsSuperuser())
	assert.Equal(t, "root@example.com", user.Email)

	_, err = svc.CreateSuperuser("sub-root", "root", "root@example.com")
	assert.Error(t, err)
}
