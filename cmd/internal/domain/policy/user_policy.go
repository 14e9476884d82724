package policy

import (
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/utils/apierror"
)

const (
	admin    = entity.PermissionAdministrator
	mngUsers = entity.PermissionManageUsers
)

// UserPolicy encapsulates all business rules for staff account manipulation.
// It returns apierror.ErrorResponse directly for seamless integration with handlers.
type UserPolicy struct{}

func NewUserPolicy() *UserPolicy {
	return &UserPolicy{}
}

// CanCreateUser checks if 'actor' can register a staff account holding 'perms'.
func (p *UserPolicy) CanCreateUser(actor *entity.User, perms entity.Permission) apierror.ErrorResponse {
	if !actor.Permissions.HasEffective(mngUsers) {
		return permError(mngUsers)
	}

	if perms.Has(admin) && !actor.IsSuperuser() {
		return forbiddenError("only administrators can create administrators")
	}
	return nil
}

// CanUpdateProfile checks if 'actor' can update mutable fields of 'target'
func (p *UserPolicy) CanUpdateProfile(actor, target *entity.User) apierror.ErrorResponse {
	if actor.ID == target.ID {
		return nil
	}

	if target.Permissions.Has(admin) {
		return forbiddenError("administrators cannot be modified")
	}

	if !actor.Permissions.HasEffective(mngUsers) {
		return permError(mngUsers)
	}
	return nil
}

// CanUpdatePermissions checks if 'actor' can change 'target' permissions to 'newPerms'
func (p *UserPolicy) CanUpdatePermissions(actor, target *entity.User, newPerms entity.Permission) apierror.ErrorResponse {
	// Rule 1: Actor must have ManageUsers
	if !actor.Permissions.HasEffective(mngUsers) {
		return permError(mngUsers)
	}

	// Rule 2: Admin Immunity
	if target.Permissions.Has(admin) {
		return forbiddenError("administrators cannot be modified")
	}

	// Rule 3: Cannot grant Admin via API
	if newPerms.Has(admin) {
		return forbiddenError("cannot grant administrator privileges via API")
	}

	// Rule 4: Nobody edits their own permissions
	if actor.ID == target.ID {
		return forbiddenError("cannot change your own permissions")
	}
	return nil
}

// CanDeleteUser checks if 'actor' can remove 'target'. Administrators are immune.
func (p *UserPolicy) CanDeleteUser(actor, target *entity.User) apierror.ErrorResponse {
	if !actor.Permissions.HasEffective(mngUsers) {
		return permError(mngUsers)
	}

	if target.Permissions.Has(admin) {
		return forbiddenError("administrators cannot be deleted")
	}

	if actor.ID == target.ID {
		return forbiddenError("cannot delete your own account")
	}
	return nil
}

func permError(perm entity.Permission) *apierror.APIError {
	return apierror.NewPermissionError(int64(perm))
}

func forbiddenError(msg string) *apierror.APIError {
	return apierror.NewForbiddenError(msg)
}
