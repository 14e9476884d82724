package service

import (
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/domain/policy"
	"simpleguide/cmd/internal/utils/apierror"
)

// userUpdater applies a PATCH to a staff account field by field. The first
// refused change stops the rest; dirty reports whether anything changed.
type userUpdater struct {
	actor  *entity.User
	target *entity.User
	policy *policy.UserPolicy

	err   apierror.ErrorResponse
	dirty bool
}

// change assigns next to *field when it differs and guard allows it.
func change[T comparable](u *userUpdater, next *T, field *T, guard func() apierror.ErrorResponse) {
	if u.err != nil || next == nil || *next == *field {
		return
	}

	if u.err = guard(); u.err != nil {
		return
	}

	*field = *next
	u.dirty = true
}

func (u *userUpdater) setUsername(name *string) {
	change(u, name, &u.target.Username, func() apierror.ErrorResponse {
		return u.policy.CanUpdateProfile(u.actor, u.target)
	})
}

func (u *userUpdater) setPermissions(raw *int64) {
	if raw == nil {
		return
	}

	perms := entity.Permission(*raw)
	change(u, &perms, &u.target.Permissions, func() apierror.ErrorResponse {
		return u.policy.CanUpdatePermissions(u.actor, u.target, perms)
	})
}

// setActive uses the delete rules, deactivation being a reversible delete.
func (u *userUpdater) setActive(active *bool) {
	change(u, active, &u.target.Active, func() apierror.ErrorResponse {
		return u.policy.CanDeleteUser(u.actor, u.target)
	})
}
