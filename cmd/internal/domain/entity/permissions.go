package entity

// Permission is a custom type for bitwise flags
type Permission int64

const (
	// PermissionAdministrator grants god-mode (the superuser).
	// Admins see every record and cannot be modified or deleted via API.
	PermissionAdministrator Permission = 1 << iota

	// PermissionSeeAllRecords lifts the owner-only filter on companies and
	// subscribers. It is what the privileged staff group gets.
	PermissionSeeAllRecords

	// PermissionManageCategories allows creating, editing and deleting categories.
	PermissionManageCategories

	// PermissionManageCompanies allows creating, editing and deleting visible companies.
	PermissionManageCompanies

	// PermissionManageSubscribers allows creating, editing and deleting visible subscribers.
	PermissionManageSubscribers

	// PermissionManageUsers allows registering and removing staff accounts.
	// It does NOT grant the ability to create administrators.
	PermissionManageUsers

	// PermissionPerformLookup allows calling the CNPJ lookup endpoint.
	PermissionPerformLookup
)

// PermissionStaff is the default set given to regular staff accounts.
const PermissionStaff = PermissionManageCategories |
	PermissionManageCompanies |
	PermissionManageSubscribers |
	PermissionPerformLookup

// Has checks if the permission bitmask contains ALL bits
// requested in 'target'. It ignores Administrator status.
// Logic: (p & target) == target
func (p Permission) Has(target Permission) bool {
	return (p & target) == target
}

// HasAny returns true if the user has ANY of the target permissions
func (p Permission) HasAny(target Permission) bool {
	return (p & target) > 0
}

// Add appends a permission to the bitmask
func (p Permission) Add(perm Permission) Permission {
	return p | perm
}

// Remove clears a permission from the bitmask
func (p Permission) Remove(perm Permission) Permission {
	return p &^ perm
}

// HasEffective checks if the permission bitmask contains the target bits
// OR if the permission includes Administrator
func (p Permission) HasEffective(target Permission) bool {
	return p.Has(PermissionAdministrator) || p.Has(target)
}
