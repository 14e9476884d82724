package entity

// User is a staff account. Every record in the directory is owned by one.
type User struct {
	ID          int64      `gorm:"primaryKey;autoIncrement:false"`
	SubUUID     string     `gorm:"not null;uniqueIndex:uq_users_sub"`
	Username    string     `gorm:"not null;size:80"`
	Email       string     `gorm:"not null;size:100"`
	Permissions Permission `gorm:"not null;type:bigint;default:0"`
	Active      bool       `gorm:"not null"`
	CreatedAt   int64      `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   int64      `gorm:"not null;autoUpdateTime:false"`
}

func (u *User) IsSuperuser() bool {
	return u.Permissions.Has(PermissionAdministrator)
}
