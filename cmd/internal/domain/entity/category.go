package entity

import "strings"

type Category struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	Name      string `gorm:"not null;size:20;uniqueIndex:uq_categories_name"`
	UserID    int64  `gorm:"not null;index"`
	Active    bool   `gorm:"not null"`
	CreatedAt int64  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:false"`

	// Relations
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:RESTRICT"`
}

// Normalize runs before every write.
func (c *Category) Normalize() {
	c.Name = strings.ToUpper(strings.TrimSpace(c.Name))
}
