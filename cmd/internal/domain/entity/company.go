package entity

import "strings"

const (
	CPFLength  = 11
	CNPJLength = 14
)

// Company is the registered organization behind a public profile.
// Razao is the legal name and, together with Document, identifies it uniquely.
type Company struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	Name        string `gorm:"not null;size:40"`
	Razao       string `gorm:"not null;size:100;uniqueIndex:uq_companies_razao"`
	Document    string `gorm:"not null;size:14;uniqueIndex:uq_companies_document"`
	IsCPF       bool   `gorm:"column:is_cpf;not null"`
	Email       string `gorm:"not null;size:100"`
	Phone1      string `gorm:"column:phone1;not null;size:14"`
	Phone2      string `gorm:"column:phone2;not null;size:14"`
	State       string `gorm:"not null;size:2;index"`
	City        string `gorm:"not null;size:20"`
	Address     string `gorm:"not null;size:200"`
	Category1ID int64  `gorm:"column:category1_id;not null;index"`
	Category2ID *int64 `gorm:"column:category2_id;index"`
	UserID      int64  `gorm:"not null;index"`
	Active      bool   `gorm:"not null"`
	CreatedAt   int64  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   int64  `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Category1 *Category `gorm:"foreignKey:Category1ID;references:ID;constraint:OnDelete:RESTRICT"`
	Category2 *Category `gorm:"foreignKey:Category2ID;references:ID;constraint:OnDelete:SET NULL"`
	User      *User     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:RESTRICT"`
}

// Normalize runs before every write.
func (c *Company) Normalize() {
	c.Name = strings.ToUpper(strings.TrimSpace(c.Name))
	c.Razao = strings.ToUpper(strings.TrimSpace(c.Razao))
}

// ExpectedDocumentLength is 11 for a CPF and 14 for a CNPJ.
func (c *Company) ExpectedDocumentLength() int {
	if c.IsCPF {
		return CPFLength
	}
	return CNPJLength
}
