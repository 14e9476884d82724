package entity

import "strings"

const (
	ImageLogo   = "logo"
	ImagePhoto1 = "photo1"
	ImagePhoto2 = "photo2"
	ImagePhoto3 = "photo3"
	ImagePhoto4 = "photo4"
)

// ImageFields lists every image slot of a Subscriber, logo first.
var ImageFields = []string{ImageLogo, ImagePhoto1, ImagePhoto2, ImagePhoto3, ImagePhoto4}

// Subscriber is the public profile of a Company.
// Image columns hold storage keys, never URLs.
type Subscriber struct {
	ID           int64   `gorm:"primaryKey;autoIncrement:false"`
	CompanyID    string  `gorm:"not null;type:varchar(36);uniqueIndex:uq_subscribers_company"`
	Username     string  `gorm:"not null;size:30;uniqueIndex:uq_subscribers_username"`
	InCharge     string  `gorm:"not null;size:20"`
	Description  string  `gorm:"not null;size:500"`
	OpeningHours string  `gorm:"not null;size:100"`
	OpeningDate  *string `gorm:"size:10"`
	WhatsApp     string  `gorm:"column:whatsapp;not null;size:200"`
	Website      string  `gorm:"not null;size:100"`
	Instagram    string  `gorm:"not null;size:200"`
	Facebook     string  `gorm:"not null;size:200"`
	MapEmbed     string  `gorm:"not null;size:600"`
	VideoID      string  `gorm:"not null;size:16"`
	Logo         string  `gorm:"not null;size:255"`
	Photo1       string  `gorm:"column:photo1;not null;size:255"`
	Photo2       string  `gorm:"column:photo2;not null;size:255"`
	Photo3       string  `gorm:"column:photo3;not null;size:255"`
	Photo4       string  `gorm:"column:photo4;not null;size:255"`
	Notes        string  `gorm:"not null;size:120"`
	UserID       int64   `gorm:"not null;index"`
	Active       bool    `gorm:"not null;index"`
	CreatedAt    int64   `gorm:"not null;autoCreateTime:false"`
	UpdatedAt    int64   `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Company *Company `gorm:"foreignKey:CompanyID;references:ID;constraint:OnDelete:RESTRICT"`
	User    *User    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:RESTRICT"`
}

// Normalize runs before every write.
func (s *Subscriber) Normalize() {
	s.Username = strings.ToLower(strings.TrimSpace(s.Username))
}

// ImageKey returns the stored key of the given image field.
func (s *Subscriber) ImageKey(field string) string {
	if p := s.imageRef(field); p != nil {
		return *p
	}
	return ""
}

// SetImageKey replaces the key of the given image field, ignoring unknown fields.
func (s *Subscriber) SetImageKey(field, key string) {
	if p := s.imageRef(field); p != nil {
		*p = key
	}
}

func (s *Subscriber) imageRef(field string) *string {
	switch field {
	case ImageLogo:
		return &s.Logo
	case ImagePhoto1:
		return &s.Photo1
	case ImagePhoto2:
		return &s.Photo2
	case ImagePhoto3:
		return &s.Photo3
	case ImagePhoto4:
		return &s.Photo4
	default:
		return nil
	}
}
