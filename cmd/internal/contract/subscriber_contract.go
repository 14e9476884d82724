package contract

// SubscriberRequest travels as the 'json_payload' field of a multipart form,
// images are sent as file fields named after the image slot (logo, photo1...).
type SubscriberRequest struct {
	CompanyID    string  `json:"company_id" validate:"required,uuid"`
	Username     string  `json:"username" validate:"required,username,max=30"`
	InCharge     string  `json:"in_charge" validate:"required,max=20"`
	Description  string  `json:"description" validate:"omitempty,max=500"`
	OpeningHours string  `json:"opening_hours" validate:"omitempty,max=100"`
	OpeningDate  *string `json:"opening_date" validate:"omitempty,datetime=2006-01-02"`
	WhatsApp     string  `json:"whatsapp" validate:"omitempty,url,max=200"`
	Website      string  `json:"website" validate:"omitempty,url,max=100"`
	Instagram    string  `json:"instagram" validate:"omitempty,url,max=200"`
	Facebook     string  `json:"facebook" validate:"omitempty,url,max=200"`
	MapEmbed     string  `json:"map_embed" validate:"omitempty,max=600"`
	VideoID      string  `json:"video_id" validate:"omitempty,max=16"`
	Notes        string  `json:"notes" validate:"omitempty,max=120"`
	Active       *bool   `json:"active"`

	// RemovePhotos clears optional photo slots on update.
	RemovePhotos []string `json:"remove_photos" validate:"omitempty,max=4,dive,oneof=photo1 photo2 photo3 photo4"`
}

// ImageUpload is one file of the multipart form, already read into memory.
type ImageUpload struct {
	Field    string
	Filename string
	Size     int64
	Data     []byte
}

type SubscriberResponse struct {
	ID           int64             `json:"id,string"`
	Username     string            `json:"username"`
	Company      *CompanyResponse  `json:"company"`
	InCharge     string            `json:"in_charge"`
	Description  string            `json:"description"`
	OpeningHours string            `json:"opening_hours"`
	OpeningDate  *string           `json:"opening_date"`
	WhatsApp     string            `json:"whatsapp,omitempty"`
	Website      string            `json:"website,omitempty"`
	Instagram    string            `json:"instagram,omitempty"`
	Facebook     string            `json:"facebook,omitempty"`
	MapEmbed     string            `json:"map_embed,omitempty"`
	VideoID      string            `json:"video_id,omitempty"`
	Images       map[string]string `json:"images"`
	Notes        string            `json:"notes,omitempty"`
	Active       bool              `json:"active"`
	OwnerID      int64             `json:"owner_id,string"`
	CreatedAt    string            `json:"created_at"`
	UpdatedAt    string            `json:"updated_at"`
}
