package contract

type CategoryRequest struct {
	Name   string `json:"name" validate:"required,max=20"`
	Active *bool  `json:"active"`
}

type CategoryResponse struct {
	ID        int64  `json:"id,string"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	OwnerID   int64  `json:"owner_id,string"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// PublicCategory is what filter widgets need.
type PublicCategory struct {
	ID   int64  `json:"id,string"`
	Name string `json:"name"`
}
