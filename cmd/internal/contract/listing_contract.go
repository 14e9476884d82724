package contract

// PublicSubscriber is the public view of a profile. Notes, owner and
// activity flags never leave the staff API.
type PublicSubscriber struct {
	Username     string            `json:"username"`
	Name         string            `json:"name"`
	InCharge     string            `json:"in_charge"`
	Description  string            `json:"description,omitempty"`
	OpeningHours string            `json:"opening_hours,omitempty"`
	OpeningDate  string            `json:"opening_date,omitempty"`
	Email        string            `json:"email"`
	Phone1       string            `json:"phone1"`
	Phone2       string            `json:"phone2,omitempty"`
	State        string            `json:"state"`
	City         string            `json:"city"`
	Address      string            `json:"address,omitempty"`
	Categories   []*PublicCategory `json:"categories,omitempty"`
	WhatsApp     string            `json:"whatsapp,omitempty"`
	Website      string            `json:"website,omitempty"`
	Instagram    string            `json:"instagram,omitempty"`
	Facebook     string            `json:"facebook,omitempty"`
	MapEmbed     string            `json:"map_embed,omitempty"`
	MapURL       string            `json:"map_url,omitempty"`
	VideoID      string            `json:"video_id,omitempty"`
	LogoURL      string            `json:"logo_url"`
	PhotoURLs    []string          `json:"photo_urls"`
}

type Pagination struct {
	Page     int   `json:"page"`
	NumPages int   `json:"num_pages"`
	Total    int64 `json:"total"`
	HasPrev  bool  `json:"has_prev"`
	HasNext  bool  `json:"has_next"`
}

type SubscriberPage struct {
	Subscribers []*PublicSubscriber `json:"subscribers"`
	Pagination  Pagination          `json:"pagination"`
}

// SearchQuery echoes the raw search parameters so pages can keep the form state.
type SearchQuery struct {
	Term     string `json:"search_term"`
	Category string `json:"category"`
	Location string `json:"location"`
}

type SearchPage struct {
	SubscriberPage
	Query SearchQuery `json:"query"`
}

type StateResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
