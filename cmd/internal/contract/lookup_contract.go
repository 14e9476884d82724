package contract

type LookupResponse struct {
	CNPJ        string             `json:"cnpj"`
	LegalName   string             `json:"legal_name"`
	TradeName   string             `json:"trade_name"`
	LegalNature string             `json:"legal_nature"`
	RegStatus   string             `json:"registration_status"`
	Email       string             `json:"email,omitempty"`
	Phone1      string             `json:"phone1,omitempty"`
	Phone2      string             `json:"phone2,omitempty"`
	State       string             `json:"state"`
	City        string             `json:"city"`
	Address     string             `json:"address,omitempty"`
	Partners    []*PartnerResponse `json:"partners"`
	Cached      bool               `json:"cached"`
}

type PartnerResponse struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	RoleCode int    `json:"role_code"`
	AgeRange string `json:"age_range"`
}
