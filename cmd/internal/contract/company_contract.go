package contract

// CompanyRequest is used for both creation and full updates.
// Document length is checked against IsCPF after field validation.
type CompanyRequest struct {
	Name        string `json:"name" validate:"required,max=40"`
	Razao       string `json:"razao" validate:"required,max=100"`
	Document    string `json:"document" validate:"required,document,max=14"`
	IsCPF       bool   `json:"is_cpf"`
	Email       string `json:"email" validate:"required,email,max=100"`
	Phone1      string `json:"phone1" validate:"required,phone"`
	Phone2      string `json:"phone2" validate:"omitempty,phone"`
	State       string `json:"state" validate:"required,uf"`
	City        string `json:"city" validate:"required,max=20"`
	Address     string `json:"address" validate:"omitempty,max=200"`
	Category1ID int64  `json:"category1_id,string" validate:"required"`
	Category2ID *int64 `json:"category2_id,string"`
	Active      *bool  `json:"active"`
}

type CompanyResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Razao     string          `json:"razao"`
	Document  string          `json:"document"`
	IsCPF     bool            `json:"is_cpf"`
	Email     string          `json:"email"`
	Phone1    string          `json:"phone1"`
	Phone2    string          `json:"phone2,omitempty"`
	State     string          `json:"state"`
	City      string          `json:"city"`
	Address   string          `json:"address,omitempty"`
	Category1 *PublicCategory `json:"category1"`
	Category2 *PublicCategory `json:"category2,omitempty"`
	Active    bool            `json:"active"`
	OwnerID   int64           `json:"owner_id,string"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}
