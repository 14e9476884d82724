package minhareceita

import (
	"strings"
)

type RegStatus string

const (
	StatusActive    RegStatus = "ACTIVE"
	StatusClosed    RegStatus = "CLOSED"
	StatusSuspended RegStatus = "SUSPENDED"
	StatusUnfit     RegStatus = "UNFIT"
	StatusUnknown   RegStatus = "UNKNOWN"
)

// Company is what the registry knows about a CNPJ, already shaped like the
// fields of a directory company so it can prefill a registration.
type Company struct {
	CNPJ        string     `json:"cnpj"`
	LegalName   string     `json:"legal_name"`
	TradeName   string     `json:"trade_name"`
	LegalNature string     `json:"legal_nature"`
	Status      RegStatus  `json:"status"`
	Email       string     `json:"email"`
	Phone1      string     `json:"phone1"`
	Phone2      string     `json:"phone2"`
	State       string     `json:"state"`
	City        string     `json:"city"`
	Address     string     `json:"address"`
	Partners    []*Partner `json:"partners"`
}

type Partner struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	RoleCode int    `json:"role_code"`
	AgeRange string `json:"age_range"`
}

type companyResponse struct {
	CNPJ               string `json:"cnpj"`
	LegalName          string `json:"razao_social"`
	TradeName          string `json:"nome_fantasia"`
	LegalNature        string `json:"natureza_juridica"`
	RegistrationStatus string `json:"descricao_situacao_cadastral"`
	Email              string `json:"email"`
	Phone1             string `json:"ddd_telefone_1"`
	Phone2             string `json:"ddd_telefone_2"`
	State              string `json:"uf"`

	AddressType         string `json:"descricao_tipo_de_logradouro"`
	AddressStreetName   string `json:"logradouro"`
	AddressNumber       string `json:"numero"`
	AddressComplement   string `json:"complemento"`
	AddressNeighborhood string `json:"bairro"`
	AddressCity         string `json:"municipio"`
	AddressZipCode      string `json:"cep"`

	Partners []*partnerResponse `json:"qsa"`
}

type partnerResponse struct {
	Name     string `json:"nome_socio"`
	Role     string `json:"qualificacao_socio"`
	RoleCode int    `json:"codigo_qualificacao_socio"`
	AgeRange string `json:"faixa_etaria"`
}

func (c *companyResponse) ToDomain() *Company {
	partners := make([]*Partner, 0, len(c.Partners))
	for _, p := range c.Partners {
		partners = append(partners, &Partner{
			Name:     p.Name,
			Role:     p.Role,
			RoleCode: p.RoleCode,
			AgeRange: p.AgeRange,
		})
	}

	return &Company{
		CNPJ:        c.CNPJ,
		LegalName:   strings.ToUpper(strings.TrimSpace(c.LegalName)),
		TradeName:   strings.ToUpper(strings.TrimSpace(c.TradeName)),
		LegalNature: c.LegalNature,
		Status:      translateStatus(c.RegistrationStatus),
		Email:       strings.ToLower(strings.TrimSpace(c.Email)),
		Phone1:      formatPhone(c.Phone1),
		Phone2:      formatPhone(c.Phone2),
		State:       strings.ToUpper(c.State),
		City:        c.AddressCity,
		Address:     c.address(),
		Partners:    partners,
	}
}

func (c *companyResponse) address() string {
	parts := []string{
		strings.TrimSpace(c.AddressType + " " + c.AddressStreetName),
		c.AddressNumber,
		c.AddressComplement,
		c.AddressNeighborhood,
		c.AddressZipCode,
	}

	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

// formatPhone turns the registry "DDDNNNNNNNN" form into "(DD)NNNNNNNN".
// Anything that is not 10 or 11 digits is dropped.
func formatPhone(raw string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	if len(digits) != 10 && len(digits) != 11 {
		return ""
	}
	return "(" + digits[:2] + ")" + digits[2:]
}

func translateStatus(status string) RegStatus {
	switch strings.ToUpper(status) {
	case "ATIVA":
		return StatusActive
	case "BAIXADA":
		return StatusClosed
	case "SUSPENSA":
		return StatusSuspended
	case "INAPTA":
		return StatusUnfit
	default:
		return StatusUnknown
	}
}
