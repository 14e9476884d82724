package entity

// State is a Brazilian federal unit (UF).
type State struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// States holds the 27 federal units in display order.
var States = []State{
	{"AC", "Acre"},
	{"AL", "Alagoas"},
	{"AP", "Amapá"},
	{"AM", "Amazonas"},
	{"BA", "Bahia"},
	{"CE", "Ceará"},
	{"DF", "Distrito Federal"},
	{"ES", "Espírito Santo"},
	{"GO", "Goiás"},
	{"MA", "Maranhão"},
	{"MT", "Mato Grosso"},
	{"MS", "Mato Grosso do Sul"},
	{"MG", "Minas Gerais"},
	{"PA", "Pará"},
	{"PB", "Paraíba"},
	{"PR", "Paraná"},
	{"PE", "Pernambuco"},
	{"PI", "Piauí"},
	{"RJ", "Rio de Janeiro"},
	{"RN", "Rio Grande do Norte"},
	{"RS", "Rio Grande do Sul"},
	{"RO", "Rondônia"},
	{"RR", "Roraima"},
	{"SC", "Santa Catarina"},
	{"SP", "São Paulo"},
	{"SE", "Sergipe"},
	{"TO", "Tocantins"},
}

func IsValidState(code string) bool {
	for _, s := range States {
		if s.Code == code {
			return true
		}
	}
	return false
}
