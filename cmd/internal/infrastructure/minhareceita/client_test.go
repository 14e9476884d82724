package minhareceita

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBody = `{
	"cnpj": "26005330000163",
	"razao_social": "Padaria Sao Joao Ltda",
	"nome_fantasia": "Padaria Sao Joao",
	"natureza_juridica": "Sociedade Empresaria Limitada",
	"descricao_situacao_cadastral": "ATIVA",
	"email": "CONTATO@PADARIA.COM",
	"ddd_telefone_1": "7133334444",
	"ddd_telefone_2": "",
	"uf": "ba",
	"descricao_tipo_de_logradouro": "RUA",
	"logradouro": "DAS FLORES",
	"numero": "10",
	"complemento": "",
	"bairro": "CENTRO",
	"municipio": "SALVADOR",
	"cep": "40000000",
	"qsa": [{"nome_socio": "JOAO", "qualificacao_socio": "Socio-Administrador", "codigo_qualificacao_socio": 49, "faixa_etaria": "Entre 31 a 40 anos"}]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/26005330000163":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(sampleBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetByCNPJ(t *testing.T) {
	srv := newTestServer(t)

	company, err := NewClient(srv.URL).GetByCNPJ(context.Background(), "26005330000163")
	require.NoError(t, err)

	assert.Equal(t, "PADARIA SAO JOAO LTDA", company.LegalName)
	assert.Equal(t, "PADARIA SAO JOAO", company.TradeName)
	assert.Equal(t, StatusActive, company.Status)
	assert.Equal(t, "contato@padaria.com", company.Email)
	assert.Equal(t, "(71)33334444", company.Phone1)
	assert.Empty(t, company.Phone2)
	assert.Equal(t, "BA", company.State)
	assert.Equal(t, "SALVADOR", company.City)
	assert.Equal(t, "RUA DAS FLORES, 10, CENTRO, 40000000", company.Address)
	require.Len(t, company.Partners, 1)
	assert.Equal(t, 49, company.Partners[0].RoleCode)
}

func TestGetByCNPJNotFound(t *testing.T) {
	srv := newTestServer(t)

	_, err := NewClient(srv.URL).GetByCNPJ(context.Background(), "11222333000181")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "(11)988887777", formatPhone("11988887777"))
	assert.Equal(t, "(11)33334444", formatPhone("11 3333-4444"))
	assert.Empty(t, formatPhone("123"))
}
