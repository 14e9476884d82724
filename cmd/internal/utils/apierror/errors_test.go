package apierror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Bio   string `validate:"max=3"`
}

func TestFromValidationErrorCollectsEveryField(t *testing.T) {
	err := validator.New().Struct(&sample{Email: "nope", Bio: "too long"})
	s := FromValidationError(err)
	require.NotNil(t, s)

	assert.Equal(t, http.StatusBadRequest, s.Code())
	assert.Equal(t, []string{"This field is required"}, s.Errors["name"])
	assert.Equal(t, []string{"Value must be a valid email address"}, s.Errors["email"])
	assert.Equal(t, []string{"Value is too long, max: 3"}, s.Errors["bio"])
}

func TestFromValidationErrorIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, FromValidationError(errors.New("boom")))
}

func TestNewUniquenessError(t *testing.T) {
	s := NewUniquenessError("razao")
	assert.Equal(t, http.StatusConflict, s.Code())
	assert.Len(t, s.Errors["razao"], 1)
}
