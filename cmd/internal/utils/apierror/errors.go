package apierror

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"net/http"
	"strings"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

func (s *StructuredError) Empty() bool {
	return len(s.Errors) == 0
}

var (
	MalformedJSONError    = NewSimple(400, "Malformed JSON body")
	MalformedBodyError    = NewSimple(400, "Malformed request body")
	InternalServerError   = NewSimple(500, "Internal server error")
	ServiceUnavailable    = NewSimple(503, "Service unavailable")
	InvalidMediaTypeError = NewSimple(415, "Unsupported media type")
	FormJSONRequiredError = NewSimple(400, "Multipart forms must carry a 'json_payload' field")

	NotFoundError  = NewSimple(404, "Resource not found")
	InvalidIDError = NewSimple(400, "The provided ID is invalid, IDs are usually int64 > 0")

	InvalidCategoryError = NewSimple(400, "Category must be 't' or a numeric category ID")
	InvalidCNPJError     = NewSimple(400, "The provided CNPJ is invalid")

	/*
	 * Used for authentications
	 */
	UnauthorizedError           = NewSimple(401, "Unauthorized")
	InvalidAuthTokenError       = NewSimple(401, "Invalid or expired authorization token")
	MissingAccessError          = NewSimple(403, "Missing access")
	UserAlreadyExistsError      = NewSimple(409, "User already exists")
	IDPInvalidPasswordError     = NewSimple(400, "Provided password does not meet requirements")
	IDPExistingEmailError       = NewSimple(400, "Email already exists")
	IDPUserNotFoundError        = NewSimple(404, "User not found")
	IDPUserNotConfirmedError    = NewSimple(400, "User is not confirmed yet")
	IDPCredentialsMismatchError = NewSimple(400, "Credentials mismatch")
	IDPNewPasswordRequiredError = NewSimple(400, "A new password must be set before logging in")
	IDPInvalidParameterError    = NewSimple(400, "Invalid parameters provided")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "email":
			problems[field] = append(problems[field], "Value must be a valid email address")
		case "url":
			problems[field] = append(problems[field], "Value must be a valid URL")
		case "datetime":
			problems[field] = append(problems[field], "Value must be a date in the format "+fe.Param())
		case "phone":
			problems[field] = append(problems[field], "Phone must be in the format (DD)DDDDDDDD or (DD)9DDDDDDDD")
		case "document":
			problems[field] = append(problems[field], "Document must contain only numbers")
		case "username":
			problems[field] = append(problems[field], "Username must start with a letter, contain only letters, numbers and underscores and have at least 6 characters")
		case "uf":
			problems[field] = append(problems[field], "Value must be a valid state code")

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}

func NewMissingParamError(name string) *APIError {
	return NewSimple(http.StatusBadRequest, "Missing required parameter '%s'", name)
}

func NewForbiddenError(msg string) *APIError {
	return NewSimple(http.StatusForbidden, msg)
}

func NewPermissionError(perm int64) *APIError {
	return NewSimple(http.StatusForbidden, "Missing required permission: %d", perm)
}

// NewUniquenessError reports a duplicated value on a unique field.
func NewUniquenessError(field string) *StructuredError {
	s := NewStructured(http.StatusConflict)
	s.Add(field, "A record with this "+field+" already exists")
	return s
}

// NewReferentialError reports a delete blocked by dependent records.
func NewReferentialError(entity, dependent string) *APIError {
	return NewSimple(http.StatusConflict, "Cannot delete %s: it is still referenced by %s", entity, dependent)
}
