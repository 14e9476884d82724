package validators

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"simpleguide/cmd/internal/domain/entity"
)

const (
	UsernameMinLength = 6
	UsernameMaxLength = 30

	LogoMaxSizeKB  = 200
	PhotoMaxSizeKB = 500
)

var (
	// DDD 11-19, 20-89 and 91-99, followed by a landline or a 9-prefixed mobile number.
	phoneRegex    = regexp.MustCompile(`^\((?:1[1-9]|9[1-9]|[2-8][0-9])\)(?:9\d{8}|\d{8})$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
)

// FormatError reports a value that does not follow the expected format.
type FormatError struct {
	Field   string
	Message string
}

func (e *FormatError) Error() string {
	return e.Field + ": " + e.Message
}

func ValidatePhone(value string) (string, error) {
	if !phoneRegex.MatchString(value) {
		return "", &FormatError{
			Field:   "phone",
			Message: "Phone must be in the format (DD)DDDDDDDD or (DD)9DDDDDDDD",
		}
	}
	return value, nil
}

// ValidateDocument only checks the character set. Length depends on the
// document kind, see CheckDocumentLength.
func ValidateDocument(value string) (string, error) {
	if !isOnlyDigits(value) {
		return "", &FormatError{
			Field:   "document",
			Message: "Document must contain only numbers",
		}
	}
	return value, nil
}

func ValidateUsername(value string) (string, error) {
	if !usernameRegex.MatchString(value) {
		return "", &FormatError{
			Field:   "username",
			Message: "Username must start with a letter and contain only letters, numbers and underscores",
		}
	}

	if len(value) < UsernameMinLength {
		return "", &FormatError{
			Field:   "username",
			Message: fmt.Sprintf("Username must have at least %d characters", UsernameMinLength),
		}
	}
	return value, nil
}

// CheckDocumentLength is the record-level rule: 11 digits for a CPF, 14 for a CNPJ.
func CheckDocumentLength(document string, isCPF bool) error {
	expected, kind := entity.CNPJLength, "CNPJ"
	if isCPF {
		expected, kind = entity.CPFLength, "CPF"
	}

	if len(document) != expected {
		return &FormatError{
			Field:   "document",
			Message: fmt.Sprintf("A %s must have exactly %d digits", kind, expected),
		}
	}
	return nil
}

// CheckImageSize enforces the per-field upload limit.
// Logos are capped at 200KB and photos at 500KB.
func CheckImageSize(field string, size int64) error {
	limit := MaxImageSizeKB(field)
	if size > int64(limit)*1024 {
		return &FormatError{
			Field:   field,
			Message: fmt.Sprintf("The image size exceeds the maximum allowed size of %dKB.", limit),
		}
	}
	return nil
}

func MaxImageSizeKB(field string) int {
	if field == entity.ImageLogo {
		return LogoMaxSizeKB
	}
	return PhotoMaxSizeKB
}

// Register binds the custom tags used by request structs and makes errors
// report the json name of a field instead of its Go name.
func Register(validate *validator.Validate) {
	validate.RegisterTagNameFunc(jsonName)
	_ = validate.RegisterValidation("phone", Phone)
	_ = validate.RegisterValidation("document", Document)
	_ = validate.RegisterValidation("username", Username)
	_ = validate.RegisterValidation("uf", UF)
}

func Phone(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := ValidatePhone(val)
	return err == nil
}

func Document(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := ValidateDocument(val)
	return err == nil
}

func Username(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := ValidateUsername(val)
	return err == nil
}

func UF(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return entity.IsValidState(strings.ToUpper(val))
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func isOnlyDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
