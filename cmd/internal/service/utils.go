package service

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"simpleguide/cmd/internal/domain/database/repository"
	"simpleguide/cmd/internal/utils"
	"simpleguide/cmd/internal/utils/apierror"
	"simpleguide/cmd/internal/validators"
)

// collectErrors sanitizes and validates req, always returning a
// StructuredError so record-level checks can append to it.
func collectErrors(validate *validator.Validate, req any) *apierror.StructuredError {
	utils.Sanitize(req)

	if err := validate.Struct(req); err != nil {
		if verr := apierror.FromValidationError(err); verr != nil {
			return verr
		}
		log.Errorf("unexpected validation failure: %v", err)
	}
	return apierror.NewStructured(http.StatusBadRequest)
}

// addFormatError appends a *validators.FormatError to errs, ignoring nil.
func addFormatError(errs *apierror.StructuredError, err error) {
	var ferr *validators.FormatError
	if errors.As(err, &ferr) {
		errs.Add(ferr.Field, ferr.Message)
	}
}

// mapRepoError turns repository write failures into API errors. Anything
// that is not a uniqueness or referential problem is logged.
func mapRepoError(action string, err error) apierror.ErrorResponse {
	var uerr *repository.UniquenessError
	if errors.As(err, &uerr) {
		return apierror.NewUniquenessError(uerr.Field)
	}

	var rerr *repository.ReferentialError
	if errors.As(err, &rerr) {
		return apierror.NewReferentialError(rerr.Entity, rerr.Dependent)
	}

	log.Errorf("failed to %s: %v", action, err)
	return apierror.InternalServerError
}

func ParseID(raw string) (int64, apierror.ErrorResponse) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.InvalidIDError
	}
	return id, nil
}

func mediaURL(base, key string) string {
	if key == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/" + key
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
