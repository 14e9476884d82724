package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"simpleguide/cmd/internal/contract"
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/utils"
	"simpleguide/cmd/internal/utils/apierror"
)

type LookupService interface {
	LookupCNPJ(ctx context.Context, actor *entity.User, raw string) (*contract.LookupResponse, apierror.ErrorResponse)
}

type DefaultLookupRoute struct {
	LookupService LookupService
}

func NewLookupRoute(lookupService LookupService) *DefaultLookupRoute {
	return &DefaultLookupRoute{LookupService: lookupService}
}

func (l *DefaultLookupRoute) GetCompany(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	cnpj := strings.TrimSpace(c.Param("cnpj"))
	if cnpj == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("cnpj"))
	}

	company, apierr := l.LookupService.LookupCNPJ(c.Request().Context(), user, cnpj)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, company)
}
