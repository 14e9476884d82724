package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"simpleguide/cmd/internal/contract"
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/utils"
	"simpleguide/cmd/internal/utils/apierror"
)

type CompanyService interface {
	GetCompanies(actor *entity.User) ([]*contract.CompanyResponse, apierror.ErrorResponse)
	GetCompany(actor *entity.User, id string) (*contract.CompanyResponse, apierror.ErrorResponse)
	CreateCompany(actor *entity.User, req *contract.CompanyRequest) (*contract.CompanyResponse, apierror.ErrorResponse)
	UpdateCompany(actor *entity.User, id string, req *contract.CompanyRequest) (*contract.CompanyResponse, apierror.ErrorResponse)
	DeleteCompany(actor *entity.User, id string) apierror.ErrorResponse
}

type DefaultCompanyRoute struct {
	CompanyService CompanyService
}

func NewCompanyDefault(companyService CompanyService) *DefaultCompanyRoute {
	return &DefaultCompanyRoute{CompanyService: companyService}
}

func (r *DefaultCompanyRoute) GetCompanies(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	companies, apierr := r.CompanyService.GetCompanies(user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"companies": companies}
	return c.JSON(http.StatusOK, &resp)
}

func (r *DefaultCompanyRoute) GetCompany(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	company, apierr := r.CompanyService.GetCompany(user, strings.TrimSpace(c.Param("id")))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, company)
}

func (r *DefaultCompanyRoute) CreateCompany(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CompanyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	company, apierr := r.CompanyService.CreateCompany(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, company)
}

func (r *DefaultCompanyRoute) UpdateCompany(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CompanyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	company, apierr := r.CompanyService.UpdateCompany(user, strings.TrimSpace(c.Param("id")), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, company)
}

func (r *DefaultCompanyRoute) DeleteCompany(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if apierr := r.CompanyService.DeleteCompany(user, strings.TrimSpace(c.Param("id"))); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
