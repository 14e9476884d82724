package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"simpleguide/cmd/internal/contract"
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/utils"
	"simpleguide/cmd/internal/utils/apierror"
)

type CategoryService interface {
	GetCategories(actor *entity.User) ([]*contract.CategoryResponse, apierror.ErrorResponse)
	GetActiveCategories() ([]*contract.PublicCategory, apierror.ErrorResponse)
	GetCategory(actor *entity.User, id int64) (*contract.CategoryResponse, apierror.ErrorResponse)
	CreateCategory(actor *entity.User, req *contract.CategoryRequest) (*contract.CategoryResponse, apierror.ErrorResponse)
	UpdateCategory(actor *entity.User, id int64, req *contract.CategoryRequest) (*contract.CategoryResponse, apierror.ErrorResponse)
	DeleteCategory(actor *entity.User, id int64) apierror.ErrorResponse
}

type DefaultCategoryRoute struct {
	CategoryService CategoryService
}

func NewCategoryDefault(categoryService CategoryService) *DefaultCategoryRoute {
	return &DefaultCategoryRoute{CategoryService: categoryService}
}

func (r *DefaultCategoryRoute) GetCategories(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	categories, apierr := r.CategoryService.GetCategories(user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"categories": categories}
	return c.JSON(http.StatusOK, &resp)
}

// GetActiveCategories is public, it feeds the search filters.
func (r *DefaultCategoryRoute) GetActiveCategories(c echo.Context) error {
	categories, apierr := r.CategoryService.GetActiveCategories()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"categories": categories}
	return c.JSON(http.StatusOK, &resp)
}

func (r *DefaultCategoryRoute) GetCategory(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	category, apierr := r.CategoryService.GetCategory(user, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, category)
}

func (r *DefaultCategoryRoute) CreateCategory(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	category, apierr := r.CategoryService.CreateCategory(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, category)
}

func (r *DefaultCategoryRoute) UpdateCategory(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	var req contract.CategoryRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	category, apierr := r.CategoryService.UpdateCategory(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, category)
}

func (r *DefaultCategoryRoute) DeleteCategory(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	if apierr := r.CategoryService.DeleteCategory(user, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
