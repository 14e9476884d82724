package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"simpleguide/cmd/internal/contract"
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/domain/policy"
	"simpleguide/cmd/internal/utils"
	"simpleguide/cmd/internal/utils/apierror"
)

type CategoryRepository interface {
	FindAll() ([]*entity.Category, error)
	FindAllActive() ([]*entity.Category, error)
	FindByID(id int64) (*entity.Category, error)
	Create(category *entity.Category) error
	Save(category *entity.Category) error
	Delete(category *entity.Category) error
}

type DefaultCategoryService struct {
	CategoryRepo CategoryRepository
	Validate     *validator.Validate
	Policy       *policy.RecordPolicy
}

func NewCategoryService(categoryRepo CategoryRepository, validate *validator.Validate, recordPolicy *policy.RecordPolicy) *DefaultCategoryService {
	return &DefaultCategoryService{
		CategoryRepo: categoryRepo,
		Validate:     validate,
		Policy:       recordPolicy,
	}
}

// GetCategories lists every category. Categories are shared by all staff.
func (s *DefaultCategoryService) GetCategories(actor *entity.User) ([]*contract.CategoryResponse, apierror.ErrorResponse) {
	categories, err := s.CategoryRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch categories: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.CategoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = toCategoryResponse(c)
	}
	return resp, nil
}

// GetActiveCategories feeds the public search filters.
func (s *DefaultCategoryService) GetActiveCategories() ([]*contract.PublicCategory, apierror.ErrorResponse) {
	categories, err := s.CategoryRepo.FindAllActive()
	if err != nil {
		log.Errorf("failed to fetch active categories: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.PublicCategory, len(categories))
	for i, c := range categories {
		resp[i] = toPublicCategory(c)
	}
	return resp, nil
}

func (s *DefaultCategoryService) GetCategory(actor *entity.User, id int64) (*contract.CategoryResponse, apierror.ErrorResponse) {
	category, apierr := s.fetchCategory(id)
	if apierr != nil {
		return nil, apierr
	}
	return toCategoryResponse(category), nil
}

func (s *DefaultCategoryService) CreateCategory(actor *entity.User, req *contract.CategoryRequest) (*contract.CategoryResponse, apierror.ErrorResponse) {
	if perr := s.Policy.CanManageCategories(actor); perr != nil {
		return nil, perr
	}

	if errs := collectErrors(s.Validate, req); !errs.Empty() {
		return nil, errs
	}

	now := utils.NowUTC()
	category := &entity.Category{
		Name:      req.Name,
		UserID:    actor.ID,
		Active:    boolOr(req.Active, true),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.CategoryRepo.Create(category); err != nil {
		return nil, mapRepoError("create category", err)
	}
	return toCategoryResponse(category), nil
}

func (s *DefaultCategoryService) UpdateCategory(actor *entity.User, id int64, req *contract.CategoryRequest) (*contract.CategoryResponse, apierror.ErrorResponse) {
	if perr := s.Policy.CanManageCategories(actor); perr != nil {
		return nil, perr
	}

	if errs := collectErrors(s.Validate, req); !errs.Empty() {
		return nil, errs
	}

	category, apierr := s.fetchCategory(id)
	if apierr != nil {
		return nil, apierr
	}

	category.Name = req.Name
	category.Active = boolOr(req.Active, category.Active)
	category.UpdatedAt = utils.NowUTC()

	if err := s.CategoryRepo.Save(category); err != nil {
		return nil, mapRepoError("update category", err)
	}
	return toCategoryResponse(category), nil
}

// DeleteCategory is rejected while a company uses the category as its
// primary one. Secondary references are cleared.
func (s *DefaultCategoryService) DeleteCategory(actor *entity.User, id int64) apierror.ErrorResponse {
	if perr := s.Policy.CanManageCategories(actor); perr != nil {
		return perr
	}

	category, apierr := s.fetchCategory(id)
	if apierr != nil {
		return apierr
	}

	if err := s.CategoryRepo.Delete(category); err != nil {
		return mapRepoError("delete category", err)
	}
	return nil
}

func (s *DefaultCategoryService) fetchCategory(id int64) (*entity.Category, apierror.ErrorResponse) {
	category, err := s.CategoryRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch category %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if category == nil {
		return nil, apierror.NotFoundError
	}
	return category, nil
}

func toCategoryResponse(c *entity.Category) *contract.CategoryResponse {
	return &contract.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Active:    c.Active,
		OwnerID:   c.UserID,
		CreatedAt: utils.FormatEpoch(c.CreatedAt),
		UpdatedAt: utils.FormatEpoch(c.UpdatedAt),
	}
}

func toPublicCategory(c *entity.Category) *contract.PublicCategory {
	if c == nil {
		return nil
	}
	return &contract.PublicCategory{ID: c.ID, Name: c.Name}
}
