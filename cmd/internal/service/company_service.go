package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"simpleguide/cmd/internal/contract"
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/domain/policy"
	"simpleguide/cmd/internal/utils"
	"simpleguide/cmd/internal/utils/apierror"
	"simpleguide/cmd/internal/validators"
	"strings"
)

type CompanyRepository interface {
	FindAll() ([]*entity.Company, error)
	FindByID(id string) (*entity.Company, error)
	Create(company *entity.Company) error
	Save(company *entity.Company) error
	Delete(company *entity.Company) error
}

type DefaultCompanyService struct {
	CompanyRepo  CompanyRepository
	CategoryRepo CategoryRepository
	Validate     *validator.Validate
	Policy       *policy.RecordPolicy
}

func NewCompanyService(
	companyRepo CompanyRepository,
	categoryRepo CategoryRepository,
	validate *validator.Validate,
	recordPolicy *policy.RecordPolicy,
) *DefaultCompanyService {
	return &DefaultCompanyService{
		CompanyRepo:  companyRepo,
		CategoryRepo: categoryRepo,
		Validate:     validate,
		Policy:       recordPolicy,
	}
}

func (s *DefaultCompanyService) GetCompanies(actor *entity.User) ([]*contract.CompanyResponse, apierror.ErrorResponse) {
	companies, err := s.CompanyRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch companies: %v", err)
		return nil, apierror.InternalServerError
	}

	visible := s.Policy.VisibleCompanies(actor, companies)
	resp := make([]*contract.CompanyResponse, len(visible))
	for i, c := range visible {
		resp[i] = toCompanyResponse(c)
	}
	return resp, nil
}

func (s *DefaultCompanyService) GetCompany(actor *entity.User, id string) (*contract.CompanyResponse, apierror.ErrorResponse) {
	company, apierr := s.fetchVisible(actor, id)
	if apierr != nil {
		return nil, apierr
	}
	return toCompanyResponse(company), nil
}

// CreateCompany registers a company owned by the actor. Field formats and
// the document length are reported together.
func (s *DefaultCompanyService) CreateCompany(actor *entity.User, req *contract.CompanyRequest) (*contract.CompanyResponse, apierror.ErrorResponse) {
	if perr := s.Policy.CanManageCompany(actor, nil); perr != nil {
		return nil, perr
	}

	if errs := s.validate(req); !errs.Empty() {
		return nil, errs
	}

	now := utils.NowUTC()
	company := &entity.Company{
		UserID:    actor.ID,
		Active:    boolOr(req.Active, true),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyCompanyRequest(company, req)

	if err := s.CompanyRepo.Create(company); err != nil {
		return nil, mapRepoError("create company", err)
	}
	return s.reload(company)
}

func (s *DefaultCompanyService) UpdateCompany(actor *entity.User, id string, req *contract.CompanyRequest) (*contract.CompanyResponse, apierror.ErrorResponse) {
	company, apierr := s.fetchVisible(actor, id)
	if apierr != nil {
		return nil, apierr
	}

	if perr := s.Policy.CanManageCompany(actor, company); perr != nil {
		return nil, perr
	}

	if errs := s.validate(req); !errs.Empty() {
		return nil, errs
	}

	applyCompanyRequest(company, req)
	company.Active = boolOr(req.Active, company.Active)
	company.UpdatedAt = utils.NowUTC()

	if err := s.CompanyRepo.Save(company); err != nil {
		return nil, mapRepoError("update company", err)
	}
	return s.reload(company)
}

// DeleteCompany is rejected while a subscriber profile points at the company.
func (s *DefaultCompanyService) DeleteCompany(actor *entity.User, id string) apierror.ErrorResponse {
	company, apierr := s.fetchVisible(actor, id)
	if apierr != nil {
		return apierr
	}

	if perr := s.Policy.CanManageCompany(actor, company); perr != nil {
		return perr
	}

	if err := s.CompanyRepo.Delete(company); err != nil {
		return mapRepoError("delete company", err)
	}
	return nil
}

func (s *DefaultCompanyService) validate(req *contract.CompanyRequest) *apierror.StructuredError {
	errs := collectErrors(s.Validate, req)

	if req.Document != "" {
		addFormatError(errs, validators.CheckDocumentLength(req.Document, req.IsCPF))
	}

	if req.Category1ID != 0 {
		s.checkCategory(errs, "category1_id", req.Category1ID)
	}

	if req.Category2ID != nil {
		s.checkCategory(errs, "category2_id", *req.Category2ID)
	}
	return errs
}

func (s *DefaultCompanyService) checkCategory(errs *apierror.StructuredError, field string, id int64) {
	category, err := s.CategoryRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch category %d: %v", id, err)
		errs.Add(field, "Could not verify category")
		return
	}

	if category == nil {
		errs.Add(field, "Category does not exist")
	}
}

func (s *DefaultCompanyService) fetchVisible(actor *entity.User, id string) (*entity.Company, apierror.ErrorResponse) {
	company, err := s.CompanyRepo.FindByID(strings.TrimSpace(id))
	if err != nil {
		log.Errorf("failed to fetch company %s: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if company == nil {
		return nil, apierror.NotFoundError
	}

	if verr := s.Policy.CheckVisible(actor, company.UserID); verr != nil {
		return nil, verr
	}
	return company, nil
}

// reload fetches the company again so the response carries its categories.
func (s *DefaultCompanyService) reload(company *entity.Company) (*contract.CompanyResponse, apierror.ErrorResponse) {
	fresh, err := s.CompanyRepo.FindByID(company.ID)
	if err != nil || fresh == nil {
		log.Errorf("failed to reload company %s: %v", company.ID, err)
		return toCompanyResponse(company), nil
	}
	return toCompanyResponse(fresh), nil
}

func applyCompanyRequest(company *entity.Company, req *contract.CompanyRequest) {
	company.Name = req.Name
	company.Razao = req.Razao
	company.Document = req.Document
	company.IsCPF = req.IsCPF
	company.Email = strings.ToLower(req.Email)
	company.Phone1 = req.Phone1
	company.Phone2 = req.Phone2
	company.State = strings.ToUpper(req.State)
	company.City = req.City
	company.Address = req.Address
	company.Category1ID = req.Category1ID
	company.Category2ID = req.Category2ID

	// The relations may have been preloaded with the previous categories
	company.Category1 = nil
	company.Category2 = nil
}

func toCompanyResponse(c *entity.Company) *contract.CompanyResponse {
	return &contract.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Razao:     c.Razao,
		Document:  c.Document,
		IsCPF:     c.IsCPF,
		Email:     c.Email,
		Phone1:    c.Phone1,
		Phone2:    c.Phone2,
		State:     c.State,
		City:      c.City,
		Address:   c.Address,
		Category1: toPublicCategory(c.Category1),
		Category2: toPublicCategory(c.Category2),
		Active:    c.Active,
		OwnerID:   c.UserID,
		CreatedAt: utils.FormatEpoch(c.CreatedAt),
		UpdatedAt: utils.FormatEpoch(c.UpdatedAt),
	}
}
