package repository

import (
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"simpleguide/cmd/internal/domain/entity"
)

type DefaultCompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *DefaultCompanyRepository {
	return &DefaultCompanyRepository{db: db}
}

func (r *DefaultCompanyRepository) FindAll() ([]*entity.Company, error) {
	var companies []*entity.Company
	err := r.db.
		Preload("Category1").
		Preload("Category2").
		Order("name ASC").
		Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *DefaultCompanyRepository) FindByID(id string) (*entity.Company, error) {
	var company entity.Company
	err := r.db.
		Preload("Category1").
		Preload("Category2").
		Where("id = ?", id).
		First(&company).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *DefaultCompanyRepository) FindByDocument(document string) (*entity.Company, error) {
	var company entity.Company
	err := r.db.Where("document = ?", document).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *DefaultCompanyRepository) Create(company *entity.Company) error {
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	company.Normalize()
	return translateError(r.db.Omit(clause.Associations).Create(company).Error)
}

func (r *DefaultCompanyRepository) Save(company *entity.Company) error {
	company.Normalize()
	return translateError(r.db.Omit(clause.Associations).Save(company).Error)
}

// Delete is rejected while a subscriber profile points to the company.
func (r *DefaultCompanyRepository) Delete(company *entity.Company) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&entity.Subscriber{}).
			Where("company_id = ?", company.ID).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			return &ReferentialError{Entity: "company", Dependent: "subscriber"}
		}
		return tx.Delete(company).Error
	})
}
