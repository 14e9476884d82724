package repository

import (
	"errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/utils/uid"
)

type DefaultCategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *DefaultCategoryRepository {
	return &DefaultCategoryRepository{db: db}
}

func (r *DefaultCategoryRepository) FindAll() ([]*entity.Category, error) {
	var categories []*entity.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *DefaultCategoryRepository) FindAllActive() ([]*entity.Category, error) {
	var categories []*entity.Category
	err := r.db.Where("active = ?", true).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *DefaultCategoryRepository) FindByID(id int64) (*entity.Category, error) {
	var category entity.Category
	err := r.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *DefaultCategoryRepository) Create(category *entity.Category) error {
	if category.ID == 0 {
		category.ID = uid.Generate()
	}
	category.Normalize()
	return translateError(r.db.Omit(clause.Associations).Create(category).Error)
}

func (r *DefaultCategoryRepository) Save(category *entity.Category) error {
	category.Normalize()
	return translateError(r.db.Omit(clause.Associations).Save(category).Error)
}

// Delete is rejected while any company uses the category as its main one.
// Companies using it as the secondary category lose that reference instead.
func (r *DefaultCategoryRepository) Delete(category *entity.Category) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&entity.Company{}).
			Where("category1_id = ?", category.ID).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			return &ReferentialError{Entity: "category", Dependent: "company"}
		}

		err = tx.Model(&entity.Company{}).
			Where("category2_id = ?", category.ID).
			Update("category2_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Delete(category).Error
	})
}
