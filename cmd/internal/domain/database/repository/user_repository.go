package repository

import (
	"errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/utils/uid"
)

type DefaultUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{db: db}
}

func (u *DefaultUserRepository) FindAll() ([]*entity.User, error) {
	var users []*entity.User
	err := u.db.Order("id ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (u *DefaultUserRepository) FindByID(id int64) (*entity.User, error) {
	var user entity.User
	err := u.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *DefaultUserRepository) FindBySub(sub string) (*entity.User, error) {
	var user entity.User
	err := u.db.Where("sub_uuid = ?", sub).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *DefaultUserRepository) FindActiveBySub(sub string) (*entity.User, error) {
	user, err := u.FindBySub(sub)
	if err != nil || user == nil || !user.Active {
		return nil, err
	}
	return user, nil
}

func (u *DefaultUserRepository) FindActiveByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := u.db.Where("email = ? AND active = ?", email, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *DefaultUserRepository) Create(user *entity.User) error {
	if user.ID == 0 {
		user.ID = uid.Generate()
	}
	return translateError(u.db.Omit(clause.Associations).Create(user).Error)
}

func (u *DefaultUserRepository) Save(user *entity.User) error {
	return translateError(u.db.Omit(clause.Associations).Save(user).Error)
}

// Delete refuses to remove a user that still owns directory records.
func (u *DefaultUserRepository) Delete(user *entity.User) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		owned := []struct {
			name  string
			model any
		}{
			{"category", &entity.Category{}},
			{"company", &entity.Company{}},
			{"subscriber", &entity.Subscriber{}},
		}

		for _, o := range owned {
			var count int64
			if err := tx.Model(o.model).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return &ReferentialError{Entity: "user", Dependent: o.name}
			}
		}
		return tx.Delete(user).Error
	})
}
