package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/domain/listing"
	"simpleguide/cmd/internal/utils/uid"
)

type DefaultSubscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) *DefaultSubscriberRepository {
	return &DefaultSubscriberRepository{db: db}
}

func (r *DefaultSubscriberRepository) FindAll() ([]*entity.Subscriber, error) {
	var subs []*entity.Subscriber
	err := r.db.
		Preload("Company").
		Order("username ASC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *DefaultSubscriberRepository) FindByID(id int64) (*entity.Subscriber, error) {
	var sub entity.Subscriber
	err := r.db.
		Preload("Company").
		Where("id = ?", id).
		First(&sub).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindByCompanyID returns the profile of the company, active or not.
func (r *DefaultSubscriberRepository) FindByCompanyID(companyID string) (*entity.Subscriber, error) {
	var sub entity.Subscriber
	err := r.db.Where("company_id = ?", companyID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindByUsername matches the normalised username, active or not.
func (r *DefaultSubscriberRepository) FindByUsername(username string) (*entity.Subscriber, error) {
	var sub entity.Subscriber
	err := r.db.Where("username = ?", strings.ToLower(strings.TrimSpace(username))).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindActiveByUsername backs the public detail page: the username must
// match exactly and the profile must be active.
func (r *DefaultSubscriberRepository) FindActiveByUsername(username string) (*entity.Subscriber, error) {
	var sub entity.Subscriber
	err := r.db.
		Preload("Company").
		Preload("Company.Category1").
		Preload("Company.Category2").
		Where("username = ? AND active = ?", username, true).
		First(&sub).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListActive returns one page of active subscribers in the given order
// together with the total number of active subscribers.
func (r *DefaultSubscriberRepository) ListActive(order string, page int) ([]*entity.Subscriber, int64, error) {
	return r.paginate(r.activeQuery, order, page)
}

// Search filters active subscribers by company name, category and state.
// Results are always ordered by company name.
func (r *DefaultSubscriberRepository) Search(filter listing.Filter, page int) ([]*entity.Subscriber, int64, error) {
	query := func() *gorm.DB {
		q := r.activeQuery().
			Where(`LOWER(companies.name) LIKE ? ESCAPE '\'`, filter.LikePattern())

		if filter.CategoryID != nil {
			id := *filter.CategoryID
			q = q.Where("(companies.category1_id = ? OR companies.category2_id = ?)", id, id)
		}

		if filter.State != "" {
			q = q.Where("companies.state = ?", filter.State)
		}
		return q
	}
	return r.paginate(query, listing.SearchOrder, page)
}

func (r *DefaultSubscriberRepository) Create(sub *entity.Subscriber) error {
	if sub.ID == 0 {
		sub.ID = uid.Generate()
	}
	sub.Normalize()
	return translateError(r.db.Omit(clause.Associations).Create(sub).Error)
}

func (r *DefaultSubscriberRepository) Save(sub *entity.Subscriber) error {
	sub.Normalize()
	return translateError(r.db.Omit(clause.Associations).Save(sub).Error)
}

func (r *DefaultSubscriberRepository) Delete(sub *entity.Subscriber) error {
	return r.db.Delete(sub).Error
}

func (r *DefaultSubscriberRepository) activeQuery() *gorm.DB {
	return r.db.
		Model(&entity.Subscriber{}).
		Joins("JOIN companies ON companies.id = subscribers.company_id").
		Where("subscribers.active = ?", true)
}

func (r *DefaultSubscriberRepository) paginate(query func() *gorm.DB, order string, page int) ([]*entity.Subscriber, int64, error) {
	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if total == 0 {
		return []*entity.Subscriber{}, 0, nil
	}

	var subs []*entity.Subscriber
	err := query().
		Select("subscribers.*").
		Preload("Company").
		Order(order).
		Offset(listing.Offset(page)).
		Limit(listing.PageSize).
		Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}
