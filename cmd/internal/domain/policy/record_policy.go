package policy

import (
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/utils/apierror"
)

const (
	seeAllRecords     = entity.PermissionSeeAllRecords
	manageCategories  = entity.PermissionManageCategories
	manageCompanies   = entity.PermissionManageCompanies
	manageSubscribers = entity.PermissionManageSubscribers
)

// RecordPolicy decides which companies and subscribers a staff user may
// see and change. Superusers and holders of SeeAllRecords see everything,
// everybody else only sees what they own.
type RecordPolicy struct{}

func NewRecordPolicy() *RecordPolicy {
	return &RecordPolicy{}
}

func (p *RecordPolicy) CanSee(actor *entity.User, ownerID int64) bool {
	if actor == nil {
		return false
	}
	return actor.Permissions.HasEffective(seeAllRecords) || actor.ID == ownerID
}

// CheckVisible hides records the actor cannot see behind a 404.
func (p *RecordPolicy) CheckVisible(actor *entity.User, ownerID int64) apierror.ErrorResponse {
	if !p.CanSee(actor, ownerID) {
		return apierror.NotFoundError
	}
	return nil
}

func (p *RecordPolicy) CanManageCategories(actor *entity.User) apierror.ErrorResponse {
	if !actor.Permissions.HasEffective(manageCategories) {
		return permError(manageCategories)
	}
	return nil
}

func (p *RecordPolicy) CanManageCompany(actor *entity.User, company *entity.Company) apierror.ErrorResponse {
	if !actor.Permissions.HasEffective(manageCompanies) {
		return permError(manageCompanies)
	}

	if company == nil {
		return nil
	}
	return p.CheckVisible(actor, company.UserID)
}

func (p *RecordPolicy) CanManageSubscriber(actor *entity.User, sub *entity.Subscriber) apierror.ErrorResponse {
	if !actor.Permissions.HasEffective(manageSubscribers) {
		return permError(manageSubscribers)
	}

	if sub == nil {
		return nil
	}
	return p.CheckVisible(actor, sub.UserID)
}

// VisibleCompanies filters a loaded list down to what the actor may see.
func (p *RecordPolicy) VisibleCompanies(actor *entity.User, companies []*entity.Company) []*entity.Company {
	out := make([]*entity.Company, 0, len(companies))
	for _, c := range companies {
		if p.CanSee(actor, c.UserID) {
			out = append(out, c)
		}
	}
	return out
}

func (p *RecordPolicy) VisibleSubscribers(actor *entity.User, subs []*entity.Subscriber) []*entity.Subscriber {
	out := make([]*entity.Subscriber, 0, len(subs))
	for _, s := range subs {
		if p.CanSee(actor, s.UserID) {
			out = append(out, s)
		}
	}
	return out
}
