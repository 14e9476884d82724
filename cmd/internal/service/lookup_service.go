package service

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/gommon/log"
	"simpleguide/cmd/internal/contract"
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/infrastructure/minhareceita"
	"simpleguide/cmd/internal/utils"
	"simpleguide/cmd/internal/utils/apierror"
)

type CNPJClient interface {
	GetByCNPJ(ctx context.Context, cnpj string) (*minhareceita.Company, error)
}

type LookupCache interface {
	Get(ctx context.Context, cnpj string) (*minhareceita.Company, error)
	Set(ctx context.Context, cnpj string, company *minhareceita.Company) error
	SetNotFound(ctx context.Context, cnpj string) error
}

// DefaultLookupService prefills company registrations from the public
// CNPJ registry. Cache is optional.
type DefaultLookupService struct {
	Client CNPJClient
	Cache  LookupCache
}

func NewLookupService(client CNPJClient, cache LookupCache) *DefaultLookupService {
	return &DefaultLookupService{Client: client, Cache: cache}
}

func (l *DefaultLookupService) LookupCNPJ(ctx context.Context, actor *entity.User, raw string) (*contract.LookupResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionPerformLookup) {
		return nil, apierror.NewPermissionError(int64(entity.PermissionPerformLookup))
	}

	cnpj := stripCNPJ(raw)
	if !utils.IsCNPJValid(cnpj) {
		return nil, apierror.InvalidCNPJError
	}

	if company, hit, apierr := l.fromCache(ctx, cnpj); hit {
		if apierr != nil {
			return nil, apierr
		}
		return toLookupResponse(company, true), nil
	}

	company, err := l.Client.GetByCNPJ(ctx, cnpj)
	if errors.Is(err, minhareceita.ErrNotFound) {
		l.remember(ctx, cnpj, nil)
		return nil, apierror.NotFoundError
	}

	if err != nil {
		log.Errorf("failed to look CNPJ %s up: %v", cnpj, err)
		return nil, apierror.ServiceUnavailable
	}

	l.remember(ctx, cnpj, company)
	return toLookupResponse(company, false), nil
}

// fromCache reports hit=false when the registry has to be asked.
func (l *DefaultLookupService) fromCache(ctx context.Context, cnpj string) (*minhareceita.Company, bool, apierror.ErrorResponse) {
	if l.Cache == nil {
		return nil, false, nil
	}

	company, err := l.Cache.Get(ctx, cnpj)
	switch {
	case err == nil:
		return company, true, nil
	case errors.Is(err, minhareceita.ErrNotFound):
		return nil, true, apierror.NotFoundError
	case errors.Is(err, minhareceita.ErrCacheMiss):
		return nil, false, nil
	default:
		log.Warnf("lookup cache unavailable: %v", err)
		return nil, false, nil
	}
}

func (l *DefaultLookupService) remember(ctx context.Context, cnpj string, company *minhareceita.Company) {
	if l.Cache == nil {
		return
	}

	var err error
	if company == nil {
		err = l.Cache.SetNotFound(ctx, cnpj)
	} else {
		err = l.Cache.Set(ctx, cnpj, company)
	}

	if err != nil {
		log.Warnf("failed to cache CNPJ %s: %v", cnpj, err)
	}
}

// stripCNPJ accepts the formatted "00.000.000/0000-00" form too.
func stripCNPJ(raw string) string {
	return strings.NewReplacer(".", "", "/", "", "-", "", " ", "").Replace(raw)
}

func toLookupResponse(c *minhareceita.Company, cached bool) *contract.LookupResponse {
	partners := make([]*contract.PartnerResponse, len(c.Partners))
	for i, p := range c.Partners {
		partners[i] = &contract.PartnerResponse{
			Name:     p.Name,
			Role:     p.Role,
			RoleCode: p.RoleCode,
			AgeRange: p.AgeRange,
		}
	}

	return &contract.LookupResponse{
		CNPJ:        c.CNPJ,
		LegalName:   c.LegalName,
		TradeName:   c.TradeName,
		LegalNature: c.LegalNature,
		RegStatus:   string(c.Status),
		Email:       c.Email,
		Phone1:      c.Phone1,
		Phone2:      c.Phone2,
		State:       c.State,
		City:        c.City,
		Address:     c.Address,
		Partners:    partners,
		Cached:      cached,
	}
}
