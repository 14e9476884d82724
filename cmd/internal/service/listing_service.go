package service

import (
	"errors"
	"time"

	"github.com/labstack/gommon/log"
	"simpleguide/cmd/internal/contract"
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/domain/listing"
	"simpleguide/cmd/internal/utils"
	"simpleguide/cmd/internal/utils/apierror"
)

type ListingRepository interface {
	ListActive(order string, page int) ([]*entity.Subscriber, int64, error)
	Search(filter listing.Filter, page int) ([]*entity.Subscriber, int64, error)
	FindActiveByUsername(username string) (*entity.Subscriber, error)
}

// DefaultListingService serves the public pages. Only active profiles are
// ever returned and nothing here requires an actor.
type DefaultListingService struct {
	SubscriberRepo ListingRepository
	Clock          listing.Clock
	MediaBaseURL   string
}

func NewListingService(subscriberRepo ListingRepository, clock listing.Clock, mediaBaseURL string) *DefaultListingService {
	if clock == nil {
		clock = time.Now
	}

	return &DefaultListingService{
		SubscriberRepo: subscriberRepo,
		Clock:          clock,
		MediaBaseURL:   mediaBaseURL,
	}
}

// ListSubscribers returns a page of the default listing, whose order
// depends on the current weekday.
func (s *DefaultListingService) ListSubscribers(rawPage string) (*contract.SubscriberPage, apierror.ErrorResponse) {
	page, err := listing.ParsePage(rawPage)
	if err != nil {
		return nil, apierror.NotFoundError
	}

	order := listing.OrderingFor(s.Clock())
	subs, total, err := s.SubscriberRepo.ListActive(order, page)
	if err != nil {
		log.Errorf("failed to list subscribers (page %d): %v", page, err)
		return nil, apierror.InternalServerError
	}
	return s.toPage(subs, total, page)
}

// Search applies the public filters. Missing category and location mean
// no filter, just like their "t" and "n" sentinels.
func (s *DefaultListingService) Search(term, category, location, rawPage string) (*contract.SearchPage, apierror.ErrorResponse) {
	filter, err := listing.ParseFilter(term, category, location)
	if errors.Is(err, listing.ErrInvalidCategory) {
		return nil, apierror.InvalidCategoryError
	}

	page, err := listing.ParsePage(rawPage)
	if err != nil {
		return nil, apierror.NotFoundError
	}

	subs, total, err := s.SubscriberRepo.Search(filter, page)
	if err != nil {
		log.Errorf("failed to search subscribers (%q, page %d): %v", filter.Term, page, err)
		return nil, apierror.InternalServerError
	}

	result, apierr := s.toPage(subs, total, page)
	if apierr != nil {
		return nil, apierr
	}

	return &contract.SearchPage{
		SubscriberPage: *result,
		Query: contract.SearchQuery{
			Term:     filter.Term,
			Category: orDefault(category, listing.AnyCategory),
			Location: orDefault(location, listing.AnyLocation),
		},
	}, nil
}

// GetProfile looks a public profile up by its exact username.
func (s *DefaultListingService) GetProfile(username string) (*contract.PublicSubscriber, apierror.ErrorResponse) {
	sub, err := s.SubscriberRepo.FindActiveByUsername(username)
	if err != nil {
		log.Errorf("failed to fetch profile %s: %v", username, err)
		return nil, apierror.InternalServerError
	}

	if sub == nil {
		return nil, apierror.NotFoundError
	}
	return toPublicSubscriber(sub, s.MediaBaseURL), nil
}

func (s *DefaultListingService) GetStates() []*contract.StateResponse {
	resp := make([]*contract.StateResponse, len(entity.States))
	for i, st := range entity.States {
		resp[i] = &contract.StateResponse{Code: st.Code, Name: st.Name}
	}
	return resp
}

func (s *DefaultListingService) toPage(subs []*entity.Subscriber, total int64, page int) (*contract.SubscriberPage, apierror.ErrorResponse) {
	if err := listing.CheckPage(page, total); err != nil {
		return nil, apierror.NotFoundError
	}

	numPages := listing.NumPages(total)
	out := make([]*contract.PublicSubscriber, len(subs))
	for i, sub := range subs {
		out[i] = toPublicSubscriber(sub, s.MediaBaseURL)
	}

	return &contract.SubscriberPage{
		Subscribers: out,
		Pagination: contract.Pagination{
			Page:     page,
			NumPages: numPages,
			Total:    total,
			HasPrev:  page > 1,
			HasNext:  page < numPages,
		},
	}, nil
}

func toPublicSubscriber(sub *entity.Subscriber, mediaBase string) *contract.PublicSubscriber {
	resp := &contract.PublicSubscriber{
		Username:     sub.Username,
		InCharge:     sub.InCharge,
		Description:  sub.Description,
		OpeningHours: sub.OpeningHours,
		WhatsApp:     sub.WhatsApp,
		Website:      sub.Website,
		Instagram:    sub.Instagram,
		Facebook:     sub.Facebook,
		MapEmbed:     sub.MapEmbed,
		MapURL:       utils.MapEmbedURL(sub.MapEmbed),
		VideoID:      sub.VideoID,
		LogoURL:      mediaURL(mediaBase, sub.Logo),
		PhotoURLs:    []string{},
	}

	if sub.OpeningDate != nil {
		resp.OpeningDate = *sub.OpeningDate
	}

	for _, field := range entity.ImageFields[1:] {
		if key := sub.ImageKey(field); key != "" {
			resp.PhotoURLs = append(resp.PhotoURLs, mediaURL(mediaBase, key))
		}
	}

	if c := sub.Company; c != nil {
		resp.Name = c.Name
		resp.Email = c.Email
		resp.Phone1 = c.Phone1
		resp.Phone2 = c.Phone2
		resp.State = c.State
		resp.City = c.City
		resp.Address = c.Address

		for _, cat := range []*entity.Category{c.Category1, c.Category2} {
			if cat != nil {
				resp.Categories = append(resp.Categories, toPublicCategory(cat))
			}
		}
	}
	return resp
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
