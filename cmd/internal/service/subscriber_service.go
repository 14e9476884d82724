package service

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"simpleguide/cmd/internal/contract"
	"simpleguide/cmd/internal/domain/assets"
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/domain/policy"
	"simpleguide/cmd/internal/infrastructure/imageproc"
	"simpleguide/cmd/internal/utils"
	"simpleguide/cmd/internal/utils/apierror"
	"simpleguide/cmd/internal/validators"
)

type SubscriberRepository interface {
	FindAll() ([]*entity.Subscriber, error)
	FindByID(id int64) (*entity.Subscriber, error)
	FindByCompanyID(companyID string) (*entity.Subscriber, error)
	FindByUsername(username string) (*entity.Subscriber, error)
	Create(sub *entity.Subscriber) error
	Save(sub *entity.Subscriber) error
	Delete(sub *entity.Subscriber) error
}

type DefaultSubscriberService struct {
	SubscriberRepo SubscriberRepository
	CompanyRepo    CompanyRepository
	Assets         *assets.Manager
	Validate       *validator.Validate
	Policy         *policy.RecordPolicy
	MediaBaseURL   string
}

func NewSubscriberService(
	subscriberRepo SubscriberRepository,
	companyRepo CompanyRepository,
	manager *assets.Manager,
	validate *validator.Validate,
	recordPolicy *policy.RecordPolicy,
	mediaBaseURL string,
) *DefaultSubscriberService {
	return &DefaultSubscriberService{
		SubscriberRepo: subscriberRepo,
		CompanyRepo:    companyRepo,
		Assets:         manager,
		Validate:       validate,
		Policy:         recordPolicy,
		MediaBaseURL:   mediaBaseURL,
	}
}

// jpegImage is an upload that passed every check and was re-encoded.
type jpegImage struct {
	field string
	data  []byte
}

func (s *DefaultSubscriberService) GetSubscribers(actor *entity.User) ([]*contract.SubscriberResponse, apierror.ErrorResponse) {
	subs, err := s.SubscriberRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch subscribers: %v", err)
		return nil, apierror.InternalServerError
	}

	visible := s.Policy.VisibleSubscribers(actor, subs)
	resp := make([]*contract.SubscriberResponse, len(visible))
	for i, sub := range visible {
		resp[i] = toSubscriberResponse(sub, s.MediaBaseURL)
	}
	return resp, nil
}

func (s *DefaultSubscriberService) GetSubscriber(actor *entity.User, id int64) (*contract.SubscriberResponse, apierror.ErrorResponse) {
	sub, apierr := s.fetchVisible(actor, id)
	if apierr != nil {
		return nil, apierr
	}
	return toSubscriberResponse(sub, s.MediaBaseURL), nil
}

// CreateSubscriber publishes the profile of a company. The logo is mandatory.
func (s *DefaultSubscriberService) CreateSubscriber(ctx context.Context, actor *entity.User, req *contract.SubscriberRequest, uploads []*contract.ImageUpload) (*contract.SubscriberResponse, apierror.ErrorResponse) {
	if perr := s.Policy.CanManageSubscriber(actor, nil); perr != nil {
		return nil, perr
	}

	errs := collectErrors(s.Validate, req)
	checkUploads(errs, uploads, true)
	company := s.checkCompany(errs, actor, req.CompanyID)
	if !errs.Empty() {
		return nil, errs
	}

	if apierr := s.checkCompanyFree(req.CompanyID, 0); apierr != nil {
		return nil, apierr
	}

	if apierr := s.checkUsernameFree(req.Username, 0); apierr != nil {
		return nil, apierr
	}

	images, ierrs := encodeUploads(uploads)
	if ierrs != nil {
		return nil, ierrs
	}

	now := utils.NowUTC()
	sub := &entity.Subscriber{
		UserID:    actor.ID,
		Active:    boolOr(req.Active, true),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applySubscriberRequest(sub, req)

	if apierr := s.store(ctx, sub, company, images, true); apierr != nil {
		return nil, apierr
	}
	return s.reload(sub)
}

// UpdateSubscriber replaces the profile fields. Images are only touched when
// a new file is uploaded for the slot or the slot is listed in remove_photos.
func (s *DefaultSubscriberService) UpdateSubscriber(ctx context.Context, actor *entity.User, id int64, req *contract.SubscriberRequest, uploads []*contract.ImageUpload) (*contract.SubscriberResponse, apierror.ErrorResponse) {
	sub, apierr := s.fetchVisible(actor, id)
	if apierr != nil {
		return nil, apierr
	}

	if perr := s.Policy.CanManageSubscriber(actor, sub); perr != nil {
		return nil, perr
	}

	errs := collectErrors(s.Validate, req)
	checkUploads(errs, uploads, false)
	company := s.checkCompany(errs, actor, req.CompanyID)
	if !errs.Empty() {
		return nil, errs
	}

	if req.CompanyID != sub.CompanyID {
		if apierr := s.checkCompanyFree(req.CompanyID, sub.ID); apierr != nil {
			return nil, apierr
		}
	}

	if apierr := s.checkUsernameFree(req.Username, sub.ID); apierr != nil {
		return nil, apierr
	}

	images, ierrs := encodeUploads(uploads)
	if ierrs != nil {
		return nil, ierrs
	}

	var removed []string
	for _, field := range req.RemovePhotos {
		if hasUpload(uploads, field) {
			continue
		}

		if key := sub.ImageKey(field); key != "" {
			removed = append(removed, key)
			sub.SetImageKey(field, "")
		}
	}

	applySubscriberRequest(sub, req)
	sub.Active = boolOr(req.Active, sub.Active)
	sub.UpdatedAt = utils.NowUTC()
	sub.Company = nil

	if apierr := s.store(ctx, sub, company, images, false); apierr != nil {
		return nil, apierr
	}

	for _, key := range removed {
		s.Assets.Discard(ctx, key)
	}
	return s.reload(sub)
}

// DeleteSubscriber removes the profile and then, best-effort, its images.
func (s *DefaultSubscriberService) DeleteSubscriber(ctx context.Context, actor *entity.User, id int64) apierror.ErrorResponse {
	sub, apierr := s.fetchVisible(actor, id)
	if apierr != nil {
		return apierr
	}

	if perr := s.Policy.CanManageSubscriber(actor, sub); perr != nil {
		return perr
	}

	if err := s.SubscriberRepo.Delete(sub); err != nil {
		return mapRepoError("delete subscriber", err)
	}

	for _, field := range entity.ImageFields {
		s.Assets.Discard(ctx, sub.ImageKey(field))
	}
	return nil
}

// store places the images, uploads them and writes the record, in this order.
// Files the write supersedes are only discarded once the record is saved; a
// failed write removes what it uploaded, sparing keys a stored record uses.
func (s *DefaultSubscriberService) store(ctx context.Context, sub *entity.Subscriber, company *entity.Company, images []*jpegImage, isNew bool) apierror.ErrorResponse {
	for _, img := range images {
		sub.SetImageKey(img.field, uuid.NewString()+".jpg")
	}

	superseded, err := s.Assets.StageAll(sub, company)
	if err != nil {
		log.Errorf("failed to place images of subscriber %s: %v", sub.Username, err)
		return apierror.InternalServerError
	}

	selfID := sub.ID
	if isNew {
		selfID = 0
	}

	uploaded := make([]string, 0, len(images))
	for _, img := range images {
		key := sub.ImageKey(img.field)
		if err := s.Assets.Storage.Put(ctx, key, img.data); err != nil {
			log.Errorf("failed to upload %s: %v", key, err)
			s.discardUnreferenced(ctx, selfID, company.ID, uploaded)
			return apierror.InternalServerError
		}
		uploaded = append(uploaded, key)
	}

	if isNew {
		err = s.SubscriberRepo.Create(sub)
	} else {
		err = s.SubscriberRepo.Save(sub)
	}

	if err != nil {
		s.discardUnreferenced(ctx, selfID, company.ID, uploaded)
		return mapRepoError("save subscriber", err)
	}

	for _, key := range superseded {
		s.Assets.Discard(ctx, key)
	}
	return nil
}

// discardUnreferenced removes keys uploaded by a failed write. Canonical keys
// are shared per company, so any key still held by the stored version of the
// record, or by the profile that won the company, stays.
func (s *DefaultSubscriberService) discardUnreferenced(ctx context.Context, selfID int64, companyID string, keys []string) {
	if len(keys) == 0 {
		return
	}

	var owners []*entity.Subscriber
	if selfID != 0 {
		self, err := s.SubscriberRepo.FindByID(selfID)
		if err != nil {
			log.Errorf("failed to reload subscriber %d, keeping uploads %v: %v", selfID, keys, err)
			return
		}
		owners = append(owners, self)
	}

	holder, err := s.SubscriberRepo.FindByCompanyID(companyID)
	if err != nil {
		log.Errorf("failed to check subscriber of company %s, keeping uploads %v: %v", companyID, keys, err)
		return
	}
	owners = append(owners, holder)

	used := make(map[string]bool)
	for _, owner := range owners {
		if owner == nil {
			continue
		}
		for _, field := range entity.ImageFields {
			used[owner.ImageKey(field)] = true
		}
	}

	for _, key := range keys {
		if !used[key] {
			s.Assets.Discard(ctx, key)
		}
	}
}

// checkCompany resolves the company of the request, reporting an unknown
// or invisible one as a field error.
func (s *DefaultSubscriberService) checkCompany(errs *apierror.StructuredError, actor *entity.User, companyID string) *entity.Company {
	if companyID == "" || len(errs.Errors["company_id"]) > 0 {
		return nil
	}

	company, err := s.CompanyRepo.FindByID(companyID)
	if err != nil {
		log.Errorf("failed to fetch company %s: %v", companyID, err)
		errs.Add("company_id", "Could not verify company")
		return nil
	}

	if company == nil || !s.Policy.CanSee(actor, company.UserID) {
		errs.Add("company_id", "Company does not exist")
		return nil
	}
	return company
}

// checkCompanyFree runs before anything is uploaded: the canonical image keys
// of a company are shared, so a second profile must never reach storage.
func (s *DefaultSubscriberService) checkCompanyFree(companyID string, selfID int64) apierror.ErrorResponse {
	existing, err := s.SubscriberRepo.FindByCompanyID(companyID)
	if err != nil {
		log.Errorf("failed to check subscriber of company %s: %v", companyID, err)
		return apierror.InternalServerError
	}

	if existing != nil && existing.ID != selfID {
		return apierror.NewUniquenessError("company_id")
	}
	return nil
}

// checkUsernameFree reports a taken username before any file is written.
func (s *DefaultSubscriberService) checkUsernameFree(username string, selfID int64) apierror.ErrorResponse {
	existing, err := s.SubscriberRepo.FindByUsername(username)
	if err != nil {
		log.Errorf("failed to check username %s: %v", username, err)
		return apierror.InternalServerError
	}

	if existing != nil && existing.ID != selfID {
		return apierror.NewUniquenessError("username")
	}
	return nil
}

func (s *DefaultSubscriberService) fetchVisible(actor *entity.User, id int64) (*entity.Subscriber, apierror.ErrorResponse) {
	sub, err := s.SubscriberRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch subscriber %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if sub == nil {
		return nil, apierror.NotFoundError
	}

	if verr := s.Policy.CheckVisible(actor, sub.UserID); verr != nil {
		return nil, verr
	}
	return sub, nil
}

func (s *DefaultSubscriberService) reload(sub *entity.Subscriber) (*contract.SubscriberResponse, apierror.ErrorResponse) {
	fresh, err := s.SubscriberRepo.FindByID(sub.ID)
	if err != nil || fresh == nil {
		log.Errorf("failed to reload subscriber %d: %v", sub.ID, err)
		return toSubscriberResponse(sub, s.MediaBaseURL), nil
	}
	return toSubscriberResponse(fresh, s.MediaBaseURL), nil
}

// checkUploads validates slot names, extensions and sizes of every upload.
func checkUploads(errs *apierror.StructuredError, uploads []*contract.ImageUpload, requireLogo bool) {
	for _, up := range uploads {
		if !slices.Contains(entity.ImageFields, up.Field) {
			errs.Add(up.Field, "Unknown image field")
			continue
		}

		if _, ok := utils.CheckFileExt(up.Filename, imageproc.ValidExtensions); !ok {
			errs.Add(up.Field, "Unsupported file type, allowed: "+strings.Join(imageproc.ValidExtensions, ", "))
			continue
		}
		addFormatError(errs, validators.CheckImageSize(up.Field, up.Size))
	}

	if requireLogo && !hasUpload(uploads, entity.ImageLogo) {
		errs.Add(entity.ImageLogo, "This field is required")
	}
}

func encodeUploads(uploads []*contract.ImageUpload) ([]*jpegImage, apierror.ErrorResponse) {
	images := make([]*jpegImage, 0, len(uploads))
	errs := apierror.NewStructured(http.StatusBadRequest)

	for _, up := range uploads {
		data, err := imageproc.ToJPEG(up.Data)
		if err != nil {
			if !errors.Is(err, imageproc.ErrUnsupportedFormat) {
				log.Warnf("failed to convert %s (%s): %v", up.Field, up.Filename, err)
			}
			errs.Add(up.Field, "The file is not a valid image")
			continue
		}
		images = append(images, &jpegImage{field: up.Field, data: data})
	}

	if !errs.Empty() {
		return nil, errs
	}
	return images, nil
}

func hasUpload(uploads []*contract.ImageUpload, field string) bool {
	for _, up := range uploads {
		if up.Field == field {
			return true
		}
	}
	return false
}

func applySubscriberRequest(sub *entity.Subscriber, req *contract.SubscriberRequest) {
	sub.CompanyID = req.CompanyID
	sub.Username = req.Username
	sub.InCharge = req.InCharge
	sub.Description = req.Description
	sub.OpeningHours = req.OpeningHours
	sub.OpeningDate = req.OpeningDate
	sub.WhatsApp = req.WhatsApp
	sub.Website = req.Website
	sub.Instagram = req.Instagram
	sub.Facebook = req.Facebook
	sub.MapEmbed = req.MapEmbed
	sub.VideoID = req.VideoID
	sub.Notes = req.Notes
}

func toSubscriberResponse(sub *entity.Subscriber, mediaBase string) *contract.SubscriberResponse {
	images := make(map[string]string, len(entity.ImageFields))
	for _, field := range entity.ImageFields {
		if key := sub.ImageKey(field); key != "" {
			images[field] = mediaURL(mediaBase, key)
		}
	}

	resp := &contract.SubscriberResponse{
		ID:           sub.ID,
		Username:     sub.Username,
		InCharge:     sub.InCharge,
		Description:  sub.Description,
		OpeningHours: sub.OpeningHours,
		OpeningDate:  sub.OpeningDate,
		WhatsApp:     sub.WhatsApp,
		Website:      sub.Website,
		Instagram:    sub.Instagram,
		Facebook:     sub.Facebook,
		MapEmbed:     sub.MapEmbed,
		VideoID:      sub.VideoID,
		Images:       images,
		Notes:        sub.Notes,
		Active:       sub.Active,
		OwnerID:      sub.UserID,
		CreatedAt:    utils.FormatEpoch(sub.CreatedAt),
		UpdatedAt:    utils.FormatEpoch(sub.UpdatedAt),
	}

	if sub.Company != nil {
		resp.Company = toCompanyResponse(sub.Company)
	}
	return resp
}
