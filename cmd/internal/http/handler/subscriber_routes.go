package handler

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"simpleguide/cmd/internal/contract"
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/utils"
	"simpleguide/cmd/internal/utils/apierror"
)

type SubscriberService interface {
	GetSubscribers(actor *entity.User) ([]*contract.SubscriberResponse, apierror.ErrorResponse)
	GetSubscriber(actor *entity.User, id int64) (*contract.SubscriberResponse, apierror.ErrorResponse)
	CreateSubscriber(ctx context.Context, actor *entity.User, req *contract.SubscriberRequest, uploads []*contract.ImageUpload) (*contract.SubscriberResponse, apierror.ErrorResponse)
	UpdateSubscriber(ctx context.Context, actor *entity.User, id int64, req *contract.SubscriberRequest, uploads []*contract.ImageUpload) (*contract.SubscriberResponse, apierror.ErrorResponse)
	DeleteSubscriber(ctx context.Context, actor *entity.User, id int64) apierror.ErrorResponse
}

type DefaultSubscriberRoute struct {
	SubscriberService SubscriberService
}

func NewSubscriberDefault(subscriberService SubscriberService) *DefaultSubscriberRoute {
	return &DefaultSubscriberRoute{SubscriberService: subscriberService}
}

func (r *DefaultSubscriberRoute) GetSubscribers(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	subs, apierr := r.SubscriberService.GetSubscribers(user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"subscribers": subs}
	return c.JSON(http.StatusOK, &resp)
}

func (r *DefaultSubscriberRoute) GetSubscriber(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	sub, apierr := r.SubscriberService.GetSubscriber(user, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, sub)
}

func (r *DefaultSubscriberRoute) CreateSubscriber(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	req, uploads, ferr := readSubscriberForm(c)
	if ferr != nil {
		return c.JSON(ferr.Code(), ferr)
	}

	sub, apierr := r.SubscriberService.CreateSubscriber(c.Request().Context(), user, req, uploads)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, sub)
}

func (r *DefaultSubscriberRoute) UpdateSubscriber(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	req, uploads, ferr := readSubscriberForm(c)
	if ferr != nil {
		return c.JSON(ferr.Code(), ferr)
	}

	sub, apierr := r.SubscriberService.UpdateSubscriber(c.Request().Context(), user, id, req, uploads)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, sub)
}

func (r *DefaultSubscriberRoute) DeleteSubscriber(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	if apierr := r.SubscriberService.DeleteSubscriber(c.Request().Context(), user, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}

// readSubscriberForm reads the 'json_payload' field and every file of the
// multipart form. Checking the file fields is left to the service, so
// unknown ones are reported along with the other field errors.
func readSubscriberForm(c echo.Context) (*contract.SubscriberRequest, []*contract.ImageUpload, apierror.ErrorResponse) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		return nil, nil, apierror.InvalidMediaTypeError
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, apierror.MalformedBodyError
	}

	payload := ""
	if values := form.Value["json_payload"]; len(values) > 0 {
		payload = strings.TrimSpace(values[0])
	}

	if payload == "" {
		return nil, nil, apierror.FormJSONRequiredError
	}

	var req contract.SubscriberRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return nil, nil, apierror.MalformedJSONError
	}

	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	var uploads []*contract.ImageUpload
	for _, field := range fields {
		headers := form.File[field]
		if len(headers) == 0 {
			continue
		}

		upload, err := readUpload(field, headers[0])
		if err != nil {
			log.Errorf("failed to read uploaded file %s: %v", field, err)
			return nil, nil, apierror.MalformedBodyError
		}
		uploads = append(uploads, upload)
	}
	return &req, uploads, nil
}

func readUpload(field string, header *multipart.FileHeader) (*contract.ImageUpload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &contract.ImageUpload{
		Field:    field,
		Filename: header.Filename,
		Size:     header.Size,
		Data:     data,
	}, nil
}
