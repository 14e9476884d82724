package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"simpleguide/cmd/internal/contract"
	"simpleguide/cmd/internal/utils/apierror"
)

type ListingService interface {
	ListSubscribers(rawPage string) (*contract.SubscriberPage, apierror.ErrorResponse)
	Search(term, category, location, rawPage string) (*contract.SearchPage, apierror.ErrorResponse)
	GetProfile(username string) (*contract.PublicSubscriber, apierror.ErrorResponse)
	GetStates() []*contract.StateResponse
}

type ActiveCategoryLister interface {
	GetActiveCategories() ([]*contract.PublicCategory, apierror.ErrorResponse)
}

// DefaultListingRoute serves the public directory, both as HTML pages and
// as their JSON mirrors under /api.
type DefaultListingRoute struct {
	ListingService ListingService
	Categories     ActiveCategoryLister
}

func NewListingRoute(listingService ListingService, categories ActiveCategoryLister) *DefaultListingRoute {
	return &DefaultListingRoute{ListingService: listingService, Categories: categories}
}

func (l *DefaultListingRoute) ListSubscribers(c echo.Context) error {
	page, apierr := l.ListingService.ListSubscribers(c.QueryParam("page"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, page)
}

func (l *DefaultListingRoute) Search(c echo.Context) error {
	page, apierr := l.ListingService.Search(
		c.QueryParam("search_term"),
		c.QueryParam("category"),
		c.QueryParam("location"),
		c.QueryParam("page"),
	)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, page)
}

func (l *DefaultListingRoute) GetProfile(c echo.Context) error {
	sub, apierr := l.ListingService.GetProfile(c.Param("username"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, sub)
}

func (l *DefaultListingRoute) GetStates(c echo.Context) error {
	resp := echo.Map{"states": l.ListingService.GetStates()}
	return c.JSON(http.StatusOK, &resp)
}

func (l *DefaultListingRoute) IndexPage(c echo.Context) error {
	categories, apierr := l.Categories.GetActiveCategories()
	if apierr != nil {
		return renderError(c, apierr)
	}

	return c.Render(http.StatusOK, "index", echo.Map{
		"Categories": categories,
		"States":     l.ListingService.GetStates(),
	})
}

func (l *DefaultListingRoute) ListPage(c echo.Context) error {
	page, apierr := l.ListingService.ListSubscribers(c.QueryParam("page"))
	if apierr != nil {
		return renderError(c, apierr)
	}

	return c.Render(http.StatusOK, "list", echo.Map{
		"Page":     page,
		"BasePath": "/subs",
		"Query":    c.QueryParams(),
	})
}

func (l *DefaultListingRoute) SearchPage(c echo.Context) error {
	result, apierr := l.ListingService.Search(
		c.QueryParam("search_term"),
		c.QueryParam("category"),
		c.QueryParam("location"),
		c.QueryParam("page"),
	)
	if apierr != nil {
		return renderError(c, apierr)
	}

	categories, apierr := l.Categories.GetActiveCategories()
	if apierr != nil {
		return renderError(c, apierr)
	}

	return c.Render(http.StatusOK, "search", echo.Map{
		"Page":       &result.SubscriberPage,
		"Search":     result.Query,
		"Categories": categories,
		"States":     l.ListingService.GetStates(),
		"BasePath":   "/search",
		"Query":      c.QueryParams(),
	})
}

func (l *DefaultListingRoute) DetailPage(c echo.Context) error {
	sub, apierr := l.ListingService.GetProfile(c.Param("username"))
	if apierr != nil {
		return renderError(c, apierr)
	}
	return c.Render(http.StatusOK, "details", echo.Map{"Sub": sub})
}

func (l *DefaultListingRoute) AboutPage(c echo.Context) error {
	return c.Render(http.StatusOK, "about", nil)
}

func NotFoundPage(c echo.Context) error {
	return c.Render(http.StatusNotFound, "404", nil)
}

func renderError(c echo.Context, apierr apierror.ErrorResponse) error {
	if apierr.Code() == http.StatusNotFound {
		return NotFoundPage(c)
	}

	msg := http.StatusText(apierr.Code())
	if simple, ok := apierr.(*apierror.APIError); ok {
		msg = simple.Message
	}

	if apierr.Code() >= http.StatusInternalServerError {
		log.Warnf("rendering error page for %s: %s", c.Request().URL, msg)
	}
	return c.Render(apierr.Code(), "error", echo.Map{"Message": msg})
}
